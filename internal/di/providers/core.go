package providers

import (
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/lutrisart/lutrisart/internal/config"
	"github.com/lutrisart/lutrisart/internal/logger"
)

// Flags are the command-line overrides injected as a value into the
// container. Zero values mean "not set, use the config file".
type Flags struct {
	ConfigPath    string
	Force         bool
	Concurrency   int
	GridDimension string
	LogLevel      string
	LogFormat     string
}

// ProvideConfig loads the config file, creating it with defaults on first
// run.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	flags := do.MustInvoke[Flags](i)

	path := flags.ConfigPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// ProvideLogger provides the application logger, writing to stderr so log
// lines never interleave with reporter output on stdout.
func ProvideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	flags := do.MustInvoke[Flags](i)

	level := cfg.LogLevel
	if flags.LogLevel != "" {
		level = flags.LogLevel
	}
	format := cfg.LogFormat
	if flags.LogFormat != "" {
		format = flags.LogFormat
	}

	return logger.New(logger.Config{
		Writer: os.Stderr,
		Format: format,
		Level:  logger.ParseLevel(level),
	}), nil
}
