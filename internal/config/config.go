// Package config manages the lutrisart configuration file and the Lutris
// filesystem layout. Configuration is loaded once at startup and passed to
// the engine as an immutable snapshot; mid-run changes are not observed.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration, persisted as YAML at
// $XDG_CONFIG_HOME/lutrisart/config.yaml.
type Config struct {
	// APIKey is the SteamGridDB bearer token. Empty means unauthenticated;
	// the run aborts before any task starts.
	APIKey string `yaml:"api_key"`

	// PreferredGridDimension is sent as the ?dimensions= parameter for grid
	// requests only, e.g. "600x900".
	PreferredGridDimension string `yaml:"preferred_grid_dimension" validate:"required,dimension"`

	// MaxConcurrentDownloads bounds the number of tasks holding a download
	// permit at once.
	MaxConcurrentDownloads int `yaml:"max_concurrent_downloads" validate:"min=1,max=10"`

	// NSFWFilter drops candidates flagged as adult content.
	NSFWFilter bool `yaml:"nsfw_filter"`

	// HumorFilter drops candidates flagged as humor/meme content.
	HumorFilter bool `yaml:"humor_filter"`

	// RequestDelayMs is the minimum delay between SteamGridDB metadata
	// requests, measured from the start of the previous request.
	RequestDelayMs int `yaml:"request_delay_ms" validate:"min=0,max=60000"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat is "pretty" or "json".
	LogFormat string `yaml:"log_format" validate:"oneof=pretty json"`
}

var dimensionRe = regexp.MustCompile(`^\d+x\d+$`)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		PreferredGridDimension: "600x900",
		MaxConcurrentDownloads: 3,
		NSFWFilter:             true,
		HumorFilter:            true,
		RequestDelayMs:         100,
		LogLevel:               "info",
		LogFormat:              "pretty",
	}
}

// Load reads the configuration with precedence: environment variables
// (LUTRISART_*) over file values over defaults. Flags are applied by the
// caller on top of the returned snapshot.
//
// If the file does not exist, defaults are returned and written back
// best-effort so users have something to edit.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return nil, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path) //#nosec G304 -- config path comes from the user
	switch {
	case errors.Is(err, os.ErrNotExist):
		_ = cfg.Save(path)
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		// Unmarshal over the defaults so missing keys keep their values.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("dimension", func(fl validator.FieldLevel) bool {
		return dimensionRe.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register dimension validation: %w", err)
	}

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid %s: rule %q not satisfied", f.StructField(), f.Tag())
		}
		return err
	}
	return nil
}

// applyEnv overrides file values with LUTRISART_* environment variables.
func (c *Config) applyEnv() {
	c.APIKey = getEnvValue("LUTRISART_API_KEY", c.APIKey)
	c.PreferredGridDimension = getEnvValue("LUTRISART_GRID_DIMENSION", c.PreferredGridDimension)
	c.MaxConcurrentDownloads = getIntEnvValue("LUTRISART_MAX_CONCURRENT", c.MaxConcurrentDownloads)
	c.NSFWFilter = getBoolEnvValue("LUTRISART_NSFW_FILTER", c.NSFWFilter)
	c.HumorFilter = getBoolEnvValue("LUTRISART_HUMOR_FILTER", c.HumorFilter)
	c.RequestDelayMs = getIntEnvValue("LUTRISART_REQUEST_DELAY_MS", c.RequestDelayMs)
	c.LogLevel = getEnvValue("LUTRISART_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvValue("LUTRISART_LOG_FORMAT", c.LogFormat)
}

// getEnvValue returns the environment value if set, otherwise the fallback.
func getEnvValue(envKey, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

// getBoolEnvValue returns a bool from an env var or the fallback.
// Accepts "true", "1", "yes" (case-insensitive) as true; "false", "0", "no"
// as false; anything else keeps the fallback.
func getBoolEnvValue(envKey string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(envKey)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}

// getIntEnvValue returns an int from an env var or the fallback.
func getIntEnvValue(envKey string, fallback int) int {
	v := os.Getenv(envKey)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
