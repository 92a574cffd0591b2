package providers

import (
	"log/slog"
	"time"

	"github.com/samber/do/v2"

	"github.com/lutrisart/lutrisart/internal/config"
	"github.com/lutrisart/lutrisart/internal/fetch"
	"github.com/lutrisart/lutrisart/internal/sgdb"
)

// ProvideClient provides the SteamGridDB API client.
func ProvideClient(i do.Injector) (*sgdb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	delay := time.Duration(cfg.RequestDelayMs) * time.Millisecond
	return sgdb.New(cfg.APIKey, delay, log), nil
}

// ProvideLayout provides the on-disk Lutris artwork layout.
func ProvideLayout(i do.Injector) (fetch.Layout, error) {
	dataDir, err := config.LutrisDataDir()
	if err != nil {
		return fetch.Layout{}, err
	}
	iconDir, err := config.IconDir()
	if err != nil {
		return fetch.Layout{}, err
	}
	return fetch.Layout{DataDir: dataDir, IconDir: iconDir}, nil
}

// ProvideEngine provides the download engine, with flag overrides applied
// on top of the config file.
func ProvideEngine(i do.Injector) (*fetch.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	flags := do.MustInvoke[Flags](i)
	log := do.MustInvoke[*slog.Logger](i)
	client := do.MustInvoke[*sgdb.Client](i)
	layout := do.MustInvoke[fetch.Layout](i)

	concurrency := cfg.MaxConcurrentDownloads
	if flags.Concurrency > 0 {
		concurrency = flags.Concurrency
	}
	dimension := cfg.PreferredGridDimension
	if flags.GridDimension != "" {
		dimension = flags.GridDimension
	}

	opts := fetch.Opts{
		Force:         flags.Force,
		GridDimension: dimension,
		Policy: fetch.Policy{
			FilterNSFW:  cfg.NSFWFilter,
			FilterHumor: cfg.HumorFilter,
		},
		MaxConcurrent: concurrency,
	}
	return fetch.NewEngine(client, layout, opts, log), nil
}
