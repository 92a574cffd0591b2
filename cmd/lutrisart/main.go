// Package main provides the lutrisart command line entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/lutrisart/lutrisart/internal/config"
	"github.com/lutrisart/lutrisart/internal/di"
	"github.com/lutrisart/lutrisart/internal/di/providers"
	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/fetch"
	"github.com/lutrisart/lutrisart/internal/inventory"
	"github.com/lutrisart/lutrisart/internal/report"
	"github.com/lutrisart/lutrisart/internal/sgdb"
	"github.com/lutrisart/lutrisart/internal/watch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lutrisart: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "config file path (default: $XDG_CONFIG_HOME/lutrisart/config.yaml)")
		dbPath      = flag.String("db", "", "Lutris database path (default: $XDG_DATA_HOME/lutris/pga.db)")
		assetList   = flag.String("assets", "", "comma-separated asset types to fetch: grid,hero,logo,icon (default: all)")
		force       = flag.Bool("force", false, "re-download assets that already exist")
		dryRun      = flag.Bool("dry-run", false, "print what would be downloaded without touching the network")
		watchMode   = flag.Bool("watch", false, "keep running and re-fetch when the Lutris database changes")
		concurrency = flag.Int("concurrency", 0, "max concurrent downloads (overrides config)")
		dimension   = flag.String("grid-dimension", "", "preferred grid dimension, e.g. 600x900 (overrides config)")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
		logFormat   = flag.String("log-format", "", "log format: pretty or json (overrides config)")
	)
	flag.Parse()

	assets := domain.AllAssetTypes()
	if *assetList != "" {
		var err error
		assets, err = domain.ParseAssetTypes(*assetList)
		if err != nil {
			return err
		}
	}

	injector := di.NewContainer(providers.Flags{
		ConfigPath:    *configPath,
		Force:         *force,
		Concurrency:   *concurrency,
		GridDimension: *dimension,
		LogLevel:      *logLevel,
		LogFormat:     *logFormat,
	})
	defer injector.Shutdown()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	log := do.MustInvoke[*slog.Logger](injector)
	layout := do.MustInvoke[fetch.Layout](injector)

	database := *dbPath
	if database == "" {
		if database, err = config.LutrisDBPath(); err != nil {
			return err
		}
	}
	if err := inventory.Validate(database); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *dryRun {
		games, err := inventory.ReadInstalled(ctx, database, log)
		if err != nil {
			return err
		}
		report.DryRun(os.Stdout, layout, games, assets, *force)
		return nil
	}

	if cfg.APIKey == "" {
		return errors.New("no API key configured; get one at https://www.steamgriddb.com/profile/preferences/api and set apiKey in the config file")
	}
	client := do.MustInvoke[*sgdb.Client](injector)
	if err := client.ValidateKey(ctx); err != nil {
		return fmt.Errorf("API key check failed: %w", err)
	}

	engine := do.MustInvoke[*fetch.Engine](injector)

	if err := runOnce(ctx, engine, log, database, assets); err != nil {
		return err
	}
	if !*watchMode {
		return nil
	}
	return watchLoop(ctx, engine, log, database, assets)
}

// runOnce reads the installed games and drives one full engine run, with the
// batch reporter draining progress on stdout.
func runOnce(ctx context.Context, engine *fetch.Engine, log *slog.Logger, database string, assets []domain.AssetType) error {
	games, err := inventory.ReadInstalled(ctx, database, log)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("no installed games found")
		return nil
	}

	rep := report.New(os.Stdout, games)
	events := make(chan domain.ProgressEvent, 64)
	drained := make(chan struct{})
	go func() {
		rep.Consume(events)
		close(drained)
	}()

	summary := engine.Run(ctx, games, assets, events)
	<-drained
	rep.PrintSummary(summary)
	return nil
}

// watchLoop re-runs the engine whenever the Lutris database settles after a
// change, until interrupted.
func watchLoop(ctx context.Context, engine *fetch.Engine, log *slog.Logger, database string, assets []domain.AssetType) error {
	w, err := watch.New(database, watch.DefaultSettleDelay, log)
	if err != nil {
		return err
	}
	defer w.Close()

	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("watch stopped", "error", err)
		}
	}()

	log.Info("watching for database changes", "path", database)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			log.Info("database changed, re-checking artwork")
			if err := runOnce(ctx, engine, log, database, assets); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				log.Error("run failed", "error", err)
			}
		}
	}
}
