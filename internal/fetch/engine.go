// Package fetch implements the artwork download pipeline: resolve each game
// to a SteamGridDB id, pick one candidate per asset category under the
// content policy, and persist the bytes atomically into the Lutris layout.
//
// The engine fans out one task per (game, asset) pair under a counting
// semaphore and reports every status transition on a progress channel. It
// has no dependency on any presentation layer; consumers just drain the
// channel.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/semaphore"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/sgdb"
)

// Opts is the immutable per-run snapshot of engine knobs.
type Opts struct {
	// Force re-downloads assets that already exist on disk.
	Force bool
	// GridDimension is the preferred dimension filter, sent for grid
	// requests only (e.g. "600x900").
	GridDimension string
	// Policy filters candidates by content flags.
	Policy Policy
	// MaxConcurrent bounds the number of tasks in flight at once.
	MaxConcurrent int
}

// Engine orchestrates the resolve → select → transfer pipeline.
type Engine struct {
	client   CatalogClient
	layout   Layout
	opts     Opts
	transfer *Transferrer
	logger   *slog.Logger
}

// NewEngine creates an engine. A non-positive MaxConcurrent falls back to 3.
func NewEngine(client CatalogClient, layout Layout, opts Opts, logger *slog.Logger) *Engine {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}
	return &Engine{
		client:   client,
		layout:   layout,
		opts:     opts,
		transfer: NewTransferrer(client, logger),
		logger:   logger,
	}
}

// Run drives one download run across all (game, asset) pairs and returns the
// aggregate summary. Status transitions are sent on events in per-task
// order; the channel is closed when every task has reached a terminal state,
// so consumers can simply range over it. The caller must keep draining
// events until closure.
//
// Canceling ctx stops new network work promptly; transfers past the point of
// no return still complete their atomic write, and every task that did not
// finish ends up Cancelled rather than Failed.
func (e *Engine) Run(ctx context.Context, games []domain.Game, assets []domain.AssetType, events chan<- domain.ProgressEvent) domain.RunSummary {
	start := time.Now()
	log := e.logger.With("run_id", gonanoid.Must(10))

	log.Info("starting run",
		"games", len(games),
		"assets", len(assets),
		"tasks", len(games)*len(assets),
		"max_concurrent", e.opts.MaxConcurrent,
		"force", e.opts.Force,
	)

	var (
		mu      sync.Mutex
		summary domain.RunSummary
		wg      sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(e.opts.MaxConcurrent))

	// The resolution cache lives for one run only. Watch mode reuses the
	// engine across runs, and a game that failed to resolve yesterday may
	// resolve today.
	resolver := NewResolver(e.client, log)

	for _, game := range games {
		for _, asset := range assets {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.runTask(ctx, game, asset, resolver, sem, func(st domain.Status) {
					if st.IsTerminal() {
						mu.Lock()
						summary.Record(st)
						mu.Unlock()
					}
					events <- domain.ProgressEvent{Slug: game.Slug, Asset: asset, Status: st}
				})
			}()
		}
	}

	wg.Wait()
	close(events)

	summary.Elapsed = time.Since(start)
	log.Info("run complete",
		"done", summary.Done,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"cancelled", summary.Cancelled,
		"elapsed", summary.Elapsed,
	)
	return summary
}

// runTask walks one (game, asset) pair through the state machine, emitting
// each transition exactly once.
func (e *Engine) runTask(ctx context.Context, game domain.Game, asset domain.AssetType, resolver *Resolver, sem *semaphore.Weighted, emit func(domain.Status)) {
	// Existence short-circuits before any permit or network work.
	if !e.opts.Force && e.layout.Exists(asset, game.Slug) {
		emit(domain.Skipped("already exists"))
		return
	}

	// One permit covers the task's whole searching→downloading lifetime,
	// keeping metadata fan-out bounded along with the transfers.
	if err := sem.Acquire(ctx, 1); err != nil {
		emit(domain.Cancelled())
		return
	}
	defer sem.Release(1)

	// Acquire can succeed on its fast path even after cancellation; don't
	// start network work for a run that is already stopping.
	if ctx.Err() != nil {
		emit(domain.Cancelled())
		return
	}

	emit(domain.Searching())

	gameID, err := resolver.Resolve(ctx, game)
	if err != nil {
		emit(failureStatus(ctx, err, "search error: "))
		return
	}

	dimensions := ""
	if asset == domain.AssetGrid {
		dimensions = e.opts.GridDimension
	}

	candidates, err := e.fetchCandidates(ctx, game, asset, gameID, dimensions)
	if err != nil {
		emit(failureStatus(ctx, err, "fetch error: "))
		return
	}

	chosen, ok := Select(candidates, e.opts.Policy)
	if !ok {
		emit(domain.Failed("no art found"))
		return
	}

	emit(domain.Downloading())

	target := e.layout.AssetPath(asset, game.Slug)
	if err := e.transfer.Transfer(ctx, chosen.URL, target); err != nil {
		e.logger.Warn("transfer failed", "slug", game.Slug, "asset", asset.String(), "path", target, "error", err)
		emit(failureStatus(ctx, err, ""))
		return
	}

	emit(domain.Done(target))
}

// fetchCandidates lists artwork for the pair, preferring the platform-keyed
// endpoint for store-managed games since it sidesteps name ambiguity. An
// unknown store id falls back to the resolved game id.
func (e *Engine) fetchCandidates(ctx context.Context, game domain.Game, asset domain.AssetType, gameID int64, dimensions string) ([]sgdb.ImageAsset, error) {
	if game.HasServiceID() {
		candidates, err := e.client.AssetsByPlatform(ctx, asset, game.Service, game.ServiceID, dimensions)
		if err == nil {
			return candidates, nil
		}
		if !errors.Is(err, sgdb.ErrNotFound) {
			return nil, err
		}
	}
	return e.client.Assets(ctx, asset, gameID, dimensions)
}

// failureStatus converts a pipeline error into the task's terminal status.
// Cancellation is kept distinct from failure so the summary can tell
// "stopped by user" from "stopped by error".
func failureStatus(ctx context.Context, err error, prefix string) domain.Status {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.Cancelled()
	}
	if errors.Is(err, ErrNoMatch) {
		return domain.Failed("no match")
	}
	return domain.Failed(prefix + err.Error())
}
