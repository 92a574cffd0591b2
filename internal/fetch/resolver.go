package fetch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/sgdb"
	"github.com/lutrisart/lutrisart/internal/util"
)

// ErrNoMatch means neither the platform lookup nor the text search produced
// a SteamGridDB game for this entry.
var ErrNoMatch = errors.New("no match")

// resolution is one cache entry. The sync.Once makes concurrent sibling
// tasks for the same game share a single in-flight lookup: the second caller
// blocks on Do until the first one's result lands, instead of issuing a
// duplicate network call. Failed resolutions stay cached so a game is never
// retried within a run.
type resolution struct {
	once sync.Once
	id   int64
	err  error
}

// Resolver maps Lutris games to SteamGridDB game ids with per-run
// memoization. At most one lookup reaches the network per game per run.
type Resolver struct {
	client CatalogClient
	cache  *syncMap[string, *resolution]
	logger *slog.Logger
}

// NewResolver creates a resolver with an empty cache. The cache lives for
// one run only and is never persisted.
func NewResolver(client CatalogClient, logger *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		cache:  newSyncMap[string, *resolution](),
		logger: logger,
	}
}

// Resolve returns the SteamGridDB id for a game, consulting the cache first.
func (r *Resolver) Resolve(ctx context.Context, game domain.Game) (int64, error) {
	entry, _ := r.cache.LoadOrStore(game.Slug, &resolution{})
	entry.once.Do(func() {
		entry.id, entry.err = r.lookup(ctx, game)
		if entry.err != nil {
			r.logger.Debug("resolution failed", "slug", game.Slug, "error", entry.err)
		} else {
			r.logger.Debug("resolved game", "slug", game.Slug, "sgdb_id", entry.id)
		}
	})
	return entry.id, entry.err
}

// lookup does the actual network resolution: exact platform-id match first,
// then ranked text search on the de-slugged name. Search results come back
// relevance-ranked by the service; the first hit wins without re-ranking.
func (r *Resolver) lookup(ctx context.Context, game domain.Game) (int64, error) {
	if game.HasServiceID() {
		info, err := r.client.GameByPlatformID(ctx, game.Service, game.ServiceID)
		switch {
		case err == nil:
			return info.ID, nil
		case errors.Is(err, sgdb.ErrNotFound):
			// Store id unknown to SteamGridDB; fall back to text search.
		default:
			return 0, err
		}
	}

	results, err := r.client.Search(ctx, util.SearchTerm(game.Slug))
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, ErrNoMatch
	}
	return results[0].ID, nil
}
