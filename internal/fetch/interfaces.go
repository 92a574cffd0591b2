package fetch

import (
	"context"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/sgdb"
)

// CatalogClient is the slice of the SteamGridDB client the engine depends
// on. Narrowing to an interface keeps the pipeline testable with a stub
// transport.
type CatalogClient interface {
	// Search looks a game up by free-text term, ranked by the service.
	Search(ctx context.Context, term string) ([]sgdb.SearchResult, error)
	// GameByPlatformID resolves a foreign store id to a catalog game record.
	GameByPlatformID(ctx context.Context, platform, platformID string) (sgdb.GameInfo, error)
	// Assets lists artwork candidates for a resolved game id.
	Assets(ctx context.Context, asset domain.AssetType, gameID int64, dimensions string) ([]sgdb.ImageAsset, error)
	// AssetsByPlatform lists artwork candidates keyed by a foreign store id.
	AssetsByPlatform(ctx context.Context, asset domain.AssetType, platform, platformID, dimensions string) ([]sgdb.ImageAsset, error)
	// FetchImage downloads raw image bytes from a CDN URL.
	FetchImage(ctx context.Context, url string) ([]byte, error)
}
