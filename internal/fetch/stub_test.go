package fetch

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/sgdb"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pngBytes returns a minimal valid PNG payload for transfer tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// stubClient is a scripted CatalogClient with per-endpoint call counters.
type stubClient struct {
	mu sync.Mutex

	searchCalls        int
	gameCalls          int
	assetCalls         int
	platformAssetCalls int
	imageCalls         int

	searchResults []sgdb.SearchResult
	searchErr     error

	game    sgdb.GameInfo
	gameErr error

	assets            []sgdb.ImageAsset
	assetsErr         error
	platformAssets    []sgdb.ImageAsset
	platformAssetsErr error

	image      []byte
	imageErr   error
	imageDelay time.Duration

	// downloading tracks concurrent FetchImage calls for the concurrency
	// bound property; maxDownloading records the high-water mark.
	downloading    atomic.Int32
	maxDownloading atomic.Int32
}

func (s *stubClient) Search(_ context.Context, _ string) ([]sgdb.SearchResult, error) {
	s.mu.Lock()
	s.searchCalls++
	s.mu.Unlock()
	return s.searchResults, s.searchErr
}

func (s *stubClient) GameByPlatformID(_ context.Context, _, _ string) (sgdb.GameInfo, error) {
	s.mu.Lock()
	s.gameCalls++
	s.mu.Unlock()
	return s.game, s.gameErr
}

func (s *stubClient) Assets(_ context.Context, _ domain.AssetType, _ int64, _ string) ([]sgdb.ImageAsset, error) {
	s.mu.Lock()
	s.assetCalls++
	s.mu.Unlock()
	return s.assets, s.assetsErr
}

func (s *stubClient) AssetsByPlatform(_ context.Context, _ domain.AssetType, _, _, _ string) ([]sgdb.ImageAsset, error) {
	s.mu.Lock()
	s.platformAssetCalls++
	s.mu.Unlock()
	return s.platformAssets, s.platformAssetsErr
}

func (s *stubClient) FetchImage(_ context.Context, _ string) ([]byte, error) {
	s.mu.Lock()
	s.imageCalls++
	s.mu.Unlock()

	cur := s.downloading.Add(1)
	for {
		prev := s.maxDownloading.Load()
		if cur <= prev || s.maxDownloading.CompareAndSwap(prev, cur) {
			break
		}
	}
	if s.imageDelay > 0 {
		time.Sleep(s.imageDelay)
	}
	s.downloading.Add(-1)

	return s.image, s.imageErr
}

// totalCalls sums every network-facing counter.
func (s *stubClient) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchCalls + s.gameCalls + s.assetCalls + s.platformAssetCalls + s.imageCalls
}
