// Package sgdb is a rate-limited client for the SteamGridDB REST API v2.
//
// Metadata calls (search, asset listings, platform lookups) share a pacing
// budget enforcing a minimum inter-request delay; CDN image fetches are
// exempt from pacing. Transient failures (429, 5xx, timeouts) get exactly
// one retry after a fixed backoff before surfacing a sentinel error.
package sgdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/ratelimit"
)

const (
	defaultBaseURL = "https://www.steamgriddb.com/api/v2"

	// HTTP client settings.
	defaultTimeout = 30 * time.Second

	// pacerKey groups all metadata endpoints under one pacing budget.
	pacerKey = "metadata"
)

// Client is a paced SteamGridDB API client.
type Client struct {
	http    *http.Client
	pacer   *ratelimit.Pacer
	logger  *slog.Logger
	baseURL string
	apiKey  string

	// Backoffs before the single retry. Overridable in tests.
	backoff429 time.Duration
	backoff5xx time.Duration
}

// New creates a client with the given API key and minimum delay between
// metadata requests.
func New(apiKey string, requestDelay time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		pacer:      ratelimit.New(requestDelay),
		logger:     logger,
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		backoff429: 5 * time.Second,
		backoff5xx: time.Second,
	}
}

// ValidateKey performs a cheap authenticated request to verify the API key
// before any task starts. Returns ErrInvalidKey (wrapped) on 401/403.
func (c *Client) ValidateKey(ctx context.Context) error {
	_, err := c.doRequest(ctx, "validate", c.baseURL+"/grids/game/1?dimensions=600x900", true)
	if err != nil {
		// A 404 here would still prove the key works.
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return wrapError("validate", "", err)
	}
	return nil
}

// Search looks a game up by name on the autocomplete endpoint. Terms should
// be pre-converted from slugs (dashes replaced with spaces).
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	u := c.baseURL + "/search/autocomplete/" + url.PathEscape(term)

	body, err := c.doRequest(ctx, "search", u, true)
	if err != nil {
		return nil, wrapError("search", term, err)
	}

	var env listEnvelope[SearchResult]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, wrapError("search", term, fmt.Errorf("parse response: %w", err))
	}
	if !env.Success {
		return nil, wrapError("search", term, apiFailure(env.Errors))
	}
	return env.Data, nil
}

// GameByPlatformID resolves a foreign platform id (e.g. a Steam app id) to
// the SteamGridDB game record.
func (c *Client) GameByPlatformID(ctx context.Context, platform, platformID string) (GameInfo, error) {
	target := platform + "/" + platformID
	u := fmt.Sprintf("%s/games/%s/%s", c.baseURL, url.PathEscape(platform), url.PathEscape(platformID))

	body, err := c.doRequest(ctx, "game", u, true)
	if err != nil {
		return GameInfo{}, wrapError("game", target, err)
	}

	var env objectEnvelope[GameInfo]
	if err := json.Unmarshal(body, &env); err != nil {
		return GameInfo{}, wrapError("game", target, fmt.Errorf("parse response: %w", err))
	}
	if !env.Success {
		return GameInfo{}, wrapError("game", target, apiFailure(env.Errors))
	}
	return env.Data, nil
}

// Assets fetches artwork candidates for a game by its SteamGridDB id.
// dimensions is passed through as a filter when non-empty (grids only in
// practice).
func (c *Client) Assets(ctx context.Context, asset domain.AssetType, gameID int64, dimensions string) ([]ImageAsset, error) {
	target := fmt.Sprintf("game/%d", gameID)
	u := fmt.Sprintf("%s/%s/game/%d", c.baseURL, asset.APIPath(), gameID)
	u = withDimensions(u, dimensions)

	return c.listAssets(ctx, u, target)
}

// AssetsByPlatform fetches artwork candidates keyed by a foreign platform id,
// which gives a more accurate match than text search for store-managed games.
func (c *Client) AssetsByPlatform(ctx context.Context, asset domain.AssetType, platform, platformID, dimensions string) ([]ImageAsset, error) {
	target := platform + "/" + platformID
	u := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, asset.APIPath(), url.PathEscape(platform), url.PathEscape(platformID))
	u = withDimensions(u, dimensions)

	return c.listAssets(ctx, u, target)
}

// FetchImage downloads raw image bytes from a CDN URL. Image fetches skip
// both the bearer header and the metadata pacing budget.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	body, err := c.doRequest(ctx, "image", imageURL, false)
	if err != nil {
		return nil, wrapError("image", imageURL, err)
	}
	return body, nil
}

func (c *Client) listAssets(ctx context.Context, u, target string) ([]ImageAsset, error) {
	body, err := c.doRequest(ctx, "assets", u, true)
	if err != nil {
		return nil, wrapError("assets", target, err)
	}

	var env listEnvelope[ImageAsset]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, wrapError("assets", target, fmt.Errorf("parse response: %w", err))
	}
	if !env.Success {
		return nil, wrapError("assets", target, apiFailure(env.Errors))
	}
	return env.Data, nil
}

// doRequest executes a GET with pacing, auth, and the single-retry policy.
// paced selects the metadata pacing budget; image fetches pass false and go
// out unauthenticated.
func (c *Client) doRequest(ctx context.Context, op, u string, paced bool) ([]byte, error) {
	if paced {
		if err := c.pacer.Wait(ctx, pacerKey); err != nil {
			return nil, fmt.Errorf("pacing wait: %w", err)
		}
	}

	body, retryAfter, err := c.attempt(ctx, op, u, paced)
	if retryAfter <= 0 {
		return body, err
	}

	// Transient failure: back off once, then one retry decides it.
	c.logger.Debug("sgdb retrying request",
		"op", op,
		"backoff", retryAfter,
		"error", err,
	)
	if serr := sleepCtx(ctx, retryAfter); serr != nil {
		return nil, serr
	}

	body, _, err = c.attempt(ctx, op, u, paced)
	return body, err
}

// attempt performs one HTTP round trip. A positive retryAfter marks the
// error as transient and eligible for the single retry.
func (c *Client) attempt(ctx context.Context, op, u string, authed bool) (body []byte, retryAfter time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "lutrisart/1.0")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("sgdb request", "op", op, "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		// Timeouts and transport failures count as transient.
		return nil, c.backoff5xx, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.backoff5xx, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, 0, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, 0, ErrInvalidKey
	case resp.StatusCode == http.StatusNotFound:
		return nil, 0, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, c.backoff429, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, c.backoff5xx, ErrUnavailable
	default:
		return nil, 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// withDimensions appends the dimensions query parameter when set.
func withDimensions(u, dimensions string) string {
	if dimensions == "" {
		return u
	}
	return u + "?dimensions=" + url.QueryEscape(dimensions)
}

// apiFailure converts the envelope's errors array into an error value.
func apiFailure(errs []string) error {
	if len(errs) == 0 {
		return fmt.Errorf("api reported failure")
	}
	return fmt.Errorf("api reported failure: %s", strings.Join(errs, "; "))
}

// sleepCtx sleeps for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
