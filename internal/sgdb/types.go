package sgdb

// listEnvelope is the generic SteamGridDB response wrapper for endpoints
// returning a list of results.
type listEnvelope[T any] struct {
	Success bool     `json:"success"`
	Data    []T      `json:"data"`
	Errors  []string `json:"errors,omitempty"`
}

// objectEnvelope wraps endpoints returning a single object, such as the
// platform id lookup.
type objectEnvelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Errors  []string `json:"errors,omitempty"`
}

// SearchResult is one game returned by the autocomplete search endpoint.
// Results arrive ranked by relevance; the order is preserved.
type SearchResult struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Types    []string `json:"types,omitempty"`
	Verified bool     `json:"verified,omitempty"`
}

// GameInfo is the game object returned by the platform id lookup endpoint.
type GameInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ImageAsset is a single artwork candidate. The response schema is identical
// across the grid/hero/logo/icon endpoints, so one struct covers all four.
type ImageAsset struct {
	ID     int64  `json:"id"`
	Score  int    `json:"score,omitempty"`
	Style  string `json:"style,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	NSFW   bool   `json:"nsfw,omitempty"`
	Humor  bool   `json:"humor,omitempty"`
	Mime   string `json:"mime,omitempty"`
	URL    string `json:"url"`
	Thumb  string `json:"thumb,omitempty"`
}
