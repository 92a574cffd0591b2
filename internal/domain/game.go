// Package domain contains the core entities shared across the lutrisart pipeline.
package domain

// Game represents one installed game read from the Lutris database.
// Games are loaded once at run start and treated as read-only afterwards.
type Game struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Runner    string `json:"runner,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Service   string `json:"service,omitempty"`
	ServiceID string `json:"service_id,omitempty"`

	// Set when Lutris already has user-provided artwork for the game.
	HasCustomBanner   bool `json:"has_custom_banner,omitempty"`
	HasCustomCoverArt bool `json:"has_custom_coverart,omitempty"`
}

// DisplayName returns the name to show in reporter output, falling back to
// the slug for rows with an empty name column.
func (g Game) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.Slug
}

// HasServiceID reports whether the game carries enough foreign identifiers
// for a platform-specific SteamGridDB lookup.
func (g Game) HasServiceID() bool {
	return g.Service != "" && g.ServiceID != ""
}
