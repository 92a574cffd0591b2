package domain

import (
	"fmt"
	"strings"
)

// AssetType identifies one of the four artwork categories SteamGridDB serves.
// The set is closed; per-category properties live in the assetTable below
// rather than in per-variant methods.
type AssetType int

const (
	AssetGrid AssetType = iota
	AssetHero
	AssetLogo
	AssetIcon
)

// assetInfo holds the static per-category properties: the SteamGridDB API
// path segment, the Lutris target subdirectory, the fixed on-disk extension
// and the human-readable name.
type assetInfo struct {
	apiPath   string
	subdir    string
	extension string
	display   string
}

// Lutris expects fixed extensions per directory regardless of the source
// MIME type; icons live outside the lutris data dir entirely (see config).
var assetTable = [...]assetInfo{
	AssetGrid: {apiPath: "grids", subdir: "coverart", extension: ".jpg", display: "grid"},
	AssetHero: {apiPath: "heroes", subdir: "heroes", extension: ".jpg", display: "hero"},
	AssetLogo: {apiPath: "logos", subdir: "logos", extension: ".jpg", display: "logo"},
	AssetIcon: {apiPath: "icons", subdir: "icons", extension: ".png", display: "icon"},
}

// AllAssetTypes returns the four supported categories in display order.
func AllAssetTypes() []AssetType {
	return []AssetType{AssetGrid, AssetHero, AssetLogo, AssetIcon}
}

// APIPath returns the SteamGridDB endpoint segment for this category.
func (a AssetType) APIPath() string { return assetTable[a].apiPath }

// Subdir returns the Lutris asset subdirectory for this category.
func (a AssetType) Subdir() string { return assetTable[a].subdir }

// Extension returns the fixed on-disk file extension, including the dot.
func (a AssetType) Extension() string { return assetTable[a].extension }

// String returns the human-readable category name.
func (a AssetType) String() string {
	if a < 0 || int(a) >= len(assetTable) {
		return fmt.Sprintf("AssetType(%d)", int(a))
	}
	return assetTable[a].display
}

// ParseAssetType converts a CLI token to an AssetType. Both singular and
// plural spellings are accepted, case-insensitively.
func ParseAssetType(s string) (AssetType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid", "grids":
		return AssetGrid, nil
	case "hero", "heroes":
		return AssetHero, nil
	case "logo", "logos":
		return AssetLogo, nil
	case "icon", "icons":
		return AssetIcon, nil
	default:
		return 0, fmt.Errorf("unknown asset type: %q", s)
	}
}

// ParseAssetTypes parses a comma-separated CLI list into a deduplicated,
// display-ordered slice.
func ParseAssetTypes(list string) ([]AssetType, error) {
	seen := make(map[AssetType]bool)
	for _, tok := range strings.Split(list, ",") {
		if tok = strings.TrimSpace(tok); tok == "" {
			continue
		}
		a, err := ParseAssetType(tok)
		if err != nil {
			return nil, err
		}
		seen[a] = true
	}
	var out []AssetType
	for _, a := range AllAssetTypes() {
		if seen[a] {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no asset types selected")
	}
	return out, nil
}
