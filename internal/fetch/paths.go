package fetch

import (
	"os"
	"path/filepath"

	"github.com/lutrisart/lutrisart/internal/domain"
)

// Layout describes the on-disk directories Lutris reads artwork from.
// Grids, heroes and logos live under the Lutris data dir; icons go to the
// shared hicolor theme directory under a lutris_ filename prefix.
type Layout struct {
	DataDir string // $XDG_DATA_HOME/lutris
	IconDir string // $XDG_DATA_HOME/icons/hicolor/128x128/apps
}

// AssetPath returns the canonical target path for an asset. Filenames derive
// from the game slug with a fixed per-category extension, regardless of the
// source image's MIME type.
func (l Layout) AssetPath(asset domain.AssetType, slug string) string {
	if asset == domain.AssetIcon {
		return filepath.Join(l.IconDir, "lutris_"+slug+asset.Extension())
	}
	return filepath.Join(l.DataDir, asset.Subdir(), slug+asset.Extension())
}

// Exists reports whether the asset file is already present on disk.
func (l Layout) Exists(asset domain.AssetType, slug string) bool {
	_, err := os.Stat(l.AssetPath(asset, slug))
	return err == nil
}
