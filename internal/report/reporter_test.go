package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/fetch"
)

func TestReporter_PrintsTerminalStatesOnly(t *testing.T) {
	games := []domain.Game{
		{Name: "Hades", Slug: "hades"},
		{Name: "The Witcher 3", Slug: "the-witcher-3"},
	}

	events := make(chan domain.ProgressEvent, 8)
	events <- domain.ProgressEvent{Slug: "hades", Asset: domain.AssetGrid, Status: domain.Searching()}
	events <- domain.ProgressEvent{Slug: "hades", Asset: domain.AssetGrid, Status: domain.Downloading()}
	events <- domain.ProgressEvent{Slug: "hades", Asset: domain.AssetGrid, Status: domain.Done("/data/lutris/coverart/hades.jpg")}
	events <- domain.ProgressEvent{Slug: "the-witcher-3", Asset: domain.AssetHero, Status: domain.Failed("no match")}
	events <- domain.ProgressEvent{Slug: "the-witcher-3", Asset: domain.AssetIcon, Status: domain.Skipped("already exists")}
	close(events)

	var buf bytes.Buffer
	New(&buf, games).Consume(events)

	out := buf.String()
	assert.Contains(t, out, "✓ grid    Hades → /data/lutris/coverart/hades.jpg")
	assert.Contains(t, out, "✗ hero    The Witcher 3 (no match)")
	assert.Contains(t, out, "─ icon    The Witcher 3 (already exists)")
	assert.NotContains(t, out, "searching")
	assert.NotContains(t, out, "downloading")
}

func TestReporter_UnknownSlugFallsBack(t *testing.T) {
	events := make(chan domain.ProgressEvent, 1)
	events <- domain.ProgressEvent{Slug: "celeste", Asset: domain.AssetGrid, Status: domain.Failed("no match")}
	close(events)

	var buf bytes.Buffer
	New(&buf, nil).Consume(events)

	assert.Contains(t, buf.String(), "celeste (no match)")
}

func TestReporter_PrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil)

	r.PrintSummary(domain.RunSummary{Done: 3, Skipped: 2, Failed: 1, Elapsed: 1500 * time.Millisecond})
	assert.Contains(t, buf.String(), "Done! Downloaded: 3, Skipped: 2, Failed: 1 (1.5s)")
	assert.NotContains(t, buf.String(), "Cancelled")

	buf.Reset()
	r.PrintSummary(domain.RunSummary{Done: 1, Cancelled: 4, Elapsed: time.Second})
	assert.Contains(t, buf.String(), "Cancelled: 4")
}

func TestDryRun(t *testing.T) {
	root := t.TempDir()
	layout := fetch.Layout{
		DataDir: filepath.Join(root, "lutris"),
		IconDir: filepath.Join(root, "icons"),
	}

	existing := layout.AssetPath(domain.AssetGrid, "hades")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	games := []domain.Game{{Name: "Hades", Slug: "hades"}}
	assets := []domain.AssetType{domain.AssetGrid, domain.AssetHero}

	var buf bytes.Buffer
	DryRun(&buf, layout, games, assets, false)

	out := buf.String()
	assert.Contains(t, out, "─ grid    Hades (already exists)")
	assert.Contains(t, out, "→ hero    Hades → "+layout.AssetPath(domain.AssetHero, "hades"))
	assert.Contains(t, out, "would download 1, skip 1")

	// force ignores existing files
	buf.Reset()
	DryRun(&buf, layout, games, assets, true)
	assert.Contains(t, buf.String(), "would download 2, skip 0")
}
