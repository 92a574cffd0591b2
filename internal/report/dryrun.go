package report

import (
	"fmt"
	"io"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/fetch"
)

// DryRun prints the plan a real run would execute: one line per (game,
// asset) pair saying whether it would be downloaded or skipped, based only
// on the local filesystem. Nothing touches the network.
func DryRun(out io.Writer, layout fetch.Layout, games []domain.Game, assets []domain.AssetType, force bool) {
	var fetchCount, skipCount int
	for _, g := range games {
		for _, a := range assets {
			target := layout.AssetPath(a, g.Slug)
			if !force && layout.Exists(a, g.Slug) {
				skipCount++
				fmt.Fprintf(out, "─ %-7s %s (already exists)\n", a, g.DisplayName())
				continue
			}
			fetchCount++
			fmt.Fprintf(out, "→ %-7s %s → %s\n", a, g.DisplayName(), target)
		}
	}
	fmt.Fprintf(out, "\nwould download %d, skip %d\n", fetchCount, skipCount)
}
