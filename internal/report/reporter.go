// Package report contains the headless consumers of engine progress events:
// a batch reporter that prints one line per finished task, and a dry-run
// planner that prints what a run would do without touching the network.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/lutrisart/lutrisart/internal/domain"
)

// Reporter prints terminal task states as they arrive. Intermediate
// transitions (searching, downloading) are dropped; a batch consumer only
// cares about outcomes.
type Reporter struct {
	out   io.Writer
	names map[string]string
}

// New creates a reporter writing to out. Game display names are resolved
// from games by slug; unknown slugs fall back to the slug itself.
func New(out io.Writer, games []domain.Game) *Reporter {
	names := make(map[string]string, len(games))
	for _, g := range games {
		names[g.Slug] = g.DisplayName()
	}
	return &Reporter{out: out, names: names}
}

// Consume drains events until the channel closes, printing one line per
// terminal status.
func (r *Reporter) Consume(events <-chan domain.ProgressEvent) {
	for ev := range events {
		if !ev.Status.IsTerminal() {
			continue
		}
		r.printLine(ev)
	}
}

func (r *Reporter) printLine(ev domain.ProgressEvent) {
	name := r.names[ev.Slug]
	if name == "" {
		name = ev.Slug
	}
	switch ev.Status.State {
	case domain.StateDone:
		fmt.Fprintf(r.out, "%s %-7s %s → %s\n", ev.Status.Icon(), ev.Asset, name, ev.Status.Detail)
	default:
		fmt.Fprintf(r.out, "%s %-7s %s (%s)\n", ev.Status.Icon(), ev.Asset, name, ev.Status.Detail)
	}
}

// PrintSummary writes the end-of-run totals line.
func (r *Reporter) PrintSummary(s domain.RunSummary) {
	fmt.Fprintf(r.out, "\nDone! Downloaded: %d, Skipped: %d, Failed: %d", s.Done, s.Skipped, s.Failed)
	if s.Cancelled > 0 {
		fmt.Fprintf(r.out, ", Cancelled: %d", s.Cancelled)
	}
	fmt.Fprintf(r.out, " (%s)\n", s.Elapsed.Round(time.Millisecond))
}
