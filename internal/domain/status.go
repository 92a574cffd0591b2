package domain

import "fmt"

// State enumerates the lifecycle of one download task. Done, Skipped, Failed
// and Cancelled are terminal; a task never returns to Pending within a run.
type State int

const (
	StatePending State = iota
	StateSearching
	StateDownloading
	StateDone
	StateSkipped
	StateFailed
	StateCancelled
)

// String returns the lowercase state name used in logs and events.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSearching:
		return "searching"
	case StateDownloading:
		return "downloading"
	case StateDone:
		return "done"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is the state of one (game, asset) task plus its human-readable
// detail: the saved path for Done, the reason for Skipped/Failed.
type Status struct {
	State  State
	Detail string
}

// Convenience constructors keep status creation uniform across the engine.

func Pending() Status              { return Status{State: StatePending} }
func Searching() Status            { return Status{State: StateSearching} }
func Downloading() Status          { return Status{State: StateDownloading} }
func Done(path string) Status      { return Status{State: StateDone, Detail: path} }
func Skipped(reason string) Status { return Status{State: StateSkipped, Detail: reason} }
func Failed(reason string) Status  { return Status{State: StateFailed, Detail: reason} }
func Cancelled() Status            { return Status{State: StateCancelled, Detail: "stopped by user"} }

// IsTerminal reports whether the status ends the task's lifecycle.
func (s Status) IsTerminal() bool {
	switch s.State {
	case StateDone, StateSkipped, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

// Icon returns the single-glyph marker reporters print for this status.
func (s Status) Icon() string {
	switch s.State {
	case StateSearching:
		return "⟳"
	case StateDownloading:
		return "↓"
	case StateDone:
		return "✓"
	case StateSkipped:
		return "─"
	case StateFailed:
		return "✗"
	case StateCancelled:
		return "!"
	default:
		return "·"
	}
}
