package domain

import "time"

// ProgressEvent records one status transition of a download task. Events for
// a single task arrive in transition order; there is no ordering guarantee
// across tasks. The engine emits each transition exactly once.
type ProgressEvent struct {
	Slug   string
	Asset  AssetType
	Status Status
}

// RunSummary aggregates terminal task states after a run completes.
type RunSummary struct {
	Done      int
	Skipped   int
	Failed    int
	Cancelled int
	Elapsed   time.Duration
}

// Total returns the number of tasks accounted for in the summary.
func (s RunSummary) Total() int {
	return s.Done + s.Skipped + s.Failed + s.Cancelled
}

// Record folds one terminal status into the summary. Non-terminal statuses
// are ignored.
func (s *RunSummary) Record(st Status) {
	switch st.State {
	case StateDone:
		s.Done++
	case StateSkipped:
		s.Skipped++
	case StateFailed:
		s.Failed++
	case StateCancelled:
		s.Cancelled++
	}
}
