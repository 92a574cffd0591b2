package domain

import (
	"testing"
	"time"
)

func TestStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{Pending(), false},
		{Searching(), false},
		{Downloading(), false},
		{Done("/tmp/x.jpg"), true},
		{Skipped("already exists"), true},
		{Failed("no match"), true},
		{Cancelled(), true},
	}

	for _, tt := range tests {
		t.Run(tt.status.State.String(), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunSummaryRecord(t *testing.T) {
	var s RunSummary
	s.Record(Done("/a"))
	s.Record(Done("/b"))
	s.Record(Skipped("already exists"))
	s.Record(Failed("no art found"))
	s.Record(Cancelled())
	s.Record(Searching()) // non-terminal, ignored

	if s.Done != 2 || s.Skipped != 1 || s.Failed != 1 || s.Cancelled != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Total() != 5 {
		t.Errorf("Total() = %d, want 5", s.Total())
	}

	s.Elapsed = 3 * time.Second
	if s.Elapsed != 3*time.Second {
		t.Errorf("Elapsed not retained")
	}
}
