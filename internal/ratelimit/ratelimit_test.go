package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_EnforcesInterval(t *testing.T) {
	p := New(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for range 3 {
		if err := p.Wait(ctx, "metadata"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)

	// First call is immediate; the next two each wait ~50ms.
	if elapsed < 90*time.Millisecond {
		t.Errorf("three paced calls completed in %v, want >= ~100ms", elapsed)
	}
}

func TestWait_ZeroIntervalNeverBlocks(t *testing.T) {
	p := New(0)
	ctx := context.Background()

	start := time.Now()
	for range 100 {
		if err := p.Wait(ctx, "metadata"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("unpaced calls took %v", elapsed)
	}
}

func TestWait_KeysAreIndependent(t *testing.T) {
	p := New(time.Hour)
	ctx := context.Background()

	// Each key gets its own bucket, so the first call per key is immediate.
	for _, key := range []string{"a", "b", "c"} {
		done := make(chan error, 1)
		go func() { done <- p.Wait(ctx, key) }()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("unexpected error for key %q: %v", key, err)
			}
		case <-time.After(time.Second):
			t.Fatalf("first call for key %q blocked", key)
		}
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	p := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	// Drain the initial token.
	if !p.Allow("metadata") {
		t.Fatal("initial token unavailable")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- p.Wait(ctx, "metadata") }()

	cancel()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected error after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}
