package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lutrisart/lutrisart/internal/domain"
	"github.com/lutrisart/lutrisart/internal/sgdb"
)

func TestResolve_PlatformLookupPreferred(t *testing.T) {
	stub := &stubClient{game: sgdb.GameInfo{ID: 12345, Name: "Hades"}}
	r := NewResolver(stub, testLogger())

	id, err := r.Resolve(context.Background(), domain.Game{
		Slug: "hades", Service: "steam", ServiceID: "1145360",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 12345 {
		t.Errorf("id = %d, want 12345", id)
	}
	if stub.gameCalls != 1 || stub.searchCalls != 0 {
		t.Errorf("expected one platform lookup and no search, got %d/%d", stub.gameCalls, stub.searchCalls)
	}
}

func TestResolve_UnknownStoreIDFallsBackToSearch(t *testing.T) {
	stub := &stubClient{
		gameErr:       sgdb.ErrNotFound,
		searchResults: []sgdb.SearchResult{{ID: 42, Name: "Obscure Game"}},
	}
	r := NewResolver(stub, testLogger())

	id, err := r.Resolve(context.Background(), domain.Game{
		Slug: "obscure-game", Service: "steam", ServiceID: "999",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if stub.gameCalls != 1 || stub.searchCalls != 1 {
		t.Errorf("expected fallback search after 404, got %d/%d", stub.gameCalls, stub.searchCalls)
	}
}

func TestResolve_SearchUsesDeSlugged(t *testing.T) {
	stub := &stubClient{searchResults: []sgdb.SearchResult{{ID: 7}}}
	r := NewResolver(stub, testLogger())

	if _, err := r.Resolve(context.Background(), domain.Game{Slug: "the-witcher-3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.searchCalls != 1 {
		t.Errorf("searchCalls = %d, want 1", stub.searchCalls)
	}
}

func TestResolve_EmptySearchIsNoMatch(t *testing.T) {
	stub := &stubClient{}
	r := NewResolver(stub, testLogger())

	_, err := r.Resolve(context.Background(), domain.Game{Slug: "the-witcher-3"})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("error = %v, want ErrNoMatch", err)
	}
}

func TestResolve_FailureIsCachedWithinRun(t *testing.T) {
	stub := &stubClient{}
	r := NewResolver(stub, testLogger())
	game := domain.Game{Slug: "the-witcher-3"}

	for range 4 {
		if _, err := r.Resolve(context.Background(), game); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("error = %v, want ErrNoMatch", err)
		}
	}
	if stub.searchCalls != 1 {
		t.Errorf("failed resolution retried: searchCalls = %d, want 1", stub.searchCalls)
	}
}

func TestResolve_ConcurrentSiblingsShareOneLookup(t *testing.T) {
	stub := &stubClient{searchResults: []sgdb.SearchResult{{ID: 7}}}
	r := NewResolver(stub, testLogger())
	game := domain.Game{Slug: "hades"}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if id, err := r.Resolve(context.Background(), game); err != nil || id != 7 {
				t.Errorf("Resolve = %d, %v", id, err)
			}
		}()
	}
	wg.Wait()

	if stub.searchCalls != 1 {
		t.Errorf("concurrent siblings issued %d lookups, want 1", stub.searchCalls)
	}
}
