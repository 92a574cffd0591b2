package fetch

import "sync"

// syncMap is a type-safe concurrent map guarded by an RWMutex. The
// resolution cache is read far more often than written (every sibling task
// after the first hits the cache), so a read lock on the fast path beats
// sync.Map's interface overhead.
type syncMap[K comparable, V any] struct {
	m  map[K]V
	mu sync.RWMutex
}

func newSyncMap[K comparable, V any]() *syncMap[K, V] {
	return &syncMap[K, V]{
		m: make(map[K]V),
	}
}

// LoadOrStore returns the existing value for the key if present.
// Otherwise, it stores and returns the given value. The loaded result is
// true if the value was loaded, false if stored.
func (sm *syncMap[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	// First try with read lock.
	sm.mu.RLock()
	actual, loaded = sm.m[key]
	sm.mu.RUnlock()
	if loaded {
		return actual, true
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// Check again in case another goroutine stored a value between
	// releasing RLock and acquiring Lock.
	actual, loaded = sm.m[key]
	if loaded {
		return actual, true
	}

	sm.m[key] = value
	return value, false
}
