package limiter

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store: a mutex-guarded map of fixed windows
// keyed by address. Suitable for a single instance only.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	// now is overridable in tests.
	now func() time.Time
}

type window struct {
	start    time.Time
	duration time.Duration
	count    int
}

// NewMemoryStore creates a MemoryStore and starts its cleanup loop.
func NewMemoryStore() *MemoryStore {
	s := newMemoryStore()
	go s.cleanupLoop()
	return s
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

var _ Store = (*MemoryStore)(nil)

// Incr counts one request for key. An elapsed window resets to a fresh one
// starting now. The mutex linearizes increments on the same key.
func (s *MemoryStore) Incr(_ context.Context, key string, d time.Duration) (int, time.Duration, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= w.duration {
		w = &window{start: now, duration: d}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.start.Add(w.duration).Sub(now), nil
}

// cleanupLoop periodically drops windows that have elapsed so idle addresses
// do not accumulate.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := s.now()
		s.mu.Lock()
		for key, w := range s.windows {
			if now.Sub(w.start) >= w.duration {
				delete(s.windows, key)
			}
		}
		s.mu.Unlock()
	}
}
