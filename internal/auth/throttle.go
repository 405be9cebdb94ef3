package auth

import (
	"sync"
	"time"
)

type attemptWindow struct {
	start time.Time
	count int
}

// Throttle limits login attempts per client key within a fixed window. State
// is process-local: a restart clears all counters, which is an accepted
// weakness of this design, and counters are not shared between instances.
type Throttle struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	attempts map[string]*attemptWindow

	now func() time.Time // overridable in tests
}

// NewThrottle creates a throttle allowing max attempts per key per window.
func NewThrottle(window time.Duration, max int) *Throttle {
	return &Throttle{
		window:   window,
		max:      max,
		attempts: make(map[string]*attemptWindow),
		now:      time.Now,
	}
}

// Allow records an attempt for the key and reports whether it is within the
// limit. Every attempt counts, successful or not, so the decision can be made
// before credentials are examined.
func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	w, ok := t.attempts[key]
	if !ok || now.Sub(w.start) >= t.window {
		w = &attemptWindow{start: now}
		t.attempts[key] = w
	}
	w.count++
	return w.count <= t.max
}

// Prune drops windows that have already elapsed. Called periodically so the
// map does not grow with every client ever seen.
func (t *Throttle) Prune() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for key, w := range t.attempts {
		if now.Sub(w.start) >= t.window {
			delete(t.attempts, key)
		}
	}
}
