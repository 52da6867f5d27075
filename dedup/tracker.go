// Package dedup provides the in-process cache of already-processed
// vulnerability and advisory identifiers. The tracker is a performance
// optimization only: the alert store's existence check remains the
// authoritative idempotency guarantee across process restarts.
package dedup

import "sync"

// Tracker is a concurrency-safe set of processed identifiers owned by a
// single engine instance
type Tracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// Seen reports whether the identifier was already processed
func (t *Tracker) Seen(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[id]
	return ok
}

// Mark records the identifier as processed
func (t *Tracker) Mark(id string) {
	if id == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[id] = struct{}{}
}

// Len returns the number of tracked identifiers
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// Reset clears the tracker. Called only by the explicit maintenance
// operation, never implicitly.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen = make(map[string]struct{})
}
