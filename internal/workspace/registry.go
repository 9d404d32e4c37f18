// internal/workspace/registry.go
package workspace

import (
	"sync"
	"time"
)

// Registry keeps one View per session.
type Registry struct {
	mu    sync.Mutex
	views map[string]*View
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]*View),
		now:   time.Now,
	}
}

// Get returns the session's view, creating it on first use.
func (r *Registry) Get(sessionID string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[sessionID]
	if !ok {
		v = newView(r.now)
		r.views[sessionID] = v
	}
	return v
}

// Drop discards the session's view. Used as a logout teardown hook.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, sessionID)
}

// Sweep evicts views idle for longer than idle and reports how many went.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, v := range r.views {
		if v.lastTouched().Before(cutoff) {
			delete(r.views, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
