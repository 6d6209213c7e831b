package resilience

import "sync"

// Registry manages named circuit breaker instances. Breakers are created
// lazily on first use and live for the process lifetime.
type Registry struct {
	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewRegistry creates an empty breaker registry
func NewRegistry() *Registry {
	return &Registry{
		breakers: make(map[string]*Breaker),
	}
}

// GetOrCreate returns the breaker registered under name, creating it with
// the given settings if absent. Settings on a repeat call are ignored;
// the first writer wins.
func (r *Registry) GetOrCreate(name string, settings Settings) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[name]; ok {
		return b
	}

	b := New(name, settings)
	r.breakers[name] = b
	return b
}

// Get returns the breaker registered under name, if any
func (r *Registry) Get(name string) (*Breaker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.breakers[name]
	return b, ok
}

// AllStates returns a snapshot of every registered breaker
func (r *Registry) AllStates() map[string]Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := make(map[string]Snapshot, len(r.breakers))
	for name, b := range r.breakers {
		states[name] = b.Snapshot()
	}
	return states
}

// ResetAll forces every breaker back to Closed with zeroed counts.
// Thresholds and recovery timeouts are left unchanged, and entries are
// never removed.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.breakers {
		b.mu.Lock()
		b.setState(StateClosed)
		b.failureCount = 0
		b.successCount = 0
		b.mu.Unlock()
	}
}
