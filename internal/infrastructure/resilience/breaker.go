package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the breaker rejects a call without
// invoking the wrapped function.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half_open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Code returns the numeric code used by the breaker-state gauge
// (0=closed, 1=open, 2=half_open).
func (s State) Code() int {
	switch s {
	case StateOpen:
		return 1
	case StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before a trial
	// call is allowed. Zero means trial calls are allowed immediately;
	// only negative values fall back to the 60s default.
	RecoveryTimeout time.Duration
	// SuccessThreshold is the number of consecutive half-open successes that closes the circuit
	SuccessThreshold int
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from State, to State)
}

// Snapshot is a point-in-time view of a breaker for monitoring
type Snapshot struct {
	Name            string     `json:"name"`
	State           string     `json:"state"`
	FailureCount    int        `json:"failure_count"`
	SuccessCount    int        `json:"success_count"`
	LastFailureTime *time.Time `json:"last_failure_time,omitempty"`
}

// Breaker implements the circuit breaker pattern
type Breaker struct {
	name     string
	settings Settings

	mu           sync.Mutex
	state        State
	failureCount int
	successCount int
	lastFailure  time.Time
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	// Set default values
	if settings.FailureThreshold <= 0 {
		settings.FailureThreshold = 5
	}
	if settings.RecoveryTimeout < 0 {
		settings.RecoveryTimeout = 60 * time.Second
	}
	if settings.SuccessThreshold <= 0 {
		settings.SuccessThreshold = 2
	}

	return &Breaker{
		name:     name,
		settings: settings,
		state:    StateClosed,
	}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Snapshot returns the breaker state for monitoring
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{
		Name:         b.name,
		State:        b.state.String(),
		FailureCount: b.failureCount,
		SuccessCount: b.successCount,
	}
	if !b.lastFailure.IsZero() {
		t := b.lastFailure
		snap.LastFailureTime = &t
	}
	return snap
}

// Execute runs the given request if the circuit breaker accepts it.
// The request itself runs outside the breaker lock; only the state
// check and the success/failure bookkeeping are serialized.
func (b *Breaker) Execute(req func() (interface{}, error)) (interface{}, error) {
	if err := b.beforeRequest(); err != nil {
		return nil, err
	}

	defer func() {
		if e := recover(); e != nil {
			b.afterRequest(false)
			panic(e)
		}
	}()

	result, err := req()
	b.afterRequest(err == nil)
	return result, err
}

// beforeRequest is called before a request is executed
func (b *Breaker) beforeRequest() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if !b.readyForTrial(time.Now()) {
			return ErrCircuitOpen
		}
		b.setState(StateHalfOpen)
		b.successCount = 0
	}
	return nil
}

// afterRequest is called after a request is executed
func (b *Breaker) afterRequest(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		b.onSuccess()
	} else {
		b.onFailure(time.Now())
	}
}

// onSuccess handles a successful request
func (b *Breaker) onSuccess() {
	b.failureCount = 0

	if b.state == StateHalfOpen {
		b.successCount++
		if b.successCount >= b.settings.SuccessThreshold {
			b.setState(StateClosed)
		}
	}
}

// onFailure handles a failed request
func (b *Breaker) onFailure(now time.Time) {
	b.failureCount++
	b.lastFailure = now

	if b.failureCount >= b.settings.FailureThreshold {
		b.setState(StateOpen)
	}
}

// readyForTrial reports whether the recovery timeout has elapsed
func (b *Breaker) readyForTrial(now time.Time) bool {
	if b.lastFailure.IsZero() {
		return false
	}
	return now.Sub(b.lastFailure) >= b.settings.RecoveryTimeout
}

// setState changes the state of the circuit breaker
func (b *Breaker) setState(state State) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}
