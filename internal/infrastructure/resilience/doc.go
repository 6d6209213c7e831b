/*
Package resilience provides circuit breaker implementation for graceful degradation.

# Overview

This package implements the circuit breaker pattern to prevent cascading failures
and provide graceful degradation when the upstream API becomes unavailable.

# Features

- Three-state circuit breaker (Closed, Open, Half-Open)
- Consecutive-failure threshold with recovery timeout
- Automatic state transitions
- State change callbacks for monitoring
- Named-instance registry with aggregate state reporting
- Thread-safe operations; the guarded call runs outside the lock

# Usage

	// Create a circuit breaker
	breaker := resilience.New("stars-api", resilience.Settings{
		FailureThreshold: 5,
		RecoveryTimeout:  60 * time.Second,
		SuccessThreshold: 2,
		OnStateChange: func(name string, from, to resilience.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	// Execute request through breaker
	result, err := breaker.Execute(func() (interface{}, error) {
		return client.Call()
	})

# States

- Closed: Normal operation, requests pass through
- Open: Upstream unavailable, requests fail immediately with ErrCircuitOpen
- Half-Open: Testing if the upstream recovered, trial requests allowed

# Pattern

	Closed --[failures]-> Open --[recovery timeout]-> Half-Open --[successes]-> Closed
	                                                    |
	                                               [failures]
	                                                    |
	                                                    v
	                                                  Open
*/
package resilience
