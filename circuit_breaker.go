package truelist

import (
	"sync"
	"time"
)

// CircuitState represents the current state of the circuit breaker.
//
// State transitions:
//   - Closed -> Open: when the failure threshold is reached
//   - Open -> Half-Open: after the timeout period expires
//   - Half-Open -> Closed: when the success threshold is reached
//   - Half-Open -> Open: on any failure
type CircuitState int

const (
	// CircuitClosed is the normal operating state; requests pass through.
	CircuitClosed CircuitState = iota
	// CircuitOpen fails requests fast without attempting the API.
	CircuitOpen
	// CircuitHalfOpen lets requests through to probe for recovery.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state
func (cs CircuitState) String() string {
	switch cs {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the optional circuit breaker. When set on
// the Config, a consistently failing API makes the client fail fast with
// ErrCircuitOpen instead of burning the retry budget on every call.
//
// Example:
//
//	config := truelist.DefaultConfig().
//	    WithAPIKey(key).
//	    WithCircuitBreaker(truelist.CircuitBreakerConfig{
//	        FailureThreshold: 5,
//	        SuccessThreshold: 2,
//	        Timeout:          30 * time.Second,
//	    })
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive transport/server
	// failures that opens the circuit.
	FailureThreshold int

	// SuccessThreshold is the number of consecutive successes in half-open
	// state that closes the circuit again.
	SuccessThreshold int

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration
}

// circuitBreaker tracks consecutive outcomes across logical calls. Only
// retryable failures (connection, timeout, 5xx, 429) count toward opening:
// a caller-side 4xx says nothing about the health of the service.
type circuitBreaker struct {
	config   CircuitBreakerConfig
	observer Observer

	mu           sync.Mutex
	state        CircuitState
	failures     int
	successes    int
	stateChanged time.Time
}

func newCircuitBreaker(config CircuitBreakerConfig, observer Observer) *circuitBreaker {
	if observer == nil {
		observer = &NoopObserver{}
	}
	return &circuitBreaker{
		config:   config,
		observer: observer,
		state:    CircuitClosed,
	}
}

// Execute runs fn if the circuit allows it. Returns ErrCircuitOpen as a
// classified error when the circuit is open.
func (cb *circuitBreaker) Execute(fn func() error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}
	err := fn()
	cb.afterCall(err)
	return err
}

// State returns the current state of the circuit breaker.
func (cb *circuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset manually closes the circuit and clears its counters.
func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transition(CircuitClosed)
	cb.failures = 0
	cb.successes = 0
}

func (cb *circuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen {
		if time.Since(cb.stateChanged) < cb.config.Timeout {
			return &Error{
				Type:      ErrorTypeCircuitOpen,
				Message:   "circuit breaker is open",
				Retryable: false,
			}
		}
		cb.transition(CircuitHalfOpen)
		cb.successes = 0
	}
	return nil
}

func (cb *circuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil && IsRetryable(err) {
		cb.failures++
		cb.successes = 0
		if cb.state == CircuitHalfOpen || cb.failures >= cb.config.FailureThreshold {
			cb.transition(CircuitOpen)
		}
		return
	}

	// Success, or a terminal client-side error; either way the service
	// answered, so the circuit heals.
	cb.failures = 0
	if cb.state == CircuitHalfOpen {
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(CircuitClosed)
		}
	}
}

// transition moves to a new state and notifies the observer. Callers hold
// cb.mu.
func (cb *circuitBreaker) transition(next CircuitState) {
	if cb.state == next {
		return
	}
	prev := cb.state
	cb.state = next
	cb.stateChanged = time.Now()
	cb.observer.OnCircuitBreakerStateChange(prev, next)
}
