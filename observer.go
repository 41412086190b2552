package truelist

import (
	"time"
)

// Observer provides hooks for monitoring SDK operations.
// Implement this interface to track latencies and retry rates, or use the
// provided LoggingObserver (zerolog) and MetricsObserver (Prometheus).
//
// Observer methods are called synchronously on the calling goroutine and
// should be fast and non-blocking.
//
// Example:
//
//	type printObserver struct{}
//
//	func (printObserver) OnRequestStart(method, path string) {}
//
//	func (printObserver) OnRequestEnd(method, path string, d time.Duration, err error) {
//	    fmt.Printf("%s %s took %v (err=%v)\n", method, path, d, err)
//	}
//
//	func (printObserver) OnRetryAttempt(method, path string, attempt int, delay time.Duration, err error) {}
//
//	func (printObserver) OnCircuitBreakerStateChange(oldState, newState truelist.CircuitState) {}
type Observer interface {
	// OnRequestStart is called when a logical call starts, before the first
	// HTTP attempt.
	OnRequestStart(method, path string)

	// OnRequestEnd is called when a logical call completes, after all retry
	// attempts. duration spans the whole call including backoff sleeps;
	// err is nil on success.
	OnRequestEnd(method, path string, duration time.Duration, err error)

	// OnRetryAttempt is called before each backoff sleep. attempt is the
	// retry number (1, 2, ...), delay the wait about to be imposed, and err
	// the classified error that triggered the retry.
	OnRetryAttempt(method, path string, attempt int, delay time.Duration, err error)

	// OnCircuitBreakerStateChange is called when the circuit breaker changes
	// state, if one is configured.
	OnCircuitBreakerStateChange(oldState, newState CircuitState)
}

// NoopObserver is the default Observer; every hook does nothing.
type NoopObserver struct{}

// OnRequestStart does nothing
func (NoopObserver) OnRequestStart(method, path string) {}

// OnRequestEnd does nothing
func (NoopObserver) OnRequestEnd(method, path string, duration time.Duration, err error) {}

// OnRetryAttempt does nothing
func (NoopObserver) OnRetryAttempt(method, path string, attempt int, delay time.Duration, err error) {
}

// OnCircuitBreakerStateChange does nothing
func (NoopObserver) OnCircuitBreakerStateChange(oldState, newState CircuitState) {}
