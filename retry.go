package truelist

import (
	"context"
	"errors"
	"math"
	"time"
)

// BackoffPolicy computes the wait before the next attempt. The attempt
// parameter is zero-based, counting completed prior attempts: the delay
// after the first failed attempt is NextInterval(0).
//
// The SDK's default is ExponentialBackoff without jitter so retry timing is
// deterministic and reproducible. Custom policies can be supplied via
// Config.WithBackoffPolicy:
//
//	type fixed struct{ d time.Duration }
//
//	func (f fixed) NextInterval(attempt int) time.Duration { return f.d }
type BackoffPolicy interface {
	// NextInterval returns the delay before the attempt following the given
	// zero-based attempt index.
	NextInterval(attempt int) time.Duration
}

// ExponentialBackoff implements capped exponential backoff:
//
//	delay = min(InitialInterval * Multiplier^attempt, MaxInterval)
//
// With the defaults (500ms initial, 2.0 multiplier, 8s cap) the delay
// sequence is 500ms, 1s, 2s, 4s, 8s, 8s, ...
//
// There is no jitter: a given attempt index always produces the same delay.
// A server-supplied Retry-After hint bypasses this computation entirely
// (see retryExecutor).
type ExponentialBackoff struct {
	// InitialInterval is the delay after the first failed attempt.
	InitialInterval time.Duration

	// MaxInterval caps the computed delay.
	MaxInterval time.Duration

	// Multiplier is the exponential growth factor per attempt.
	Multiplier float64
}

// DefaultExponentialBackoff returns the backoff policy used when none is
// configured: 500ms initial, doubling per attempt, capped at 8s.
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		InitialInterval: defaultInitialBackoff,
		MaxInterval:     defaultMaxBackoff,
		Multiplier:      defaultBackoffMultiplier,
	}
}

// NextInterval returns the capped exponential delay for the given zero-based
// attempt index.
func (b *ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	interval := float64(b.InitialInterval) * math.Pow(b.Multiplier, float64(attempt))
	if interval > float64(b.MaxInterval) {
		interval = float64(b.MaxInterval)
	}
	return time.Duration(interval)
}

// retryExecutor drives the attempt loop for one logical call. Each call gets
// its own loop state; nothing is shared between concurrent calls.
//
// States per attempt: run the request, classify the outcome, then either
// return (success or terminal error), or sleep the backoff delay and go
// again. Retries stop when the classified error is not retryable, the
// attempt budget is spent, or the caller's context is done.
type retryExecutor struct {
	maxRetries int
	backoff    BackoffPolicy
	observer   Observer
}

func newRetryExecutor(maxRetries int, backoff BackoffPolicy, observer Observer) *retryExecutor {
	if backoff == nil {
		backoff = DefaultExponentialBackoff()
	}
	if observer == nil {
		observer = &NoopObserver{}
	}
	return &retryExecutor{
		maxRetries: maxRetries,
		backoff:    backoff,
		observer:   observer,
	}
}

// Execute runs fn up to maxRetries+1 times. The returned error is always the
// last attempt's classified error, preserving the root cause rather than
// wrapping it in a generic retries-exhausted failure.
func (re *retryExecutor) Execute(ctx context.Context, method, path string, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var clErr *Error
		if !errors.As(err, &clErr) {
			// Not a classified failure (e.g. request construction); terminal.
			return err
		}
		if !clErr.Retryable || attempt >= re.maxRetries {
			return clErr
		}

		// A spent deadline must not trigger another attempt, even though the
		// Timeout classification is nominally retryable.
		if ctx.Err() != nil {
			return contextError(ctx.Err())
		}

		delay := re.backoff.NextInterval(attempt)
		if clErr.Type == ErrorTypeRateLimit && clErr.RetryAfter > 0 {
			delay = clErr.RetryAfter
		}

		re.observer.OnRetryAttempt(method, path, attempt+1, delay, clErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return contextError(ctx.Err())
		case <-timer.C:
		}
	}
}

// contextError classifies a done context as a terminal Timeout.
func contextError(err error) *Error {
	return &Error{
		Type:      ErrorTypeTimeout,
		Message:   "deadline elapsed during retry: " + err.Error(),
		Retryable: false,
		wrapped:   err,
	}
}
