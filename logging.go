package truelist

import (
	"time"

	"github.com/rs/zerolog"
)

// LoggingObserver emits structured zerolog events for every logical call
// and retry. Requests log at debug level, failures at warn, retries at info.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	config := truelist.DefaultConfig().
//	    WithAPIKey(key).
//	    WithObserver(truelist.NewLoggingObserver(logger))
type LoggingObserver struct {
	logger zerolog.Logger
}

// NewLoggingObserver creates an observer that logs through the given
// zerolog logger.
func NewLoggingObserver(logger zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnRequestStart logs the start of a logical call at debug level.
func (o *LoggingObserver) OnRequestStart(method, path string) {
	o.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("truelist request started")
}

// OnRequestEnd logs the outcome of a logical call. Failures log at warn
// level with the classified error.
func (o *LoggingObserver) OnRequestEnd(method, path string, duration time.Duration, err error) {
	if err != nil {
		o.logger.Warn().
			Str("method", method).
			Str("path", path).
			Dur("duration", duration).
			Err(err).
			Msg("truelist request failed")
		return
	}
	o.logger.Debug().
		Str("method", method).
		Str("path", path).
		Dur("duration", duration).
		Msg("truelist request completed")
}

// OnRetryAttempt logs each retry with the delay about to be imposed.
func (o *LoggingObserver) OnRetryAttempt(method, path string, attempt int, delay time.Duration, err error) {
	o.logger.Info().
		Str("method", method).
		Str("path", path).
		Int("attempt", attempt).
		Dur("delay", delay).
		Err(err).
		Msg("truelist request retrying")
}

// OnCircuitBreakerStateChange logs circuit transitions at warn level.
func (o *LoggingObserver) OnCircuitBreakerStateChange(oldState, newState CircuitState) {
	o.logger.Warn().
		Str("old_state", oldState.String()).
		Str("new_state", newState.String()).
		Msg("truelist circuit breaker state changed")
}
