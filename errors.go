package truelist

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Common errors returned by the SDK. These can be used with errors.Is()
// to check for specific error conditions.
//
// Example:
//
//	result, err := client.Email.Validate(ctx, "user@example.com")
//	if errors.Is(err, truelist.ErrAuthentication) {
//	    // API key is invalid or missing
//	} else if errors.Is(err, truelist.ErrRateLimited) {
//	    // Back off and retry later
//	}
var (
	// ErrInvalidConfig is returned when the configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAuthentication is returned when the API key is rejected (HTTP 401/403)
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited is returned when the API rate limit is exceeded (HTTP 429)
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout is returned when a request or its deadline times out
	ErrTimeout = errors.New("request timeout")

	// ErrConnection is returned when a connection to the API cannot be established
	ErrConnection = errors.New("connection failed")

	// ErrInvalidResponse is returned when a success response cannot be decoded
	ErrInvalidResponse = errors.New("invalid response from server")

	// ErrCircuitOpen is returned when the circuit breaker is open
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrClientClosed is returned when an operation is attempted on a closed client
	ErrClientClosed = errors.New("client is closed")
)

// ErrorType categorizes a failure for handling decisions. Each type maps to
// a distinct failure mode of a logical call and determines retry behavior.
//
// Example:
//
//	var apiErr *truelist.Error
//	if errors.As(err, &apiErr) {
//	    switch apiErr.Type {
//	    case truelist.ErrorTypeRateLimit:
//	        // Back off, honoring apiErr.RetryAfter if set
//	    case truelist.ErrorTypeAuthentication:
//	        // Fix credentials, do not retry
//	    }
//	}
type ErrorType int

const (
	// ErrorTypeUnknown represents an unclassified error
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuthentication represents rejected credentials (HTTP 401/403)
	ErrorTypeAuthentication
	// ErrorTypeRateLimit represents rate limiting (HTTP 429)
	ErrorTypeRateLimit
	// ErrorTypeAPI represents an error response from the API (other 4xx/5xx,
	// or an undecodable success body)
	ErrorTypeAPI
	// ErrorTypeConnection represents transport-level connection failures
	// (connection refused, DNS resolution, broken pipe)
	ErrorTypeConnection
	// ErrorTypeTimeout represents timeouts (request timeout, context deadline)
	ErrorTypeTimeout
	// ErrorTypeValidation represents invalid input or configuration
	ErrorTypeValidation
	// ErrorTypeCircuitOpen represents circuit breaker open state errors
	ErrorTypeCircuitOpen
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeAuthentication:
		return "authentication"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeAPI:
		return "api"
	case ErrorTypeConnection:
		return "connection"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeCircuitOpen:
		return "circuit_open"
	default:
		return "unknown"
	}
}

// Error is the classified error surfaced by every failed logical call.
// It carries the HTTP status and raw body where one exists, and supports
// errors.Is() against the package sentinels and errors.As() for inspection.
//
// Example:
//
//	var apiErr *truelist.Error
//	if errors.As(err, &apiErr) {
//	    fmt.Printf("type=%s status=%d retryable=%v\n",
//	        apiErr.Type, apiErr.StatusCode, apiErr.IsRetryable())
//	}
type Error struct {
	// Type categorizes the error for handling decisions
	Type ErrorType
	// StatusCode is the HTTP status code, 0 for transport-level failures
	StatusCode int
	// Body is the raw response body, empty for transport-level failures
	Body string
	// Message is a human-readable error description
	Message string
	// RetryAfter is the server-supplied wait hint for rate limit errors;
	// zero when the server sent none
	RetryAfter time.Duration
	// Retryable indicates if another attempt may succeed
	Retryable bool
	// wrapped is the underlying error, if any
	wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("truelist: %s error (HTTP %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("truelist: %s error: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.wrapped
}

// Is implements errors.Is against the package sentinels
func (e *Error) Is(target error) bool {
	switch e.Type {
	case ErrorTypeAuthentication:
		return target == ErrAuthentication
	case ErrorTypeRateLimit:
		return target == ErrRateLimited
	case ErrorTypeTimeout:
		return target == ErrTimeout
	case ErrorTypeConnection:
		return target == ErrConnection
	case ErrorTypeCircuitOpen:
		return target == ErrCircuitOpen
	}
	return false
}

// IsRetryable returns true if another attempt may succeed
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// retryableStatus reports whether a status code is worth another attempt.
// 429 and the transient 5xx family retry; everything else is terminal.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// classifyStatus maps a non-2xx HTTP response to exactly one classified error.
func classifyStatus(status int, body string, header http.Header) *Error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{
			Type:       ErrorTypeAuthentication,
			StatusCode: status,
			Body:       body,
			Message:    fmt.Sprintf("authentication failed (HTTP %d)", status),
			Retryable:  false,
		}
	case status == http.StatusTooManyRequests:
		return &Error{
			Type:       ErrorTypeRateLimit,
			StatusCode: status,
			Body:       body,
			Message:    "rate limit exceeded (HTTP 429)",
			RetryAfter: parseRetryAfter(header),
			Retryable:  true,
		}
	default:
		return &Error{
			Type:       ErrorTypeAPI,
			StatusCode: status,
			Body:       body,
			Message:    fmt.Sprintf("API error (HTTP %d)", status),
			Retryable:  retryableStatus(status),
		}
	}
}

// classifyTransportError maps a transport-level failure from http.Client.Do
// to a Connection or Timeout classification. Both are retryable; the retry
// loop re-checks the caller's context before the next attempt.
func classifyTransportError(err error) *Error {
	if isTimeout(err) {
		return &Error{
			Type:      ErrorTypeTimeout,
			Message:   err.Error(),
			Retryable: true,
			wrapped:   err,
		}
	}
	return &Error{
		Type:      ErrorTypeConnection,
		Message:   err.Error(),
		Retryable: true,
		wrapped:   err,
	}
}

// isTimeout reports whether a transport error is a deadline-style failure
// rather than a connection failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// decodeError builds the terminal API error for a success response whose
// body does not match the declared result shape. Never retryable: the HTTP
// layer already succeeded.
func decodeError(message string, body string, wrapped error) *Error {
	return &Error{
		Type:       ErrorTypeAPI,
		StatusCode: http.StatusOK,
		Body:       body,
		Message:    message,
		Retryable:  false,
		wrapped:    wrapped,
	}
}

// parseRetryAfter extracts the integer-seconds Retry-After hint, if present
// and well-formed. Returns 0 otherwise.
func parseRetryAfter(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// IsRetryable checks if an error is retryable.
// Retryable errors include connection failures, timeouts, rate limiting,
// and transient server errors (500, 502, 503, 504). Authentication errors
// and other 4xx responses are not retryable.
//
// Example:
//
//	result, err := client.Email.Validate(ctx, addr)
//	if err != nil && !truelist.IsRetryable(err) {
//	    // Permanent failure, surface to the user
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var clErr *Error
	if errors.As(err, &clErr) {
		return clErr.IsRetryable()
	}
	return false
}
