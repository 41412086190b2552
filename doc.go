// Package truelist provides a Go client library for the Truelist email
// validation API. It translates typed method calls into authenticated HTTP
// requests and recovers transparently from transient failures.
//
// # Features
//
// The SDK provides:
//   - Email validation via server-side and form verification endpoints
//   - Account information for the authenticated user
//   - Automatic retries with deterministic exponential backoff
//   - Retry-After aware rate limit handling
//   - A typed error taxonomy usable with errors.Is and errors.As
//   - Optional circuit breaker for fail-fast behavior
//   - Structured logging (zerolog) and Prometheus metrics observers
//   - Context support for cancellation and deadlines
//
// # Basic Usage
//
// Create a client and validate an address:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/truelist/truelist-go"
//	)
//
//	func main() {
//	    client, err := truelist.NewClient(
//	        truelist.DefaultConfig().WithAPIKey(os.Getenv("TRUELIST_API_KEY")))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer client.Close()
//
//	    result, err := client.Email.Validate(context.Background(), "user@example.com")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%s: %s/%s\n", result.Email, result.State, result.SubState)
//	}
//
// # Retries
//
// Connection failures, timeouts, rate limits (429), and transient server
// errors (500, 502, 503, 504) are retried up to Config.RetryConfig.MaxRetries
// times (default 2) with exponential backoff: 500ms, 1s, 2s, ... capped at
// 8s, no jitter. A Retry-After header on a 429 overrides the computed delay.
// Authentication errors (401/403) and other client errors (422 and the rest
// of the 4xx family) surface immediately.
//
// When every attempt fails, the returned error is the last attempt's
// classified error, so the root cause is preserved:
//
//	result, err := client.Email.Validate(ctx, addr)
//	var apiErr *truelist.Error
//	if errors.As(err, &apiErr) {
//	    fmt.Printf("failed with %s (HTTP %d)\n", apiErr.Type, apiErr.StatusCode)
//	}
//
// # Error Handling
//
// All failures map to exactly one *Error with a Type from the closed set
// {authentication, rate_limit, api, connection, timeout}. Sentinels support
// errors.Is:
//
//	if errors.Is(err, truelist.ErrRateLimited) {
//	    // slow down
//	}
//
// # Observability
//
// Observers hook into request, retry, and circuit breaker events:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	config := truelist.DefaultConfig().
//	    WithAPIKey(key).
//	    WithObserver(truelist.NewLoggingObserver(logger))
package truelist
