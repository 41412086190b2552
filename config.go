package truelist

import (
	"time"
)

// DefaultBaseURL is the production Truelist API endpoint.
const DefaultBaseURL = "https://api.truelist.io"

const (
	defaultTimeout           = 30 * time.Second
	defaultMaxRetries        = 2
	defaultInitialBackoff    = 500 * time.Millisecond
	defaultMaxBackoff        = 8 * time.Second
	defaultBackoffMultiplier = 2.0
)

// Config holds the configuration for the Truelist client.
// All fields except APIKey are optional and have sensible defaults.
//
// Configuration uses the fluent builder pattern:
//
//	config := truelist.DefaultConfig().
//	    WithAPIKey(os.Getenv("TRUELIST_API_KEY")).
//	    WithTimeout(10 * time.Second).
//	    WithRetries(3)
//
//	client, err := truelist.NewClient(config)
type Config struct {
	// APIKey is the Truelist API key, sent as a bearer token on every
	// request. Required.
	APIKey string

	// BaseURL is the base URL of the Truelist API.
	// Default: https://api.truelist.io
	BaseURL string

	// Timeout is the per-attempt HTTP request timeout.
	// Default: 30s
	Timeout time.Duration

	// RetryConfig holds retry-related settings.
	RetryConfig RetryConfig

	// TransportConfig holds HTTP connection pool settings.
	TransportConfig TransportConfig

	// Headers are custom headers to include in all requests.
	Headers map[string]string

	// BackoffPolicy overrides the delay computation between attempts.
	// If nil, deterministic exponential backoff is used
	// (500ms doubling up to 8s).
	BackoffPolicy BackoffPolicy

	// CircuitBreakerConfig enables the optional circuit breaker.
	// If nil, the circuit breaker is disabled.
	CircuitBreakerConfig *CircuitBreakerConfig

	// Observer receives hooks for monitoring requests and retries.
	// If nil, NoopObserver is used.
	Observer Observer
}

// RetryConfig holds retry-related configuration for automatic request
// retries. Retries apply to connection failures, timeouts, rate limiting,
// and transient server errors; they never apply to authentication or other
// client-side errors.
type RetryConfig struct {
	// MaxRetries is the maximum number of retries after the initial
	// attempt. Set to 0 to disable retries.
	// Default: 2
	MaxRetries int

	// InitialInterval is the delay after the first failed attempt.
	// Default: 500ms
	InitialInterval time.Duration

	// MaxInterval caps the backoff delay.
	// Default: 8s
	MaxInterval time.Duration

	// Multiplier is the exponential backoff multiplier.
	// Default: 2.0
	Multiplier float64
}

// TransportConfig holds HTTP transport configuration for connection pooling.
type TransportConfig struct {
	// MaxIdleConns controls the maximum number of idle connections.
	// Default: 100
	MaxIdleConns int

	// MaxConnsPerHost controls the maximum connections per host.
	// Default: 10
	MaxConnsPerHost int

	// IdleConnTimeout is how long an idle connection is kept before closing.
	// Default: 90s
	IdleConnTimeout time.Duration
}

// DefaultConfig returns a Config with the defaults the hosted API expects:
//   - Base URL: https://api.truelist.io
//   - Timeout: 30 seconds per attempt
//   - Retries: 2, with 500ms/1s exponential backoff capped at 8s
//
// The API key must still be set before use:
//
//	config := truelist.DefaultConfig().WithAPIKey("tl_...")
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: defaultTimeout,
		RetryConfig: RetryConfig{
			MaxRetries:      defaultMaxRetries,
			InitialInterval: defaultInitialBackoff,
			MaxInterval:     defaultMaxBackoff,
			Multiplier:      defaultBackoffMultiplier,
		},
		TransportConfig: TransportConfig{
			MaxIdleConns:    100,
			MaxConnsPerHost: 10,
			IdleConnTimeout: 90 * time.Second,
		},
		Headers:  make(map[string]string),
		Observer: &NoopObserver{},
	}
}

// WithAPIKey sets the API key used for bearer authentication.
func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

// WithBaseURL sets the base URL for the Truelist API.
// Useful for testing and for self-hosted deployments.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the per-attempt request timeout.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRetries sets the maximum number of retries after the initial attempt.
// Set to 0 to make the first failure of any kind terminal.
func (c *Config) WithRetries(maxRetries int) *Config {
	c.RetryConfig.MaxRetries = maxRetries
	return c
}

// WithHeader adds a custom header to be sent with all requests.
func (c *Config) WithHeader(key, value string) *Config {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[key] = value
	return c
}

// WithBackoffPolicy sets a custom backoff policy for retry delays.
func (c *Config) WithBackoffPolicy(policy BackoffPolicy) *Config {
	c.BackoffPolicy = policy
	return c
}

// WithCircuitBreaker enables and configures circuit breaker protection.
func (c *Config) WithCircuitBreaker(config CircuitBreakerConfig) *Config {
	c.CircuitBreakerConfig = &config
	return c
}

// WithObserver sets an observer for monitoring SDK operations.
func (c *Config) WithObserver(observer Observer) *Config {
	c.Observer = observer
	return c
}

// Validate validates the configuration and fills defaults for missing
// values. Called automatically by NewClient.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrInvalidConfig
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryConfig.MaxRetries < 0 {
		c.RetryConfig.MaxRetries = 0
	}
	if c.RetryConfig.InitialInterval <= 0 {
		c.RetryConfig.InitialInterval = defaultInitialBackoff
	}
	if c.RetryConfig.MaxInterval <= 0 {
		c.RetryConfig.MaxInterval = defaultMaxBackoff
	}
	if c.RetryConfig.Multiplier <= 1 {
		c.RetryConfig.Multiplier = defaultBackoffMultiplier
	}
	if c.TransportConfig.MaxIdleConns <= 0 {
		c.TransportConfig.MaxIdleConns = 100
	}
	if c.TransportConfig.MaxConnsPerHost <= 0 {
		c.TransportConfig.MaxConnsPerHost = 10
	}
	if c.TransportConfig.IdleConnTimeout <= 0 {
		c.TransportConfig.IdleConnTimeout = 90 * time.Second
	}
	if c.Observer == nil {
		c.Observer = &NoopObserver{}
	}
	if c.CircuitBreakerConfig != nil {
		if c.CircuitBreakerConfig.FailureThreshold <= 0 {
			c.CircuitBreakerConfig.FailureThreshold = 5
		}
		if c.CircuitBreakerConfig.SuccessThreshold <= 0 {
			c.CircuitBreakerConfig.SuccessThreshold = 2
		}
		if c.CircuitBreakerConfig.Timeout <= 0 {
			c.CircuitBreakerConfig.Timeout = 30 * time.Second
		}
	}
	return nil
}
