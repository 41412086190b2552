package truelist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// httpTransport handles HTTP communication with the Truelist API. It owns
// the pooled http.Client for the lifetime of the client instance and runs
// every logical call through the retry executor (and the circuit breaker,
// when one is configured). Each attempt borrows the pool only for its own
// duration.
type httpTransport struct {
	// client is the underlying HTTP client with per-attempt timeout
	client *http.Client
	// config holds the SDK configuration
	config *Config
	// baseURL is the parsed base URL for the API
	baseURL *url.URL
	// executor drives the attempt loop
	executor *retryExecutor
	// breaker is nil unless circuit breaking is configured
	breaker *circuitBreaker
	// observer for monitoring operations
	observer Observer
}

func newHTTPTransport(config *Config) (*httpTransport, error) {
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base URL must have a scheme and host: %w", ErrInvalidConfig)
	}

	transport := &http.Transport{
		MaxIdleConns:        config.TransportConfig.MaxIdleConns,
		MaxConnsPerHost:     config.TransportConfig.MaxConnsPerHost,
		IdleConnTimeout:     config.TransportConfig.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	backoff := config.BackoffPolicy
	if backoff == nil {
		backoff = &ExponentialBackoff{
			InitialInterval: config.RetryConfig.InitialInterval,
			MaxInterval:     config.RetryConfig.MaxInterval,
			Multiplier:      config.RetryConfig.Multiplier,
		}
	}

	var breaker *circuitBreaker
	if config.CircuitBreakerConfig != nil {
		breaker = newCircuitBreaker(*config.CircuitBreakerConfig, config.Observer)
	}

	return &httpTransport{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config:   config,
		baseURL:  baseURL,
		executor: newRetryExecutor(config.RetryConfig.MaxRetries, backoff, config.Observer),
		breaker:  breaker,
		observer: config.Observer,
	}, nil
}

// do executes one logical call: marshal the body once, then run the attempt
// loop until a 2xx response or a terminal classified error. Returns the raw
// success body; decoding happens in the caller, outside the retry loop.
func (t *httpTransport) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	t.observer.OnRequestStart(method, path)
	start := time.Now()

	var respBody []byte
	attempt := func() error {
		var err error
		respBody, err = t.performAttempt(ctx, method, path, payload)
		return err
	}

	var err error
	if t.breaker != nil {
		err = t.breaker.Execute(func() error {
			return t.executor.Execute(ctx, method, path, attempt)
		})
	} else {
		err = t.executor.Execute(ctx, method, path, attempt)
	}

	t.observer.OnRequestEnd(method, path, time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return respBody, nil
}

// performAttempt issues a single HTTP request and classifies its outcome.
func (t *httpTransport) performAttempt(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	fullURL := t.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for key, value := range t.config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}
	return nil, classifyStatus(resp.StatusCode, string(respBody), resp.Header)
}

// get performs a GET request
func (t *httpTransport) get(ctx context.Context, path string) ([]byte, error) {
	return t.do(ctx, http.MethodGet, path, nil)
}

// post performs a POST request with a JSON body
func (t *httpTransport) post(ctx context.Context, path string, body any) ([]byte, error) {
	return t.do(ctx, http.MethodPost, path, body)
}

// close releases the pooled connections
func (t *httpTransport) close() error {
	t.client.CloseIdleConnections()
	return nil
}
