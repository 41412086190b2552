package truelist

import (
	"context"
	"fmt"
	"sync"
)

// API paths for the hosted Truelist service.
const (
	pathVerify     = "/api/v1/verify"
	pathFormVerify = "/api/v1/form_verify"
	pathAccount    = "/api/v1/account"
)

// Client is a client for the Truelist email validation API. Operations are
// grouped into services (Email, Account) and are safe for concurrent use:
// each call runs its own independent retry loop over the shared connection
// pool.
//
// Example:
//
//	client, err := truelist.NewClient(
//	    truelist.DefaultConfig().WithAPIKey(os.Getenv("TRUELIST_API_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Email.Validate(ctx, "user@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.IsValid())
type Client struct {
	// Email exposes email validation operations.
	Email *EmailService
	// Account exposes account operations.
	Account *AccountService

	transport *httpTransport
	config    *Config
	mu        sync.RWMutex
	closed    bool
}

// NewClient creates a new Truelist client with the provided configuration.
// The configuration must carry an API key; everything else defaults.
//
// The client maintains a connection pool for the lifetime of the instance
// and must be released with Close when no longer needed.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	transport, err := newHTTPTransport(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	c := &Client{
		transport: transport,
		config:    config,
	}
	c.Email = &EmailService{client: c}
	c.Account = &AccountService{client: c}
	return c, nil
}

// Close closes the client and releases the pooled connections.
// Close is safe to call multiple times; operations after Close fail with
// ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.transport.close()
}

// CircuitState returns the current circuit breaker state, or CircuitClosed
// when no circuit breaker is configured.
func (c *Client) CircuitState() CircuitState {
	if c.transport.breaker == nil {
		return CircuitClosed
	}
	return c.transport.breaker.State()
}

func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// verifyRequest is the request body for both validation endpoints.
type verifyRequest struct {
	Email string `json:"email"`
}

// EmailService provides email validation operations.
type EmailService struct {
	client *Client
}

// Validate validates an email address using server-side verification.
//
// Example:
//
//	result, err := client.Email.Validate(ctx, "user@example.com")
//	if err != nil {
//	    return err
//	}
//	if result.IsRisky() {
//	    // deliverable, but accept-all or role address
//	}
func (s *EmailService) Validate(ctx context.Context, email string) (*ValidationResult, error) {
	return s.validate(ctx, pathVerify, email)
}

// FormValidate validates an email address using form/frontend verification.
// This endpoint has different rate limits suited for frontend form
// validation.
func (s *EmailService) FormValidate(ctx context.Context, email string) (*ValidationResult, error) {
	return s.validate(ctx, pathFormVerify, email)
}

func (s *EmailService) validate(ctx context.Context, path, email string) (*ValidationResult, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, &Error{
			Type:      ErrorTypeValidation,
			Message:   "email cannot be empty",
			Retryable: false,
		}
	}

	body, err := s.client.transport.post(ctx, path, verifyRequest{Email: email})
	if err != nil {
		return nil, err
	}
	return decodeValidationResult(body)
}

// AccountService provides account operations.
type AccountService struct {
	client *Client
}

// Get returns account information for the authenticated user.
//
// Example:
//
//	account, err := client.Account.Get(ctx)
//	if err != nil {
//	    return err
//	}
//	if account.Credits == 0 {
//	    // out of validation credits
//	}
func (s *AccountService) Get(ctx context.Context) (*AccountInfo, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	body, err := s.client.transport.get(ctx, pathAccount)
	if err != nil {
		return nil, err
	}
	return decodeAccountInfo(body)
}
