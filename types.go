package truelist

// EmailState is the top-level verdict for a validated address.
type EmailState string

const (
	// StateValid means the mailbox exists and accepts mail.
	StateValid EmailState = "valid"
	// StateInvalid means the address failed verification.
	StateInvalid EmailState = "invalid"
	// StateRisky means the address is deliverable but risky
	// (accept-all domains, role addresses).
	StateRisky EmailState = "risky"
	// StateUnknown means verification could not complete
	// (greylisting, timeouts at the target MX).
	StateUnknown EmailState = "unknown"
)

// Sub-state values reported alongside the top-level state.
const (
	SubStateOK               = "ok"
	SubStateNoMailbox        = "failed_no_mailbox"
	SubStateAcceptAll        = "accept_all"
	SubStateGreylisted       = "failed_greylisted"
	SubStateDisposable       = "disposable_address"
	SubStateRole             = "is_role"
	SubStateLegacyDisposable = "is_disposable"
)

// ValidationResult is the decoded outcome of an email validation request.
// Suggestion is nil when the server offered no correction.
//
// Example:
//
//	result, err := client.Email.Validate(ctx, "user@gmial.com")
//	if err != nil {
//	    return err
//	}
//	if !result.IsValid() && result.Suggestion != nil {
//	    fmt.Printf("did you mean %s?\n", *result.Suggestion)
//	}
type ValidationResult struct {
	// Email is the address that was validated.
	Email string `json:"email"`
	// State is the top-level verdict.
	State EmailState `json:"state"`
	// SubState refines the verdict (e.g. "failed_no_mailbox", "accept_all").
	SubState string `json:"sub_state"`
	// FreeEmail reports whether the domain is a free mail provider.
	FreeEmail bool `json:"free_email"`
	// Role reports whether the address is a role account (info@, admin@).
	Role bool `json:"role"`
	// Disposable reports whether the domain is a disposable mail service.
	Disposable bool `json:"disposable"`
	// Suggestion is a corrected address for likely typos, nil when absent.
	Suggestion *string `json:"suggestion,omitempty"`
}

// IsValid reports whether the email state is valid.
func (r *ValidationResult) IsValid() bool {
	return r.State == StateValid
}

// IsInvalid reports whether the email state is invalid.
func (r *ValidationResult) IsInvalid() bool {
	return r.State == StateInvalid
}

// IsRisky reports whether the email state is risky.
func (r *ValidationResult) IsRisky() bool {
	return r.State == StateRisky
}

// IsUnknown reports whether verification could not complete.
func (r *ValidationResult) IsUnknown() bool {
	return r.State == StateUnknown
}

// IsDisposable reports whether the address belongs to a disposable mail
// service, under either the current or the legacy sub_state convention.
func (r *ValidationResult) IsDisposable() bool {
	return r.Disposable || r.SubState == SubStateDisposable || r.SubState == SubStateLegacyDisposable
}

// IsRole reports whether the address is a role account.
func (r *ValidationResult) IsRole() bool {
	return r.Role || r.SubState == SubStateRole
}

// AccountInfo is the decoded account record for the authenticated user.
//
// Example:
//
//	account, err := client.Account.Get(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s on plan %s, %d credits left\n",
//	    account.Email, account.Plan, account.Credits)
type AccountInfo struct {
	// Email is the account owner's email address.
	Email string `json:"email"`
	// Plan is the subscription plan name.
	Plan string `json:"plan"`
	// Credits is the number of validation credits remaining.
	Credits int `json:"credits"`
}
