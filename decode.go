package truelist

import (
	"encoding/json"
	"fmt"
)

// The decoder maps a 2xx body to the result shape declared by the issuing
// method; it never sniffs. A required field missing from a success body is a
// terminal API error — the HTTP layer already succeeded, so decode failures
// are never retried.

// validationPayload mirrors the wire shape with pointer fields so absent
// required fields are distinguishable from zero values.
type validationPayload struct {
	Email      *string `json:"email"`
	State      *string `json:"state"`
	SubState   *string `json:"sub_state"`
	FreeEmail  *bool   `json:"free_email"`
	Role       *bool   `json:"role"`
	Disposable *bool   `json:"disposable"`
	Suggestion *string `json:"suggestion"`
}

type accountPayload struct {
	Email   *string `json:"email"`
	Plan    *string `json:"plan"`
	Credits *int    `json:"credits"`
}

// normalizeState maps legacy server state values onto the current schema.
// Older API deployments report "ok"/"email_invalid" where current ones
// report "valid"/"invalid"; both decode to the same EmailState.
func normalizeState(state string) EmailState {
	switch state {
	case "ok":
		return StateValid
	case "email_invalid":
		return StateInvalid
	default:
		return EmailState(state)
	}
}

func decodeValidationResult(body []byte) (*ValidationResult, error) {
	var payload validationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, decodeError("failed to parse validation response", string(body), err)
	}
	if err := requireFields(map[string]bool{
		"email":      payload.Email != nil,
		"state":      payload.State != nil,
		"sub_state":  payload.SubState != nil,
		"free_email": payload.FreeEmail != nil,
		"role":       payload.Role != nil,
		"disposable": payload.Disposable != nil,
	}, body); err != nil {
		return nil, err
	}

	return &ValidationResult{
		Email:      *payload.Email,
		State:      normalizeState(*payload.State),
		SubState:   *payload.SubState,
		FreeEmail:  *payload.FreeEmail,
		Role:       *payload.Role,
		Disposable: *payload.Disposable,
		Suggestion: payload.Suggestion,
	}, nil
}

func decodeAccountInfo(body []byte) (*AccountInfo, error) {
	var payload accountPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, decodeError("failed to parse account response", string(body), err)
	}
	if err := requireFields(map[string]bool{
		"email":   payload.Email != nil,
		"plan":    payload.Plan != nil,
		"credits": payload.Credits != nil,
	}, body); err != nil {
		return nil, err
	}

	return &AccountInfo{
		Email:   *payload.Email,
		Plan:    *payload.Plan,
		Credits: *payload.Credits,
	}, nil
}

func requireFields(present map[string]bool, body []byte) error {
	for field, ok := range present {
		if !ok {
			return decodeError(
				fmt.Sprintf("response missing required field %q", field),
				string(body), ErrInvalidResponse)
		}
	}
	return nil
}
