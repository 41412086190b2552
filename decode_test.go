package truelist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidationResult(t *testing.T) {
	t.Run("valid address", func(t *testing.T) {
		body := []byte(`{
			"email": "user@example.com",
			"state": "valid",
			"sub_state": "ok",
			"free_email": true,
			"role": false,
			"disposable": false,
			"suggestion": null
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)

		assert.Equal(t, "user@example.com", result.Email)
		assert.Equal(t, StateValid, result.State)
		assert.Equal(t, SubStateOK, result.SubState)
		assert.True(t, result.FreeEmail)
		assert.False(t, result.Role)
		assert.False(t, result.Disposable)
		assert.Nil(t, result.Suggestion)
		assert.True(t, result.IsValid())
	})

	t.Run("invalid address with suggestion", func(t *testing.T) {
		body := []byte(`{
			"email": "user@gmial.com",
			"state": "invalid",
			"sub_state": "failed_no_mailbox",
			"free_email": false,
			"role": false,
			"disposable": false,
			"suggestion": "user@gmail.com"
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)

		assert.True(t, result.IsInvalid())
		require.NotNil(t, result.Suggestion)
		assert.Equal(t, "user@gmail.com", *result.Suggestion)
	})

	t.Run("risky role address", func(t *testing.T) {
		body := []byte(`{
			"email": "info@company.com",
			"state": "risky",
			"sub_state": "accept_all",
			"free_email": false,
			"role": true,
			"disposable": false
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)

		assert.True(t, result.IsRisky())
		assert.True(t, result.IsRole())
		assert.Nil(t, result.Suggestion, "absent optional field must decode to nil, not empty string")
	})

	t.Run("unknown greylisted address", func(t *testing.T) {
		body := []byte(`{
			"email": "mystery@timeout.com",
			"state": "unknown",
			"sub_state": "failed_greylisted",
			"free_email": false,
			"role": false,
			"disposable": false
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)
		assert.True(t, result.IsUnknown())
	})

	t.Run("disposable address", func(t *testing.T) {
		body := []byte(`{
			"email": "temp@mailinator.com",
			"state": "invalid",
			"sub_state": "disposable_address",
			"free_email": true,
			"role": false,
			"disposable": true
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)
		assert.True(t, result.IsDisposable())
	})
}

func TestDecodeValidationResult_LegacySchema(t *testing.T) {
	// Older deployments report "ok"/"email_invalid" state values and
	// "is_disposable"/"is_role" sub-states; both generations must decode to
	// the same result shape.
	t.Run("legacy ok state", func(t *testing.T) {
		body := []byte(`{
			"email": "user@example.com",
			"state": "ok",
			"sub_state": "ok",
			"free_email": false,
			"role": false,
			"disposable": false
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)
		assert.Equal(t, StateValid, result.State)
		assert.True(t, result.IsValid())
	})

	t.Run("legacy email_invalid state", func(t *testing.T) {
		body := []byte(`{
			"email": "bad@example.com",
			"state": "email_invalid",
			"sub_state": "failed_no_mailbox",
			"free_email": false,
			"role": false,
			"disposable": false
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)
		assert.Equal(t, StateInvalid, result.State)
		assert.True(t, result.IsInvalid())
	})

	t.Run("legacy disposable sub_state", func(t *testing.T) {
		body := []byte(`{
			"email": "temp@example.com",
			"state": "email_invalid",
			"sub_state": "is_disposable",
			"free_email": false,
			"role": false,
			"disposable": false
		}`)

		result, err := decodeValidationResult(body)
		require.NoError(t, err)
		assert.True(t, result.IsDisposable())
	})
}

func TestDecodeValidationResult_MissingRequiredFields(t *testing.T) {
	complete := map[string]string{
		"email":      `"user@example.com"`,
		"state":      `"valid"`,
		"sub_state":  `"ok"`,
		"free_email": `true`,
		"role":       `false`,
		"disposable": `false`,
	}

	for missing := range complete {
		t.Run("missing_"+missing, func(t *testing.T) {
			body := "{"
			first := true
			for field, value := range complete {
				if field == missing {
					continue
				}
				if !first {
					body += ","
				}
				body += fmt.Sprintf("%q: %s", field, value)
				first = false
			}
			body += "}"

			result, err := decodeValidationResult([]byte(body))
			require.Error(t, err)
			assert.Nil(t, result)

			var clErr *Error
			require.ErrorAs(t, err, &clErr)
			assert.Equal(t, ErrorTypeAPI, clErr.Type)
			assert.False(t, clErr.Retryable, "decode failures must never be retried")
			assert.Contains(t, clErr.Message, missing)
		})
	}
}

func TestDecodeValidationResult_MalformedJSON(t *testing.T) {
	result, err := decodeValidationResult([]byte(`{"email": "user@`))
	require.Error(t, err)
	assert.Nil(t, result)

	var clErr *Error
	require.ErrorAs(t, err, &clErr)
	assert.Equal(t, ErrorTypeAPI, clErr.Type)
	assert.False(t, clErr.Retryable)
}

func TestDecodeAccountInfo(t *testing.T) {
	t.Run("complete body", func(t *testing.T) {
		body := []byte(`{"email": "owner@truelist.io", "plan": "pro", "credits": 9500}`)

		account, err := decodeAccountInfo(body)
		require.NoError(t, err)

		assert.Equal(t, "owner@truelist.io", account.Email)
		assert.Equal(t, "pro", account.Plan)
		assert.Equal(t, 9500, account.Credits)
	})

	t.Run("zero credits is a value, not an absence", func(t *testing.T) {
		body := []byte(`{"email": "owner@truelist.io", "plan": "free", "credits": 0}`)

		account, err := decodeAccountInfo(body)
		require.NoError(t, err)
		assert.Zero(t, account.Credits)
	})

	t.Run("missing credits", func(t *testing.T) {
		body := []byte(`{"email": "owner@truelist.io", "plan": "pro"}`)

		account, err := decodeAccountInfo(body)
		require.Error(t, err)
		assert.Nil(t, account)

		var clErr *Error
		require.ErrorAs(t, err, &clErr)
		assert.Contains(t, clErr.Message, "credits")
	})
}

func TestValidationResult_Predicates(t *testing.T) {
	testCases := []struct {
		name   string
		result ValidationResult
		check  func(*ValidationResult) bool
		want   bool
	}{
		{"valid", ValidationResult{State: StateValid}, (*ValidationResult).IsValid, true},
		{"not valid", ValidationResult{State: StateRisky}, (*ValidationResult).IsValid, false},
		{"invalid", ValidationResult{State: StateInvalid}, (*ValidationResult).IsInvalid, true},
		{"risky", ValidationResult{State: StateRisky}, (*ValidationResult).IsRisky, true},
		{"unknown", ValidationResult{State: StateUnknown}, (*ValidationResult).IsUnknown, true},
		{"disposable flag", ValidationResult{Disposable: true}, (*ValidationResult).IsDisposable, true},
		{"role flag", ValidationResult{Role: true}, (*ValidationResult).IsRole, true},
		{"role sub_state", ValidationResult{SubState: SubStateRole}, (*ValidationResult).IsRole, true},
		{"plain address", ValidationResult{State: StateValid}, (*ValidationResult).IsDisposable, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.check(&tc.result))
		})
	}
}
