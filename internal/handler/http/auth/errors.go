// Package auth resolves inbound bearer credentials into caller identities.
//
// It supports two flows: required authentication, where verification
// failures propagate to the caller, and optional authentication, where any
// failure silently degrades the caller to a guest.
package auth

// Error codes for authentication failures.
const (
	CodeMissingToken       = "missing_token"
	CodeTokenExpired       = "token_expired"
	CodeInvalidToken       = "invalid_token"
	CodeMalformedToken     = "malformed_token"
	CodeVerificationFailed = "token_verification_failed"
)

// Error is an authentication failure with a stable machine-readable code
// and the HTTP status it maps to (401 unless stated otherwise).
type Error struct {
	Code    string
	Status  int
	Message string
}

// Error returns the human-readable failure message.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// NewError creates an authentication Error with HTTP status 401.
func NewError(code, message string) *Error {
	return &Error{Code: code, Status: 401, Message: message}
}
