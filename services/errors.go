package services

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced by the services layer. Controllers map these to
// HTTP responses; the user-facing messages live here so every surface
// reports a failure the same way.
var (
	ErrWriteFailed        = errors.New("write failed")
	ErrSubscriptionFailed = errors.New("subscription failed")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidInput       = errors.New("invalid input")
)

// AuthReason identifies why an authentication call failed.
type AuthReason string

const (
	AuthInvalidCredential   AuthReason = "invalid_credential"
	AuthEmailInUse          AuthReason = "email_in_use"
	AuthWeakPassword        AuthReason = "weak_password"
	AuthOriginNotAuthorized AuthReason = "origin_not_authorized"
	AuthUnknown             AuthReason = "unknown"
)

var authMessages = map[AuthReason]string{
	AuthInvalidCredential:   "Invalid email or password.",
	AuthEmailInUse:          "An account with this email already exists.",
	AuthWeakPassword:        "Password is too weak; use at least 8 characters.",
	AuthOriginNotAuthorized: "Sign-in is not allowed from this origin; check the app configuration.",
	AuthUnknown:             "Sign-in failed; please try again.",
}

// AuthError carries a mapped, user-readable message per failure reason.
type AuthError struct {
	Reason AuthReason
	cause  error
}

func NewAuthError(reason AuthReason, cause error) *AuthError {
	return &AuthError{Reason: reason, cause: cause}
}

func (e *AuthError) Error() string {
	if msg, ok := authMessages[e.Reason]; ok {
		return msg
	}
	return authMessages[AuthUnknown]
}

func (e *AuthError) Unwrap() error { return e.cause }

// AsAuthError unwraps err as an *AuthError if that is what it is.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func writeFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrWriteFailed, err)
}

func subscriptionFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrSubscriptionFailed, err)
}
