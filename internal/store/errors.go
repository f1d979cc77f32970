// Package store holds the in-memory account and booking domain: the
// identity store, visit ledger, benefit issuer, reservation book and the
// pending-draft relay.  All state lives in process memory and is lost on
// restart.  Sentinel errors below let the HTTP layer
// map each failure class to a status code without inspecting messages.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by Login when the email/password
	// pair matches no known account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when an operation names an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned on an illegal lifecycle transition, such
	// as confirming a reservation that is not pendiente.
	ErrInvalidState = errors.New("invalid state")

	// ErrNoIdentity is returned by mutations that require a current
	// identity when none is set.
	ErrNoIdentity = errors.New("no current identity")

	// ErrOpInFlight guards login/register against rapid double submission:
	// only one such operation may be in flight per store.
	ErrOpInFlight = errors.New("operation already in flight")
)

// ValidationError reports the first offending input field.  The UI surfaces
// one error at a time, scoped to that field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
