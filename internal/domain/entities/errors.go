package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the service layers. Handlers translate
// them into HTTP responses; everything unrecognized becomes a 500 with a
// generic body and the detail only in the server log.
var (
	// ErrUnauthorized covers every authentication failure: missing or
	// malformed credentials, unknown email, wrong password, missing or
	// expired token. Callers must not be able to tell the cases apart.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionNotFound is returned by the session store for a missing
	// or expired key.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound is returned by the record store when no user
	// matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrFileNotFound covers both a truly absent file record and a
	// record the caller is not allowed to see.
	ErrFileNotFound = errors.New("file not found")

	// ErrBlobNotFound is returned when a handle does not resolve to
	// stored content.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrFolderHasNoData is returned when content is requested for a
	// folder.
	ErrFolderHasNoData = errors.New("a folder doesn't have content")
)

// ValidationError is a 400-level error with a field-specific message that
// is shown to the client verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError with the given client message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
