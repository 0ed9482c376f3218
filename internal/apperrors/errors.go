// Package apperrors defines the error taxonomy shared by the repository,
// service, and API layers. Callers classify failures with errors.Is and wrap
// these sentinels with context via fmt.Errorf("...: %w", ...).
package apperrors

import "errors"

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller is authenticated but not permitted.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated indicates a missing, invalid, or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConflict indicates a unique-constraint violation such as a duplicate
	// email or username.
	ErrConflict = errors.New("conflict")

	// ErrInvalidArgument indicates a validation failure on the request itself.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState indicates a mutation attempted on a closed proposition.
	ErrInvalidState = errors.New("invalid state")
)
