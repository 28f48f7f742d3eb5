package domain

import "errors"

// Error kinds surfaced by the store. Callers match them with errors.Is; the
// concrete error usually wraps one of these with context about the path or
// file involved.
var (
	// ErrConfig reports a missing or invalid source or crypto configuration.
	ErrConfig = errors.New("invalid configuration")
	// ErrMalformedStore reports file content that is not a parseable document.
	ErrMalformedStore = errors.New("malformed store")
	// ErrIntegrity reports a failed signature check: the state has been
	// altered or the secret is wrong.
	ErrIntegrity = errors.New("state has been altered")
	// ErrPathNotFound reports an absent target for increment, decrement or update.
	ErrPathNotFound = errors.New("path not found")
	// ErrTypeMismatch reports an operation applied to a value of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidQuery reports a query that is not a flat mapping.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidState reports a state value that is not a mapping.
	ErrInvalidState = errors.New("invalid state")
	// ErrIO reports a file system failure.
	ErrIO = errors.New("i/o failure")
)
