package docvault

import "docvault/internal/domain"

// Error kinds. Match them with errors.Is.
var (
	ErrConfig         = domain.ErrConfig
	ErrMalformedStore = domain.ErrMalformedStore
	ErrIntegrity      = domain.ErrIntegrity
	ErrPathNotFound   = domain.ErrPathNotFound
	ErrTypeMismatch   = domain.ErrTypeMismatch
	ErrInvalidQuery   = domain.ErrInvalidQuery
	ErrInvalidState   = domain.ErrInvalidState
	ErrIO             = domain.ErrIO
)
