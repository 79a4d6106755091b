package errs

import "errors"

// Sentinel categories shared by the domain and usecase layers.
var (
	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// State errors
	ErrInvalidTransition = errors.New("invalid status transition")

	// Idempotency errors
	ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
