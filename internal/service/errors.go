package service

import "errors"

// Sentinel errors used across services so handlers can map failures to the
// right HTTP status without parsing message text. Wrap with fmt.Errorf and
// check with errors.Is.
var (
	// ErrValidation marks bad or missing input rejected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an authorization failure (wrong role, outside team).
	ErrForbidden = errors.New("permission denied")
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
)
