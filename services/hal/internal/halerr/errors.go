// services/hal/internal/halerr/errors.go
package halerr

import "errors"

var (
	// Table/config
	ErrInvalidParams = errors.New("invalid_params")
	ErrUnknownPort   = errors.New("unknown_port")
	ErrUnknownPin    = errors.New("unknown_pin")
	ErrPinConflict   = errors.New("pin_conflict")
	ErrDuplicateName = errors.New("duplicate_name")
	ErrInvalidMode   = errors.New("invalid_mode")
	ErrInvalidPull   = errors.New("invalid_pull")
	ErrMissingOwner  = errors.New("missing_owner")

	// Backend
	ErrClockDisabled = errors.New("clock_disabled")

	// Handoff
	ErrNotReady = errors.New("not_ready")

	// Import
	ErrParse = errors.New("parse_error")

	// Generic / pass-through
	ErrUnsupported = errors.New("unsupported")
)
