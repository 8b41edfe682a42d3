package models

import "errors"

// Domain errors surfaced by the services. Handlers map these to HTTP
// statuses with errors.Is.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrNotAssigned       = errors.New("donation was not assigned to this NGO")
	ErrAlreadyDecided    = errors.New("assignment has already been decided")
	ErrInvalidState      = errors.New("operation not allowed in the current status")
	ErrUnauthorized      = errors.New("actor is not authorized for this operation")
	ErrReasonRequired    = errors.New("a rejection reason is required")
	ErrUnknownActionKind = errors.New("unknown point action kind")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrValidationFailed  = errors.New("validation failed")
)
