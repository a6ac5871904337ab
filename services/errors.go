package services

import "errors"

// Business-rule errors surfaced to controllers and mapped onto HTTP status
// codes in controllers/helpers.
var (
	ErrNotFound              = errors.New("record not found")
	ErrInsufficientStock     = errors.New("not enough stock to reduce")
	ErrExceedsTarget         = errors.New("completed quantity cannot exceed target quantity")
	ErrExceedsRequirement    = errors.New("allocated quantity cannot exceed total required")
	ErrExceedsAllocation     = errors.New("realized quantity cannot exceed allocated quantity")
	ErrInsufficientAvailable = errors.New("quantity exceeds available stock")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvalidOperation      = errors.New("invalid stock operation")
	ErrLocked                = errors.New("record is locked")
)
