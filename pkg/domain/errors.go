package domain

import "errors"

// Sentinel errors shared across the application layer. Services wrap
// these with context via fmt.Errorf and %w; boundaries test with
// errors.Is to pick a user-facing response.
var (
	// ErrNotFound indicates a project, module, step or nested entity
	// could not be resolved by id.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a mutation was rejected before any state
	// change occurred (empty required field, unknown reference).
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientInput indicates a generator had too little upstream
	// material to work with (no anchors, no logline). This is a normal
	// user-facing condition, not a fault.
	ErrInsufficientInput = errors.New("insufficient input for generation")

	// ErrInvalidTransition indicates a status change not permitted by
	// the board state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)
