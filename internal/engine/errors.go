package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrStaleTransaction indicates a transaction was not started from the
	// engine's current document.
	ErrStaleTransaction = errors.New("transaction does not start from the current document")
)
