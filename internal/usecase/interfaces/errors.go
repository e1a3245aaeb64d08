package interfaces

import "errors"

// Repository-level outcomes of conditional writes.
var (
	ErrAlreadyExists    = errors.New("document already exists")
	ErrVersionConflict  = errors.New("document changed concurrently")
	ErrCheckoutOccupied = errors.New("checkout key already occupied")
)
