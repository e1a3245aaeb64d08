package interfaces

import (
	"context"
	"eventos_inscricoes/internal/domain/entities"
)

// SeatChange is a registration write that consumes (or may consume) a seat of
// the checkout identified by CheckoutID.
//
// The write is only applied when the checkout's seat_version still equals
// ExpectedVersion; the version is bumped in the same transaction.
type SeatChange struct {
	CheckoutID      string
	ExpectedVersion int64
	Registration    entities.Registration
	// NewRegistration makes the registration write a create
	// (attribute_not_exists) instead of a replace of an existing document.
	NewRegistration bool
	// AttendeeCheckout, when set, is created in the same transaction
	// (voucher redemption).
	AttendeeCheckout *entities.Checkout
}

// ISeatLedger commits seat-consuming writes atomically against the
// checkout's seat_version.
//
// Errors:
//   - ErrVersionConflict when the checkout changed since it was read
//   - ErrAlreadyExists when the registration (NewRegistration) already exists
//   - ErrCheckoutOccupied when AttendeeCheckout's key is taken
type ISeatLedger interface {
	Commit(ctx context.Context, change SeatChange) error
}
