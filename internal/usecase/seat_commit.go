package usecase

import (
	"context"
	"errors"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

var ErrSeatContention = errors.New("too many concurrent changes on this purchase, try again")

const seatCommitAttempts = 3

// commitSeatChange runs read -> check -> write against the checkout's
// seat_version. build sees a fresh checkout on every attempt and runs the quota
// checks; a version conflict means another seat write won the race, so the
// whole cycle starts over.
func commitSeatChange(
	ctx context.Context,
	checkouts interfaces.ICheckoutRepository,
	ledger interfaces.ISeatLedger,
	checkoutID string,
	build func(c entities.Checkout) (interfaces.SeatChange, error),
) (entities.Checkout, error) {
	for attempt := 1; attempt <= seatCommitAttempts; attempt++ {
		c, err := loadSeatCheckout(ctx, checkouts, checkoutID)
		if err != nil {
			return entities.Checkout{}, err
		}

		change, err := build(c)
		if err != nil {
			return entities.Checkout{}, err
		}
		change.CheckoutID = c.ID
		change.ExpectedVersion = c.SeatVersion

		err = ledger.Commit(ctx, change)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Checkout{}, err
		}
		log.WithFields(log.Fields{"checkout_id": c.ID, "attempt": attempt, "seat_version": c.SeatVersion}).
			Info("[registration][ledger] seat version conflict, retrying")
	}
	return entities.Checkout{}, ErrSeatContention
}

// loadSeatCheckout reads the live checkout that owns the seats. A checkout that
// only exists in the deleted table reports ErrCheckoutCancelled.
func loadSeatCheckout(ctx context.Context, checkouts interfaces.ICheckoutRepository, id string) (entities.Checkout, error) {
	c, err := checkouts.GetByID(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if c.ID != "" {
		return c, nil
	}
	deleted, err := checkouts.GetDeletedByID(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if deleted.ID != "" {
		return entities.Checkout{}, ErrCheckoutCancelled
	}
	return entities.Checkout{}, ErrCheckoutNotFound
}
