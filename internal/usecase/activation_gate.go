package usecase

import (
	"context"
	"errors"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

var (
	ErrCheckoutCancelled    = errors.New("purchase was cancelled")
	ErrCheckoutWithoutSeats = errors.New("acquisition has no seat count")
	ErrQuotaReached         = errors.New("quota reached")
)

// ActivationGate decides whether a registration may become "ok" against the
// finite seat quota of its checkout.
//
// Rules, in order:
//  1. the checkout must be completed or pending
//  2. admins bypass the quota
//  3. the buyer's reserved seat (registration id == checkout id) always fits
//  4. the checkout must have a seat count
//  5. ok registrations (reserved seat excluded) must be below the available slots
type ActivationGate struct {
	registrations interfaces.IRegistrationRepository
}

func NewActivationGate(registrations interfaces.IRegistrationRepository) *ActivationGate {
	return &ActivationGate{registrations: registrations}
}

func (g *ActivationGate) CanActivate(ctx context.Context, checkout entities.Checkout, registrationID string, isAdmin bool) error {
	if checkout.Status != entities.CheckoutStatusCompleted && checkout.Status != entities.CheckoutStatusPending {
		return ErrCheckoutCancelled
	}
	if isAdmin {
		return nil
	}
	if checkout.RegistrateMyself && registrationID == checkout.ID {
		return nil
	}
	if !checkout.HasSeatCount() {
		return ErrCheckoutWithoutSeats
	}

	used, err := g.registrations.CountByCheckoutID(ctx, checkout.ID, []entities.RegistrationStatus{entities.RegistrationStatusOK}, checkout.ID)
	if err != nil {
		return err
	}
	available := checkout.Amount
	if checkout.RegistrateMyself {
		available--
	}
	if used >= available {
		log.WithFields(log.Fields{"checkout_id": checkout.ID, "used": used, "available": available}).
			Info("[registration][gate] quota reached")
		return ErrQuotaReached
	}
	return nil
}
