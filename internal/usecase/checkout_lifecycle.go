package usecase

import (
	"context"
	"errors"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// checkoutLifecycle applies a status transition and its side effects:
//   - completed: voucher created once, buyer's reserved seat ensured
//   - deleted: document moved to the deleted table
//   - always: dependent registrations re-derived
//
// It is shared by the admin status endpoint and by the payment flows that
// complete a checkout.
type checkoutLifecycle struct {
	checkouts     interfaces.ICheckoutRepository
	registrations interfaces.IRegistrationRepository
	vouchers      interfaces.IVoucherRepository
	publisher     interfaces.IEventPublisher
}

func (l *checkoutLifecycle) transition(ctx context.Context, c entities.Checkout, to entities.CheckoutStatus) (entities.Checkout, error) {
	from := c.Status
	logger := log.WithFields(log.Fields{"checkout_id": c.ID, "from": from, "to": to})

	if from != to && !from.CanTransitionTo(to) {
		logger.Info("[checkout][lifecycle] transition rejected")
		return entities.Checkout{}, ErrInvalidStatusTransition
	}

	updated := c
	if from != to {
		var err error
		if to == entities.CheckoutStatusDeleted {
			updated, err = l.checkouts.SoftDelete(ctx, c)
		} else {
			updated, err = l.checkouts.UpdateStatus(ctx, c.ID, from, to)
		}
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Checkout{}, ErrCheckoutStatusChanged
		}
		if err != nil {
			logger.WithError(err).Error("[checkout][lifecycle] status write failed")
			return entities.Checkout{}, err
		}
		if updated.ID == "" {
			return entities.Checkout{}, ErrCheckoutNotFound
		}
		logger.Info("[checkout][lifecycle] status updated")
	}

	// Same-status calls still run the side effects below; all of them are idempotent.
	if to == entities.CheckoutStatusCompleted {
		if err := l.ensureVoucher(ctx, updated); err != nil {
			return entities.Checkout{}, err
		}
		if err := l.ensureReservedRegistration(ctx, updated); err != nil {
			return entities.Checkout{}, err
		}
	}
	if _, err := l.syncRegistrations(ctx, updated.ID, to); err != nil {
		return entities.Checkout{}, err
	}

	if from != to {
		publishEvent(ctx, l.publisher, interfaces.DomainEventCheckoutStatusChanged, updated.ID, map[string]any{
			"from":     string(from),
			"to":       string(to),
			"event_id": updated.EventID,
			"user_id":  updated.UserID,
		})
	}
	return updated, nil
}

// ensureVoucher creates the checkout's voucher unless one already exists.
// Only acquire-type checkouts carry vouchers.
func (l *checkoutLifecycle) ensureVoucher(ctx context.Context, c entities.Checkout) error {
	if c.Type != entities.CheckoutTypeAcquire {
		return nil
	}
	existing, err := l.vouchers.GetByCheckoutID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing.ID != "" {
		return nil
	}

	now := time.Now().UTC()
	v := entities.Voucher{
		ID:         uuid.NewString(),
		CheckoutID: c.ID,
		EventID:    c.EventID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := l.vouchers.Create(ctx, v); err != nil {
		return fmt.Errorf("create voucher for checkout %s: %w", c.ID, err)
	}
	log.WithFields(log.Fields{"checkout_id": c.ID, "voucher_id": v.ID}).Info("[checkout][lifecycle] voucher created")
	return nil
}

// ensureReservedRegistration creates the buyer's own registration (id equal to
// the checkout id) when the buyer registered themselves and it is missing.
func (l *checkoutLifecycle) ensureReservedRegistration(ctx context.Context, c entities.Checkout) error {
	if !c.RegistrateMyself {
		return nil
	}
	_, err := l.registrations.Create(ctx, reservedRegistration(c))
	if err != nil && !errors.Is(err, interfaces.ErrAlreadyExists) {
		return fmt.Errorf("create reserved registration for checkout %s: %w", c.ID, err)
	}
	return nil
}

// syncRegistrations re-derives every registration of the checkout and writes
// the ones whose status changed. It returns how many changed.
func (l *checkoutLifecycle) syncRegistrations(ctx context.Context, checkoutID string, status entities.CheckoutStatus) (int, error) {
	regs, err := l.registrations.ListByCheckoutID(ctx, checkoutID)
	if err != nil {
		return 0, err
	}

	changed := make([]entities.Registration, 0, len(regs))
	now := time.Now().UTC()
	for _, r := range regs {
		next := entities.DeriveRegistrationStatus(status, r.Status)
		if next == r.Status {
			continue
		}
		r.Status = next
		r.UpdatedAt = now
		changed = append(changed, r)
	}
	if len(changed) == 0 {
		return 0, nil
	}
	if err := l.registrations.UpdateStatuses(ctx, changed); err != nil {
		log.WithField("checkout_id", checkoutID).WithError(err).Error("[checkout][lifecycle] registration sync failed")
		return 0, err
	}
	log.WithFields(log.Fields{"checkout_id": checkoutID, "changed": len(changed)}).Info("[checkout][lifecycle] registrations synced")
	return len(changed), nil
}

func reservedRegistration(c entities.Checkout) entities.Registration {
	now := time.Now().UTC()
	r := entities.Registration{
		ID:              c.ID,
		EventID:         c.EventID,
		CheckoutID:      c.ID,
		AttendeeUserID:  c.UserID,
		CreatedByUserID: c.UserID,
		CreatedByRole:   entities.CreatorRoleBuyer,
		Status:          entities.InitialRegistrationStatus(c.Status),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if c.BillingDetails != nil {
		r.Form = entities.RegistrationForm{
			Name:         c.BillingDetails.Name,
			CPF:          c.BillingDetails.Document,
			Email:        c.BillingDetails.Email,
			Phone:        c.BillingDetails.Phone,
			Organization: c.BillingDetails.Organization,
		}
	}
	return r
}
