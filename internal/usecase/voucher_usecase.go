package usecase

import (
	"context"
	"errors"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrVoucherNotFound         = errors.New("voucher not found")
	ErrInvalidVoucherID        = errors.New("invalid voucher id")
	ErrVoucherRejected         = errors.New("voucher rejected")
	ErrVoucherCheckoutOccupied = errors.New("attendee already holds a checkout for this event")
)

// Reasons reported by Validate and by a rejected redemption.
const (
	VoucherReasonDisabled       = "voucher is disabled"
	VoucherReasonPurchaseAbsent = "purchase not found"
	VoucherReasonPurchaseGone   = "purchase was cancelled"
	VoucherReasonNotConfirmed   = "purchase is not confirmed"
	VoucherReasonEventAbsent    = "event not found"
	VoucherReasonEventClosed    = "event is closed"
	VoucherReasonNoSeats        = "purchase has no seats"
	VoucherReasonMaximumReached = "maximum number of registrations reached"
)

// VoucherRejectedError carries the reason a voucher cannot be redeemed.
// errors.Is(err, ErrVoucherRejected) holds for it.
type VoucherRejectedError struct {
	Reason string
}

func (e *VoucherRejectedError) Error() string { return e.Reason }

func (e *VoucherRejectedError) Is(target error) bool { return target == ErrVoucherRejected }

type VoucherValidation struct {
	Valid  bool
	Reason string
	// Remaining is the number of registrations still available, when known.
	Remaining int
}

// IVoucherUseCase is the voucher redemption gate.
//
//   - GET   /voucher/{id}/validate   => Validate()
//   - POST  /voucher/{id}/registrate => Redeem()
//   - PATCH /voucher/{id}/activate   => SetActive()

type IVoucherUseCase interface {
	GetByCheckout(ctx context.Context, p entities.Principal, checkoutID string) (entities.Voucher, error)
	SetActive(ctx context.Context, p entities.Principal, id string, active bool) (entities.Voucher, error)
	Validate(ctx context.Context, id string) (VoucherValidation, error)
	Redeem(ctx context.Context, p entities.Principal, id string, form entities.RegistrationForm) (entities.Registration, error)
}

type VoucherUseCase struct {
	repo          interfaces.IVoucherRepository
	checkouts     interfaces.ICheckoutRepository
	registrations interfaces.IRegistrationRepository
	events        interfaces.IEventRepository
	ledger        interfaces.ISeatLedger
	publisher     interfaces.IEventPublisher
}

var _ IVoucherUseCase = (*VoucherUseCase)(nil)

func NewVoucherUseCase(
	repo interfaces.IVoucherRepository,
	checkouts interfaces.ICheckoutRepository,
	registrations interfaces.IRegistrationRepository,
	events interfaces.IEventRepository,
	ledger interfaces.ISeatLedger,
	publisher interfaces.IEventPublisher,
) *VoucherUseCase {
	return &VoucherUseCase{
		repo:          repo,
		checkouts:     checkouts,
		registrations: registrations,
		events:        events,
		ledger:        ledger,
		publisher:     publisher,
	}
}

func (u *VoucherUseCase) GetByCheckout(ctx context.Context, p entities.Principal, checkoutID string) (entities.Voucher, error) {
	checkoutID = strings.TrimSpace(checkoutID)
	if checkoutID == "" {
		return entities.Voucher{}, ErrInvalidCheckoutID
	}
	c, err := u.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		return entities.Voucher{}, err
	}
	if c.ID == "" {
		return entities.Voucher{}, ErrCheckoutNotFound
	}
	if !p.IsAdmin && !c.IsOwnedBy(p.ID) {
		return entities.Voucher{}, ErrForbidden
	}

	v, err := u.repo.GetByCheckoutID(ctx, checkoutID)
	if err != nil {
		return entities.Voucher{}, err
	}
	if v.ID == "" {
		return entities.Voucher{}, ErrVoucherNotFound
	}
	return v, nil
}

func (u *VoucherUseCase) SetActive(ctx context.Context, p entities.Principal, id string, active bool) (entities.Voucher, error) {
	v, err := u.load(ctx, id)
	if err != nil {
		return entities.Voucher{}, err
	}
	if !p.IsAdmin {
		c, err := u.checkouts.GetByID(ctx, v.CheckoutID)
		if err != nil {
			return entities.Voucher{}, err
		}
		if !c.IsOwnedBy(p.ID) {
			return entities.Voucher{}, ErrForbidden
		}
	}
	if v.Active == active {
		return v, nil
	}

	updated, err := u.repo.SetActive(ctx, v.ID, active)
	if err != nil {
		return entities.Voucher{}, err
	}
	if updated.ID == "" {
		return entities.Voucher{}, ErrVoucherNotFound
	}
	log.WithFields(log.Fields{"voucher_id": v.ID, "active": active, "user_id": p.ID}).Info("[voucher][usecase] active flag updated")
	return updated, nil
}

// Validate runs the redemption checks without writing anything. An unknown
// voucher id is an error; every other failed check is reported as an invalid
// validation with its reason.
func (u *VoucherUseCase) Validate(ctx context.Context, id string) (VoucherValidation, error) {
	v, err := u.load(ctx, id)
	if err != nil {
		return VoucherValidation{}, err
	}
	if !v.Active {
		return rejected(VoucherReasonDisabled), nil
	}

	c, err := u.checkouts.GetByID(ctx, v.CheckoutID)
	if err != nil {
		return VoucherValidation{}, err
	}
	if c.ID == "" {
		deleted, err := u.checkouts.GetDeletedByID(ctx, v.CheckoutID)
		if err != nil {
			return VoucherValidation{}, err
		}
		if deleted.ID != "" {
			return rejected(VoucherReasonPurchaseGone), nil
		}
		return rejected(VoucherReasonPurchaseAbsent), nil
	}
	return u.evaluate(ctx, c)
}

// evaluate applies the checks that depend on the buyer checkout, in order:
// confirmation, event, seat count, capacity.
func (u *VoucherUseCase) evaluate(ctx context.Context, c entities.Checkout) (VoucherValidation, error) {
	if !voucherCheckoutConfirmed(c) {
		return rejected(VoucherReasonNotConfirmed), nil
	}

	event, err := u.events.GetByID(ctx, c.EventID)
	if err != nil {
		return VoucherValidation{}, err
	}
	if event.ID == "" {
		return rejected(VoucherReasonEventAbsent), nil
	}
	if !event.AcceptsRegistrations() {
		return rejected(VoucherReasonEventClosed), nil
	}

	if !c.HasSeatCount() {
		return rejected(VoucherReasonNoSeats), nil
	}
	used, err := u.registrations.CountByCheckoutID(ctx, c.ID,
		[]entities.RegistrationStatus{entities.RegistrationStatusOK, entities.RegistrationStatusPending}, "")
	if err != nil {
		return VoucherValidation{}, err
	}
	if used >= c.Capacity() {
		return rejected(VoucherReasonMaximumReached), nil
	}
	return VoucherValidation{Valid: true, Remaining: c.Capacity() - used}, nil
}

// Redeem registers the caller on the buyer's checkout. The caller receives a
// voucher-type checkout keyed by event and user, so each attendee redeems at
// most once per event. Only the attendee checkout holds that key; the
// registration gets a random id.
func (u *VoucherUseCase) Redeem(ctx context.Context, p entities.Principal, id string, form entities.RegistrationForm) (entities.Registration, error) {
	if p.ID == "" {
		return entities.Registration{}, ErrUnauthenticated
	}
	form, err := normalizeForm(form)
	if err != nil {
		return entities.Registration{}, err
	}

	validation, err := u.Validate(ctx, id)
	if err != nil {
		return entities.Registration{}, err
	}
	if !validation.Valid {
		log.WithFields(log.Fields{"voucher_id": id, "reason": validation.Reason}).Info("[voucher][usecase] redeem rejected")
		return entities.Registration{}, &VoucherRejectedError{Reason: validation.Reason}
	}
	v, err := u.load(ctx, id)
	if err != nil {
		return entities.Registration{}, err
	}

	var reg entities.Registration
	_, err = commitSeatChange(ctx, u.checkouts, u.ledger, v.CheckoutID, func(c entities.Checkout) (interfaces.SeatChange, error) {
		check, err := u.evaluate(ctx, c)
		if err != nil {
			return interfaces.SeatChange{}, err
		}
		if !check.Valid {
			return interfaces.SeatChange{}, &VoucherRejectedError{Reason: check.Reason}
		}

		key := entities.VoucherCheckoutID(c.EventID, p.ID)
		existing, err := u.checkouts.GetByID(ctx, key)
		if err != nil {
			return interfaces.SeatChange{}, err
		}
		if existing.ID != "" {
			return interfaces.SeatChange{}, ErrVoucherCheckoutOccupied
		}

		now := time.Now().UTC()
		attendee := entities.Checkout{
			ID:        key,
			Type:      entities.CheckoutTypeVoucher,
			Status:    entities.CheckoutStatusCompleted,
			UserID:    p.ID,
			EventID:   c.EventID,
			VoucherID: v.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		reg = entities.Registration{
			ID:              uuid.NewString(),
			EventID:         c.EventID,
			CheckoutID:      c.ID,
			AttendeeUserID:  p.ID,
			CreatedByUserID: p.ID,
			CreatedByRole:   entities.CreatorRoleAttendee,
			Status:          entities.InitialRegistrationStatus(c.Status),
			Form:            form,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return interfaces.SeatChange{Registration: reg, NewRegistration: true, AttendeeCheckout: &attendee}, nil
	})
	switch {
	case errors.Is(err, interfaces.ErrCheckoutOccupied):
		return entities.Registration{}, ErrVoucherCheckoutOccupied
	case errors.Is(err, interfaces.ErrAlreadyExists):
		return entities.Registration{}, ErrRegistrationExists
	case err != nil:
		log.WithField("voucher_id", v.ID).WithError(err).Info("[voucher][usecase] redeem failed")
		return entities.Registration{}, err
	}

	publishEvent(ctx, u.publisher, interfaces.DomainEventVoucherRedeemed, reg.ID, map[string]any{
		"voucher_id":  v.ID,
		"checkout_id": reg.CheckoutID,
		"event_id":    reg.EventID,
		"status":      string(reg.Status),
		"email":       reg.Form.Email,
	})
	log.WithFields(log.Fields{"voucher_id": v.ID, "registration_id": reg.ID, "status": reg.Status}).
		Info("[voucher][usecase] redeemed")
	return reg, nil
}

func (u *VoucherUseCase) load(ctx context.Context, id string) (entities.Voucher, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Voucher{}, ErrInvalidVoucherID
	}
	v, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Voucher{}, err
	}
	if v.ID == "" {
		return entities.Voucher{}, ErrVoucherNotFound
	}
	return v, nil
}

// voucherCheckoutConfirmed accepts completed purchases, and pending ones paid
// by commitment (the seats are held while the commitment is processed).
func voucherCheckoutConfirmed(c entities.Checkout) bool {
	if c.Status == entities.CheckoutStatusCompleted {
		return true
	}
	return c.Status == entities.CheckoutStatusPending && c.IsCommitment()
}

func rejected(reason string) VoucherValidation {
	return VoucherValidation{Valid: false, Reason: reason}
}
