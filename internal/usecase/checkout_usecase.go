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
	ErrCheckoutNotFound        = errors.New("checkout not found")
	ErrInvalidCheckoutID       = errors.New("invalid checkout id")
	ErrInvalidCheckoutStatus   = errors.New("invalid checkout status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrCommitmentStatusManaged = errors.New("commitment checkouts change status through the commitment flow")
	ErrCheckoutRestoreConflict = errors.New("an active checkout already uses this id")
	ErrCheckoutStatusChanged   = errors.New("checkout changed concurrently")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidBillingDetails   = errors.New("invalid billing details")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrEventNotFound           = errors.New("event not found")
	ErrEventClosed             = errors.New("event is closed")
	ErrEventPricingUnavailable = errors.New("event has no price for this quantity")
	ErrForbidden               = errors.New("forbidden")
	ErrAdminOnly               = errors.New("admin only")
	ErrUnauthenticated         = errors.New("unauthenticated")
)

// CreateAcquisitionInput is a buyer's purchase intent.
type CreateAcquisitionInput struct {
	EventID          string
	Amount           int
	RegistrateMyself bool
	BillingDetails   entities.BillingDetails
	// Complimentary seats are only honored when an admin creates the checkout.
	Complimentary int
}

// ICheckoutUseCase exposes the checkout status machine.
//
//   - POST  /checkouts              => CreateAcquisition()
//   - PATCH /checkouts/{id}/status  => UpdateStatus() (admin)
//   - POST  /checkouts/{id}/restore => Restore() (admin)

type ICheckoutUseCase interface {
	CreateAcquisition(ctx context.Context, p entities.Principal, in CreateAcquisitionInput) (entities.Checkout, error)
	GetByID(ctx context.Context, p entities.Principal, id string) (entities.Checkout, error)
	UpdateStatus(ctx context.Context, p entities.Principal, id string, status entities.CheckoutStatus) (entities.Checkout, error)
	Restore(ctx context.Context, p entities.Principal, id string) (entities.Checkout, error)
}

type CheckoutUseCase struct {
	repo          interfaces.ICheckoutRepository
	registrations interfaces.IRegistrationRepository
	events        interfaces.IEventRepository
	lifecycle     *checkoutLifecycle
	publisher     interfaces.IEventPublisher
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	repo interfaces.ICheckoutRepository,
	registrations interfaces.IRegistrationRepository,
	vouchers interfaces.IVoucherRepository,
	events interfaces.IEventRepository,
	publisher interfaces.IEventPublisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		repo:          repo,
		registrations: registrations,
		events:        events,
		publisher:     publisher,
		lifecycle: &checkoutLifecycle{
			checkouts:     repo,
			registrations: registrations,
			vouchers:      vouchers,
			publisher:     publisher,
		},
	}
}

func (u *CheckoutUseCase) CreateAcquisition(ctx context.Context, p entities.Principal, in CreateAcquisitionInput) (entities.Checkout, error) {
	if p.ID == "" {
		return entities.Checkout{}, ErrUnauthenticated
	}
	in.EventID = strings.TrimSpace(in.EventID)
	if in.EventID == "" {
		return entities.Checkout{}, ErrEventNotFound
	}
	if in.Amount <= 0 {
		return entities.Checkout{}, ErrInvalidAmount
	}
	if !in.BillingDetails.PaymentMethod.Valid() {
		return entities.Checkout{}, ErrInvalidPaymentMethod
	}
	if strings.TrimSpace(in.BillingDetails.Name) == "" || strings.TrimSpace(in.BillingDetails.Email) == "" {
		return entities.Checkout{}, ErrInvalidBillingDetails
	}

	event, err := u.events.GetByID(ctx, in.EventID)
	if err != nil {
		return entities.Checkout{}, err
	}
	if event.ID == "" {
		return entities.Checkout{}, ErrEventNotFound
	}
	if !event.AcceptsRegistrations() {
		return entities.Checkout{}, ErrEventClosed
	}
	total, ok := event.TotalPrice(in.Amount)
	if !ok {
		return entities.Checkout{}, ErrEventPricingUnavailable
	}

	complimentary := 0
	if p.IsAdmin && in.Complimentary > 0 {
		complimentary = in.Complimentary
	}

	now := time.Now().UTC()
	billing := in.BillingDetails
	c := entities.Checkout{
		ID:               uuid.NewString(),
		Type:             entities.CheckoutTypeAcquire,
		Status:           entities.CheckoutStatusPending,
		UserID:           p.ID,
		EventID:          event.ID,
		Amount:           in.Amount,
		Complimentary:    complimentary,
		TotalValue:       total,
		RegistrateMyself: in.RegistrateMyself,
		BillingDetails:   &billing,
		Payment: &entities.Payment{
			Method:    billing.PaymentMethod,
			Status:    entities.PaymentStatusPending,
			Value:     total,
			UpdatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		log.WithField("event_id", event.ID).WithError(err).Error("[checkout][usecase] create failed")
		return entities.Checkout{}, err
	}
	if created.RegistrateMyself {
		if err := u.lifecycle.ensureReservedRegistration(ctx, created); err != nil {
			return entities.Checkout{}, err
		}
	}
	log.WithFields(log.Fields{"checkout_id": created.ID, "event_id": created.EventID, "amount": created.Amount}).
		Info("[checkout][usecase] acquisition created")
	return created, nil
}

func (u *CheckoutUseCase) GetByID(ctx context.Context, p entities.Principal, id string) (entities.Checkout, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if !p.IsAdmin && !c.IsOwnedBy(p.ID) {
		return entities.Checkout{}, ErrForbidden
	}
	return c, nil
}

func (u *CheckoutUseCase) UpdateStatus(ctx context.Context, p entities.Principal, id string, status entities.CheckoutStatus) (entities.Checkout, error) {
	if !p.IsAdmin {
		return entities.Checkout{}, ErrAdminOnly
	}
	if !status.Valid() {
		return entities.Checkout{}, ErrInvalidCheckoutStatus
	}
	c, err := u.load(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if c.IsCommitment() && status != entities.CheckoutStatusDeleted {
		return entities.Checkout{}, ErrCommitmentStatusManaged
	}
	log.WithFields(log.Fields{"checkout_id": c.ID, "admin_id": p.ID, "status": status}).Info("[checkout][usecase] update-status start")
	return u.lifecycle.transition(ctx, c, status)
}

// Restore moves a soft-deleted checkout back to the live table. It never
// overwrites a live document: the admin has to delete that one first.
func (u *CheckoutUseCase) Restore(ctx context.Context, p entities.Principal, id string) (entities.Checkout, error) {
	if !p.IsAdmin {
		return entities.Checkout{}, ErrAdminOnly
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Checkout{}, ErrInvalidCheckoutID
	}

	live, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if live.ID != "" {
		log.WithField("checkout_id", id).Info("[checkout][usecase] restore conflict")
		return entities.Checkout{}, ErrCheckoutRestoreConflict
	}

	deleted, err := u.repo.GetDeletedByID(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if deleted.ID == "" {
		return entities.Checkout{}, ErrCheckoutNotFound
	}

	status := deleted.PreviousStatus
	if !status.Valid() || status == entities.CheckoutStatusDeleted {
		status = entities.CheckoutStatusPending
	}

	restored, err := u.repo.Restore(ctx, deleted, status)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return entities.Checkout{}, ErrCheckoutRestoreConflict
	}
	if err != nil {
		log.WithField("checkout_id", id).WithError(err).Error("[checkout][usecase] restore failed")
		return entities.Checkout{}, err
	}
	if _, err := u.lifecycle.syncRegistrations(ctx, restored.ID, restored.Status); err != nil {
		return entities.Checkout{}, err
	}

	publishEvent(ctx, u.publisher, interfaces.DomainEventCheckoutRestored, restored.ID, map[string]any{
		"status":   string(restored.Status),
		"admin_id": p.ID,
	})
	log.WithFields(log.Fields{"checkout_id": restored.ID, "status": restored.Status}).Info("[checkout][usecase] restored")
	return restored, nil
}

func (u *CheckoutUseCase) load(ctx context.Context, id string) (entities.Checkout, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Checkout{}, ErrInvalidCheckoutID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if c.ID == "" {
		return entities.Checkout{}, ErrCheckoutNotFound
	}
	return c, nil
}
