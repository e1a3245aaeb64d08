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
	ErrRegistrationNotFound      = errors.New("registration not found")
	ErrInvalidRegistrationID     = errors.New("invalid registration id")
	ErrInvalidRegistrationStatus = errors.New("invalid registration status")
	ErrInvalidRegistrationForm   = errors.New("invalid registration form")
	ErrRegistrationExists        = errors.New("registration already exists")
)

type CreateRegistrationInput struct {
	CheckoutID     string
	AttendeeUserID string
	Form           entities.RegistrationForm
}

// IRegistrationUseCase manages attendee registrations on a checkout.
//
// Every write that may take a seat goes through the activation gate and the
// seat ledger.

type IRegistrationUseCase interface {
	Create(ctx context.Context, p entities.Principal, in CreateRegistrationInput) (entities.Registration, error)
	GetByID(ctx context.Context, p entities.Principal, id string) (entities.Registration, error)
	ListByCheckout(ctx context.Context, p entities.Principal, checkoutID string) ([]entities.Registration, error)
	UpdateStatus(ctx context.Context, p entities.Principal, id string, status entities.RegistrationStatus) (entities.Registration, error)
	UpdateDetails(ctx context.Context, p entities.Principal, id string, form entities.RegistrationForm) (entities.Registration, error)
}

type RegistrationUseCase struct {
	repo      interfaces.IRegistrationRepository
	checkouts interfaces.ICheckoutRepository
	ledger    interfaces.ISeatLedger
	gate      *ActivationGate
	publisher interfaces.IEventPublisher
}

var _ IRegistrationUseCase = (*RegistrationUseCase)(nil)

func NewRegistrationUseCase(
	repo interfaces.IRegistrationRepository,
	checkouts interfaces.ICheckoutRepository,
	ledger interfaces.ISeatLedger,
	publisher interfaces.IEventPublisher,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		repo:      repo,
		checkouts: checkouts,
		ledger:    ledger,
		gate:      NewActivationGate(repo),
		publisher: publisher,
	}
}

func (u *RegistrationUseCase) Create(ctx context.Context, p entities.Principal, in CreateRegistrationInput) (entities.Registration, error) {
	if p.ID == "" {
		return entities.Registration{}, ErrUnauthenticated
	}
	in.CheckoutID = strings.TrimSpace(in.CheckoutID)
	if in.CheckoutID == "" {
		return entities.Registration{}, ErrInvalidCheckoutID
	}
	form, err := normalizeForm(in.Form)
	if err != nil {
		return entities.Registration{}, err
	}

	id := uuid.NewString()
	var reg entities.Registration

	_, err = commitSeatChange(ctx, u.checkouts, u.ledger, in.CheckoutID, func(c entities.Checkout) (interfaces.SeatChange, error) {
		owner := c.IsOwnedBy(p.ID)
		if !owner && !p.IsAdmin {
			return interfaces.SeatChange{}, ErrForbidden
		}
		status := entities.InitialRegistrationStatus(c.Status)
		if status == entities.RegistrationStatusInvalid {
			return interfaces.SeatChange{}, ErrCheckoutCancelled
		}
		if err := u.gate.CanActivate(ctx, c, id, p.IsAdmin); err != nil {
			return interfaces.SeatChange{}, err
		}

		role := entities.CreatorRoleBuyer
		if !owner {
			role = entities.CreatorRoleAdmin
		}
		now := time.Now().UTC()
		reg = entities.Registration{
			ID:              id,
			EventID:         c.EventID,
			CheckoutID:      c.ID,
			AttendeeUserID:  strings.TrimSpace(in.AttendeeUserID),
			CreatedByUserID: p.ID,
			CreatedByRole:   role,
			Status:          status,
			Form:            form,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return interfaces.SeatChange{Registration: reg, NewRegistration: true}, nil
	})
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return entities.Registration{}, ErrRegistrationExists
	}
	if err != nil {
		log.WithField("checkout_id", in.CheckoutID).WithError(err).Info("[registration][usecase] create rejected")
		return entities.Registration{}, err
	}

	publishEvent(ctx, u.publisher, interfaces.DomainEventRegistrationCreated, reg.ID, map[string]any{
		"checkout_id": reg.CheckoutID,
		"event_id":    reg.EventID,
		"status":      string(reg.Status),
		"email":       reg.Form.Email,
	})
	log.WithFields(log.Fields{"registration_id": reg.ID, "checkout_id": reg.CheckoutID, "status": reg.Status}).
		Info("[registration][usecase] created")
	return reg, nil
}

func (u *RegistrationUseCase) GetByID(ctx context.Context, p entities.Principal, id string) (entities.Registration, error) {
	reg, err := u.load(ctx, id)
	if err != nil {
		return entities.Registration{}, err
	}
	if err := u.authorizeRead(ctx, p, reg); err != nil {
		return entities.Registration{}, err
	}
	return reg, nil
}

func (u *RegistrationUseCase) ListByCheckout(ctx context.Context, p entities.Principal, checkoutID string) ([]entities.Registration, error) {
	checkoutID = strings.TrimSpace(checkoutID)
	if checkoutID == "" {
		return nil, ErrInvalidCheckoutID
	}
	c, err := u.checkouts.GetByID(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if c.ID == "" {
		return nil, ErrCheckoutNotFound
	}
	if !p.IsAdmin && !c.IsOwnedBy(p.ID) {
		return nil, ErrForbidden
	}
	return u.repo.ListByCheckoutID(ctx, checkoutID)
}

// UpdateStatus changes a registration's status.
//
// Admins may set any status; the checkout owner may activate or cancel; the
// attendee may only cancel their own registration. Activation passes through
// the activation gate.
func (u *RegistrationUseCase) UpdateStatus(ctx context.Context, p entities.Principal, id string, status entities.RegistrationStatus) (entities.Registration, error) {
	if !status.Valid() {
		return entities.Registration{}, ErrInvalidRegistrationStatus
	}
	reg, err := u.load(ctx, id)
	if err != nil {
		return entities.Registration{}, err
	}

	c, err := u.checkouts.GetByID(ctx, reg.CheckoutID)
	if err == nil && c.ID == "" {
		// ownership of a deleted purchase is still read from its archived copy
		c, err = u.checkouts.GetDeletedByID(ctx, reg.CheckoutID)
	}
	if err != nil {
		return entities.Registration{}, err
	}
	if !canChangeRegistrationStatus(p, c, reg, status) {
		return entities.Registration{}, ErrForbidden
	}
	if reg.Status == status {
		return reg, nil
	}

	previous := reg.Status
	reg.Status = status
	reg.UpdatedAt = time.Now().UTC()

	if status == entities.RegistrationStatusOK {
		_, err = commitSeatChange(ctx, u.checkouts, u.ledger, reg.CheckoutID, func(c entities.Checkout) (interfaces.SeatChange, error) {
			if err := u.gate.CanActivate(ctx, c, reg.ID, p.IsAdmin); err != nil {
				return interfaces.SeatChange{}, err
			}
			return interfaces.SeatChange{Registration: reg}, nil
		})
	} else {
		err = u.repo.UpdateStatuses(ctx, []entities.Registration{reg})
	}
	if err != nil {
		log.WithFields(log.Fields{"registration_id": reg.ID, "status": status}).WithError(err).Info("[registration][usecase] update-status rejected")
		return entities.Registration{}, err
	}

	publishEvent(ctx, u.publisher, interfaces.DomainEventRegistrationStatusChanged, reg.ID, map[string]any{
		"checkout_id": reg.CheckoutID,
		"from":        string(previous),
		"to":          string(status),
		"changed_by":  p.ID,
	})
	log.WithFields(log.Fields{"registration_id": reg.ID, "from": previous, "to": status}).Info("[registration][usecase] status updated")
	return reg, nil
}

func (u *RegistrationUseCase) UpdateDetails(ctx context.Context, p entities.Principal, id string, form entities.RegistrationForm) (entities.Registration, error) {
	form, err := normalizeForm(form)
	if err != nil {
		return entities.Registration{}, err
	}
	reg, err := u.load(ctx, id)
	if err != nil {
		return entities.Registration{}, err
	}
	if err := u.authorizeRead(ctx, p, reg); err != nil {
		return entities.Registration{}, err
	}

	updated, err := u.repo.UpdateDetails(ctx, reg.ID, form)
	if err != nil {
		return entities.Registration{}, err
	}
	if updated.ID == "" {
		return entities.Registration{}, ErrRegistrationNotFound
	}
	return updated, nil
}

func (u *RegistrationUseCase) load(ctx context.Context, id string) (entities.Registration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Registration{}, ErrInvalidRegistrationID
	}
	reg, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Registration{}, err
	}
	if reg.ID == "" {
		return entities.Registration{}, ErrRegistrationNotFound
	}
	return reg, nil
}

// authorizeRead lets admins, the attendee and the owner of the checkout through.
func (u *RegistrationUseCase) authorizeRead(ctx context.Context, p entities.Principal, reg entities.Registration) error {
	if p.IsAdmin || (p.ID != "" && reg.AttendeeUserID == p.ID) {
		return nil
	}
	c, err := u.checkouts.GetByID(ctx, reg.CheckoutID)
	if err != nil {
		return err
	}
	if c.IsOwnedBy(p.ID) {
		return nil
	}
	return ErrForbidden
}

func canChangeRegistrationStatus(p entities.Principal, c entities.Checkout, reg entities.Registration, status entities.RegistrationStatus) bool {
	if p.IsAdmin {
		return true
	}
	if c.ID != "" && c.IsOwnedBy(p.ID) {
		return status == entities.RegistrationStatusOK || status == entities.RegistrationStatusCancelled
	}
	if p.ID != "" && reg.AttendeeUserID == p.ID {
		return status == entities.RegistrationStatusCancelled
	}
	return false
}

func normalizeForm(f entities.RegistrationForm) (entities.RegistrationForm, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.CPF = onlyDigits(f.CPF)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Organization = strings.TrimSpace(f.Organization)
	f.JobTitle = strings.TrimSpace(f.JobTitle)
	if f.Name == "" || f.Email == "" || !strings.Contains(f.Email, "@") {
		return entities.RegistrationForm{}, ErrInvalidRegistrationForm
	}
	if f.CPF != "" && len(f.CPF) != 11 {
		return entities.RegistrationForm{}, ErrInvalidRegistrationForm
	}
	return f, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
