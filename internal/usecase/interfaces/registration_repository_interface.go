package interfaces

import (
	"context"
	"eventos_inscricoes/internal/domain/entities"
)

// IRegistrationRepository abstracts DynamoDB persistence for Registration.
//
// Registrations are found through the checkout_id GSI; a checkout never
// enumerates its registrations.

type IRegistrationRepository interface {
	Create(ctx context.Context, r entities.Registration) (entities.Registration, error)
	GetByID(ctx context.Context, id string) (entities.Registration, error)
	ListByCheckoutID(ctx context.Context, checkoutID string) ([]entities.Registration, error)
	// CountByCheckoutID counts registrations of a checkout whose status is one of
	// statuses, skipping the document whose id equals excludeID (when not empty).
	CountByCheckoutID(ctx context.Context, checkoutID string, statuses []entities.RegistrationStatus, excludeID string) (int, error)
	UpdateDetails(ctx context.Context, id string, form entities.RegistrationForm) (entities.Registration, error)
	// UpdateStatuses writes the status of every registration in small atomic batches.
	UpdateStatuses(ctx context.Context, regs []entities.Registration) error
}
