package interfaces

import (
	"context"
	"eventos_inscricoes/internal/domain/entities"
)

// ICheckoutRepository abstracts DynamoDB persistence for Checkout.
//
// Live checkouts and soft-deleted checkouts are kept in separate tables:
//   - SoftDelete moves a document from the live table into the deleted table
//   - Restore moves it back, refusing to overwrite a live document
//
// Lookups return a zero-value Checkout (empty ID) when the document is absent.

type ICheckoutRepository interface {
	Create(ctx context.Context, c entities.Checkout) (entities.Checkout, error)
	GetByID(ctx context.Context, id string) (entities.Checkout, error)
	GetDeletedByID(ctx context.Context, id string) (entities.Checkout, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.CheckoutStatus) (entities.Checkout, error)
	UpdatePayment(ctx context.Context, id string, payment entities.Payment) (entities.Checkout, error)
	SoftDelete(ctx context.Context, c entities.Checkout) (entities.Checkout, error)
	Restore(ctx context.Context, deleted entities.Checkout, status entities.CheckoutStatus) (entities.Checkout, error)
	ListByStatus(ctx context.Context, status entities.CheckoutStatus) ([]entities.Checkout, error)
}
