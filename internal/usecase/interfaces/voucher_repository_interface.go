package interfaces

import (
	"context"
	"eventos_inscricoes/internal/domain/entities"
)

// IVoucherRepository abstracts DynamoDB persistence for Voucher.
//
// Table requirements:
//   - PK: id
//   - GSI: checkout_id-index (PK: checkout_id)

type IVoucherRepository interface {
	Create(ctx context.Context, v entities.Voucher) (entities.Voucher, error)
	GetByID(ctx context.Context, id string) (entities.Voucher, error)
	GetByCheckoutID(ctx context.Context, checkoutID string) (entities.Voucher, error)
	SetActive(ctx context.Context, id string, active bool) (entities.Voucher, error)
}
