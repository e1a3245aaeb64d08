package response

import (
	"time"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase"
)

type VoucherResponse struct {
	ID         string    `json:"id"`
	VoucherID  string    `json:"voucher_id"`
	CheckoutID string    `json:"checkout_id"`
	EventID    string    `json:"event_id"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromVoucher(v entities.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:         v.ID,
		VoucherID:  v.ID,
		CheckoutID: v.CheckoutID,
		EventID:    v.EventID,
		Active:     v.Active,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

type VoucherValidationResponse struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	Remaining *int   `json:"remaining,omitempty"`
}

func FromVoucherValidation(v usecase.VoucherValidation) VoucherValidationResponse {
	res := VoucherValidationResponse{Valid: v.Valid, Reason: v.Reason}
	if v.Valid {
		remaining := v.Remaining
		res.Remaining = &remaining
	}
	return res
}
