package response

import (
	"time"

	"eventos_inscricoes/internal/domain/entities"
)

type BillingDetailsResponse struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Document      string `json:"document"`
	Phone         string `json:"phone,omitempty"`
	Organization  string `json:"organization,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

type CheckoutResponse struct {
	ID               string                  `json:"id"`
	CheckoutID       string                  `json:"checkout_id"`
	Type             string                  `json:"type"`
	Status           string                  `json:"status"`
	UserID           string                  `json:"user_id"`
	EventID          string                  `json:"event_id"`
	Amount           int                     `json:"amount"`
	Complimentary    int                     `json:"complimentary,omitempty"`
	TotalValue       float64                 `json:"total_value"`
	RegistrateMyself bool                    `json:"registrate_myself"`
	VoucherID        string                  `json:"voucher_id,omitempty"`
	Payment          *PaymentResponse        `json:"payment,omitempty"`
	BillingDetails   *BillingDetailsResponse `json:"billing_details,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func FromCheckout(c entities.Checkout) CheckoutResponse {
	res := CheckoutResponse{
		ID:               c.ID,
		CheckoutID:       c.ID,
		Type:             string(c.Type),
		Status:           string(c.Status),
		UserID:           c.UserID,
		EventID:          c.EventID,
		Amount:           c.Amount,
		Complimentary:    c.Complimentary,
		TotalValue:       c.TotalValue,
		RegistrateMyself: c.RegistrateMyself,
		VoucherID:        c.VoucherID,
		Payment:          FromPayment(c.Payment),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if b := c.BillingDetails; b != nil {
		res.BillingDetails = &BillingDetailsResponse{
			Name:          b.Name,
			Email:         b.Email,
			Document:      b.Document,
			Phone:         b.Phone,
			Organization:  b.Organization,
			PaymentMethod: string(b.PaymentMethod),
		}
	}
	return res
}
