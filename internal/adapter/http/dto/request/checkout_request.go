package request

import (
	"strings"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase"
)

type BillingDetailsRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Document      string `json:"document" binding:"required"`
	Phone         string `json:"phone"`
	Organization  string `json:"organization"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// CreateCheckoutRequest is a buyer's purchase intent for an event.
type CreateCheckoutRequest struct {
	EventID          string                `json:"event_id" binding:"required"`
	Amount           int                   `json:"amount" binding:"required,min=1"`
	RegistrateMyself bool                  `json:"registrate_myself"`
	Complimentary    int                   `json:"complimentary" binding:"min=0"`
	BillingDetails   BillingDetailsRequest `json:"billing_details" binding:"required"`
}

func (r CreateCheckoutRequest) ToInput() usecase.CreateAcquisitionInput {
	b := r.BillingDetails
	return usecase.CreateAcquisitionInput{
		EventID:          strings.TrimSpace(r.EventID),
		Amount:           r.Amount,
		RegistrateMyself: r.RegistrateMyself,
		Complimentary:    r.Complimentary,
		BillingDetails: entities.BillingDetails{
			Name:          strings.TrimSpace(b.Name),
			Email:         strings.ToLower(strings.TrimSpace(b.Email)),
			Document:      strings.TrimSpace(b.Document),
			Phone:         strings.TrimSpace(b.Phone),
			Organization:  strings.TrimSpace(b.Organization),
			PaymentMethod: entities.PaymentMethod(strings.ToLower(strings.TrimSpace(b.PaymentMethod))),
		},
	}
}

type UpdateCheckoutStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateCheckoutStatusRequest) ResolveStatus() entities.CheckoutStatus {
	return entities.CheckoutStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}
