package response

import (
	"time"

	"eventos_inscricoes/internal/domain/entities"
)

type RegistrationResponse struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	CheckoutID      string    `json:"checkout_id"`
	AttendeeUserID  string    `json:"attendee_user_id,omitempty"`
	CreatedByUserID string    `json:"created_by_user_id"`
	CreatedByRole   string    `json:"created_by_role"`
	Status          string    `json:"status"`
	Name            string    `json:"name"`
	CPF             string    `json:"cpf,omitempty"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Organization    string    `json:"organization,omitempty"`
	JobTitle        string    `json:"job_title,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromRegistration(r entities.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:              r.ID,
		EventID:         r.EventID,
		CheckoutID:      r.CheckoutID,
		AttendeeUserID:  r.AttendeeUserID,
		CreatedByUserID: r.CreatedByUserID,
		CreatedByRole:   string(r.CreatedByRole),
		Status:          string(r.Status),
		Name:            r.Form.Name,
		CPF:             r.Form.CPF,
		Email:           r.Form.Email,
		Phone:           r.Form.Phone,
		Organization:    r.Form.Organization,
		JobTitle:        r.Form.JobTitle,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromRegistrations(regs []entities.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		out = append(out, FromRegistration(r))
	}
	return out
}
