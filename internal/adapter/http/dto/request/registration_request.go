package request

import (
	"strings"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase"
)

// RegistrationFormRequest carries the attendee data of the registration form.
// Normalization and required fields are enforced by the use case.
type RegistrationFormRequest struct {
	Name         string `json:"name"`
	CPF          string `json:"cpf"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	JobTitle     string `json:"job_title"`
}

func (r RegistrationFormRequest) ToForm() entities.RegistrationForm {
	return entities.RegistrationForm{
		Name:         r.Name,
		CPF:          r.CPF,
		Email:        r.Email,
		Phone:        r.Phone,
		Organization: r.Organization,
		JobTitle:     r.JobTitle,
	}
}

type CreateRegistrationRequest struct {
	CheckoutID     string `json:"checkout_id" binding:"required"`
	AttendeeUserID string `json:"attendee_user_id"`
	RegistrationFormRequest
}

func (r CreateRegistrationRequest) ToInput() usecase.CreateRegistrationInput {
	return usecase.CreateRegistrationInput{
		CheckoutID:     strings.TrimSpace(r.CheckoutID),
		AttendeeUserID: strings.TrimSpace(r.AttendeeUserID),
		Form:           r.ToForm(),
	}
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateRegistrationStatusRequest) ResolveStatus() entities.RegistrationStatus {
	return entities.RegistrationStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}
