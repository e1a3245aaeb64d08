package entities

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusOK        RegistrationStatus = "ok"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
	RegistrationStatusInvalid   RegistrationStatus = "invalid"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusOK, RegistrationStatusCancelled, RegistrationStatusInvalid:
		return true
	}
	return false
}

// CreatorRole records who created a registration.
type CreatorRole string

const (
	CreatorRoleBuyer    CreatorRole = "buyer"
	CreatorRoleAdmin    CreatorRole = "admin"
	CreatorRoleAttendee CreatorRole = "attendee"
)

// RegistrationForm holds the attendee data collected by the registration form.
type RegistrationForm struct {
	Name         string `json:"name"`
	CPF          string `json:"cpf"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
}

// Registration is one attendee's enrollment tied to a checkout.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (checkout_id-index): checkout_id
//
// The buyer's own seat uses the checkout id as registration id.
type Registration struct {
	ID              string             `json:"id"`
	EventID         string             `json:"event_id"`
	CheckoutID      string             `json:"checkout_id"`
	AttendeeUserID  string             `json:"attendee_user_id,omitempty"`
	CreatedByUserID string             `json:"created_by_user_id"`
	CreatedByRole   CreatorRole        `json:"created_by_role"`
	Status          RegistrationStatus `json:"status"`
	Form            RegistrationForm   `json:"form"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func (r Registration) IsReservedSeat() bool {
	return r.ID != "" && r.ID == r.CheckoutID
}

// DeriveRegistrationStatus computes a registration's status after its checkout
// moved to checkoutStatus. Cancelled registrations stay cancelled.
func DeriveRegistrationStatus(checkoutStatus CheckoutStatus, current RegistrationStatus) RegistrationStatus {
	if current == RegistrationStatusCancelled {
		return current
	}
	switch checkoutStatus {
	case CheckoutStatusDeleted:
		return RegistrationStatusInvalid
	case CheckoutStatusRefunded:
		if current == RegistrationStatusInvalid {
			return current
		}
		return RegistrationStatusCancelled
	case CheckoutStatusCompleted:
		if current == RegistrationStatusPending || current == RegistrationStatusInvalid {
			return RegistrationStatusOK
		}
	case CheckoutStatusPending:
		if current == RegistrationStatusOK || current == RegistrationStatusInvalid {
			return RegistrationStatusPending
		}
	}
	return current
}

// InitialRegistrationStatus is the status a new registration gets from the
// checkout whose seats it uses.
func InitialRegistrationStatus(checkoutStatus CheckoutStatus) RegistrationStatus {
	switch checkoutStatus {
	case CheckoutStatusCompleted:
		return RegistrationStatusOK
	case CheckoutStatusPending:
		return RegistrationStatusPending
	}
	return RegistrationStatusInvalid
}
