package entities

import "time"

// CheckoutType distinguishes a purchase from a seat obtained through a voucher.
type CheckoutType string

const (
	CheckoutTypeAcquire CheckoutType = "acquire"
	CheckoutTypeVoucher CheckoutType = "voucher"
)

// CheckoutStatus represents the lifecycle of a checkout.
//
//	pending   -> completed | deleted
//	completed -> refunded  | deleted
//	refunded  -> deleted
//	deleted   -> (restore) previous status
type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "pending"
	CheckoutStatusCompleted CheckoutStatus = "completed"
	CheckoutStatusRefunded  CheckoutStatus = "refunded"
	CheckoutStatusDeleted   CheckoutStatus = "deleted"
)

func (s CheckoutStatus) Valid() bool {
	switch s {
	case CheckoutStatusPending, CheckoutStatusCompleted, CheckoutStatusRefunded, CheckoutStatusDeleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine accepts s -> next.
// Leaving deleted is only possible through a restore, never through a transition.
func (s CheckoutStatus) CanTransitionTo(next CheckoutStatus) bool {
	if next == CheckoutStatusDeleted {
		return s != CheckoutStatusDeleted
	}
	switch s {
	case CheckoutStatusPending:
		return next == CheckoutStatusCompleted
	case CheckoutStatusCompleted:
		return next == CheckoutStatusRefunded
	}
	return false
}

// BillingDetails carries who pays and how.
type BillingDetails struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Document      string        `json:"document"`
	Phone         string        `json:"phone,omitempty"`
	Organization  string        `json:"organization,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// Checkout is a purchase/acquisition record for one or more event seats.
//
// Storage model (DynamoDB):
//   - PK: id
//   - deleted checkouts live in a separate table with the same key.
//
// Amount is the purchased seat count; zero means the checkout has no seat
// count of its own (voucher-type checkouts).
type Checkout struct {
	ID               string          `json:"id"`
	Type             CheckoutType    `json:"type"`
	Status           CheckoutStatus  `json:"status"`
	UserID           string          `json:"user_id"`
	EventID          string          `json:"event_id"`
	Amount           int             `json:"amount,omitempty"`
	Complimentary    int             `json:"complimentary,omitempty"`
	TotalValue       float64         `json:"total_value,omitempty"`
	RegistrateMyself bool            `json:"registrate_myself"`
	VoucherID        string          `json:"voucher_id,omitempty"`
	Payment          *Payment        `json:"payment,omitempty"`
	BillingDetails   *BillingDetails `json:"billing_details,omitempty"`
	PreviousStatus   CheckoutStatus  `json:"previous_status,omitempty"`
	SeatVersion      int64           `json:"seat_version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
}

func (c Checkout) IsOwnedBy(userID string) bool {
	return userID != "" && c.UserID == userID
}

func (c Checkout) HasSeatCount() bool {
	return c.Amount > 0
}

// Capacity is the number of registrations a voucher may fill: purchased seats
// plus complimentary ones.
func (c Checkout) Capacity() int {
	return c.Amount + c.Complimentary
}

// PaymentMethod returns the billing method, falling back to the embedded payment.
func (c Checkout) PaymentMethod() PaymentMethod {
	if c.BillingDetails != nil && c.BillingDetails.PaymentMethod != "" {
		return c.BillingDetails.PaymentMethod
	}
	if c.Payment != nil {
		return c.Payment.Method
	}
	return ""
}

func (c Checkout) IsCommitment() bool {
	return c.PaymentMethod() == PaymentMethodCommitment
}

// VoucherCheckoutID is the deterministic key of the checkout an attendee gets
// when redeeming a voucher for an event.
func VoucherCheckoutID(eventID, attendeeUserID string) string {
	return eventID + "_" + attendeeUserID
}
