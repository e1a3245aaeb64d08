package entities

import "time"

// Voucher lets third parties register against a buyer's checkout quota.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (checkout_id-index): checkout_id
type Voucher struct {
	ID         string    `json:"id"`
	CheckoutID string    `json:"checkout_id"`
	EventID    string    `json:"event_id"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
