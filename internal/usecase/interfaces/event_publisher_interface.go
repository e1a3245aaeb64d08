package interfaces

import (
	"context"
	"time"
)

const (
	DomainEventCheckoutStatusChanged     = "checkout.status_changed"
	DomainEventCheckoutRestored          = "checkout.restored"
	DomainEventRegistrationCreated       = "registration.created"
	DomainEventRegistrationStatusChanged = "registration.status_changed"
	DomainEventVoucherRedeemed           = "voucher.redeemed"
)

// DomainEvent is published after a successful write, for notification consumers.
type DomainEvent struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// IEventPublisher delivers domain events to the message broker.
type IEventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
