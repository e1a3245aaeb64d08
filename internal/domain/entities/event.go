package entities

import "time"

type EventStatus string

const (
	EventStatusOpen     EventStatus = "open"
	EventStatusClosed   EventStatus = "closed"
	EventStatusCanceled EventStatus = "canceled"
)

// PriceBreakpoint is one quantity tier of an event's price table.
type PriceBreakpoint struct {
	MinQuantity int     `json:"min_quantity"`
	Price       float64 `json:"price"`
}

// Event is the read model of an event published by the CMS.
type Event struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Status           EventStatus       `json:"status"`
	PriceBreakpoints []PriceBreakpoint `json:"price_breakpoints"`
	StartsAt         time.Time         `json:"starts_at"`
}

func (e Event) AcceptsRegistrations() bool {
	return e.Status != EventStatusClosed && e.Status != EventStatusCanceled
}

// UnitPrice picks the tier with the highest MinQuantity not exceeding quantity.
func (e Event) UnitPrice(quantity int) (float64, bool) {
	found := false
	best := PriceBreakpoint{}
	for _, bp := range e.PriceBreakpoints {
		if bp.MinQuantity > quantity {
			continue
		}
		if !found || bp.MinQuantity > best.MinQuantity {
			best = bp
			found = true
		}
	}
	return best.Price, found
}

// TotalPrice is the unit price of the applicable tier times quantity.
func (e Event) TotalPrice(quantity int) (float64, bool) {
	if quantity <= 0 {
		return 0, false
	}
	unit, ok := e.UnitPrice(quantity)
	if !ok {
		return 0, false
	}
	return unit * float64(quantity), true
}
