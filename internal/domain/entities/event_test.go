package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_TotalPrice(t *testing.T) {
	e := Event{PriceBreakpoints: []PriceBreakpoint{
		{MinQuantity: 10, Price: 70},
		{MinQuantity: 1, Price: 100},
		{MinQuantity: 5, Price: 85},
	}}

	cases := []struct {
		qty   int
		total float64
		ok    bool
	}{
		{0, 0, false},
		{1, 100, true},
		{4, 400, true},
		{5, 425, true},
		{12, 840, true},
	}
	for _, tc := range cases {
		total, ok := e.TotalPrice(tc.qty)
		assert.Equal(t, tc.ok, ok, "qty %d", tc.qty)
		assert.InDelta(t, tc.total, total, 0.001, "qty %d", tc.qty)
	}

	_, ok := Event{PriceBreakpoints: []PriceBreakpoint{{MinQuantity: 3, Price: 10}}}.TotalPrice(2)
	assert.False(t, ok)
}

func TestEvent_AcceptsRegistrations(t *testing.T) {
	assert.True(t, Event{Status: EventStatusOpen}.AcceptsRegistrations())
	assert.False(t, Event{Status: EventStatusClosed}.AcceptsRegistrations())
	assert.False(t, Event{Status: EventStatusCanceled}.AcceptsRegistrations())
}
