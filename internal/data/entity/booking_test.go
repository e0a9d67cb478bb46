package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"cancelled to confirmed", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"cancelled to pending", BookingStatusCancelled, BookingStatusPending, false},
		{"cancelled to cancelled", BookingStatusCancelled, BookingStatusCancelled, false},
		{"unknown status", BookingStatus("expired"), BookingStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestBookingStatusActive(t *testing.T) {
	assert.True(t, BookingStatusPending.Active())
	assert.True(t, BookingStatusConfirmed.Active())
	assert.False(t, BookingStatusCancelled.Active())
}

func TestSeatLabel(t *testing.T) {
	seat := &Seat{Row: "C", Number: 12}
	assert.Equal(t, "C12", seat.Label())
}
