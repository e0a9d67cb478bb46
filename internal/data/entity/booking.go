package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions is the closed transition table. Cancellation is the
// only permitted transition; both confirmed and cancelled are terminal
// with respect to re-confirmation.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// CanTransition reports whether a booking may move from its current
// status to the target status.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Active reports whether the booking counts against seat availability.
// Cancelled bookings release their seats.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking claims a fixed set of seats for one showtime. The seat set is
// set at creation and never modified afterwards.
type Booking struct {
	Base
	UserID      uuid.UUID     `db:"user_id"`
	ShowtimeID  uuid.UUID     `db:"showtime_id"`
	BookingTime time.Time     `db:"booking_time"`
	Status      BookingStatus `db:"status"`
	SeatIDs     []uuid.UUID   `db:"-"` // loaded from booking_seats
}
