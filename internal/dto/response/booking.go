package response

import (
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	ShowtimeID  string               `json:"showtime_id"`
	Status      entity.BookingStatus `json:"status"`
	BookingTime time.Time            `json:"booking_time"`
	Seats       []SeatResponse       `json:"seats"`
	CreatedAt   time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, seats []*entity.Seat) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.String(),
		UserID:      booking.UserID.String(),
		ShowtimeID:  booking.ShowtimeID.String(),
		Status:      booking.Status,
		BookingTime: booking.BookingTime,
		Seats:       SeatsToResponse(seats),
		CreatedAt:   booking.CreatedAt,
	}
}
