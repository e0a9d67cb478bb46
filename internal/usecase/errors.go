package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/internal/data/repository"
)

// Closed error taxonomy for the booking core. Handlers map these to HTTP
// status codes; nothing in the core inspects error strings.
var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrTheaterNotFound  = errors.New("theater not found")
	ErrScreenNotFound   = errors.New("screen not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// ErrInvalidSeat covers an empty selection and seat ids that do not
	// belong to the showtime's screen.
	ErrInvalidSeat = errors.New("invalid seat selection")

	// ErrInvalidSchedule is returned when a showtime's start is not before
	// its end.
	ErrInvalidSchedule = errors.New("start time must be before end time")

	ErrForbidden        = errors.New("not allowed to access this booking")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrBusy means the reservation scope for the showtime could not be
	// acquired within the configured wait. Safe to retry after backoff.
	ErrBusy = errors.New("showtime is busy, retry later")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already taken")
)

// SeatUnavailableError reports which of the requested seats are already
// held by a non-cancelled booking. The caller may retry with other seats.
type SeatUnavailableError struct {
	Seats []*entity.Seat
}

func (e *SeatUnavailableError) Error() string {
	labels := make([]string, len(e.Seats))
	for i, seat := range e.Seats {
		labels[i] = seat.Label()
	}
	return fmt.Sprintf("seats unavailable: %s", strings.Join(labels, ", "))
}

func isConflict(err error) bool {
	return errors.Is(err, repository.ErrConflict)
}
