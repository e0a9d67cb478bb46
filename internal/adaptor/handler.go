package adaptor

import (
	"github.com/vishnup-05/movie-booking-app/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Movie    *MovieHandler
	Theater  *TheaterHandler
	Showtime *ShowtimeHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Theater:  NewTheaterHandler(service.Theater, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Booking:  NewBookingHandler(service.Reservation, log),
	}
}
