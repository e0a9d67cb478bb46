package repository

import (
	"github.com/vishnup-05/movie-booking-app/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Movie    MovieRepository
	Theater  TheaterRepository
	Screen   ScreenRepository
	Seat     SeatRepository
	Showtime ShowtimeRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Theater:  NewTheaterRepository(db, log),
		Screen:   NewScreenRepository(db, log),
		Seat:     NewSeatRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
