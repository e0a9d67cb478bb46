package usecase

import (
	"github.com/vishnup-05/movie-booking-app/internal/data/repository"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Movie       MovieService
	Theater     TheaterService
	Showtime    ShowtimeService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, logger),
		Movie:       NewMovieService(repo, logger),
		Theater:     NewTheaterService(repo, logger),
		Showtime:    NewShowtimeService(repo, logger),
		Reservation: NewReservationService(repo, config, logger),
	}
}
