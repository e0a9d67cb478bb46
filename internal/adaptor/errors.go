package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vishnup-05/movie-booking-app/internal/dto/response"
	"github.com/vishnup-05/movie-booking-app/internal/usecase"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps the usecase error taxonomy to HTTP responses.
// Handlers never inspect error strings; unknown errors become a 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var seatErr *usecase.SeatUnavailableError
	switch {
	case errors.As(err, &seatErr):
		log.Warn(operation+" failed - seats unavailable", zap.Error(err))
		utils.ResponseConflict(w, seatErr.Error(), map[string]any{
			"conflicting_seats": response.SeatsToResponse(seatErr.Seats),
		})

	case errors.Is(err, usecase.ErrMovieNotFound),
		errors.Is(err, usecase.ErrTheaterNotFound),
		errors.Is(err, usecase.ErrScreenNotFound),
		errors.Is(err, usecase.ErrShowtimeNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidSeat),
		errors.Is(err, usecase.ErrInvalidSchedule),
		errors.Is(err, usecase.ErrAlreadyCancelled):
		log.Warn(operation+" failed - invalid request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrBusy):
		log.Warn(operation+" failed - showtime busy", zap.Error(err))
		utils.ResponseServiceUnavailable(w, err.Error())

	case errors.Is(err, usecase.ErrUserExists):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
