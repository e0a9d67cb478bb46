package wire

import (
	"github.com/vishnup-05/movie-booking-app/internal/adaptor"
	"github.com/vishnup-05/movie-booking-app/pkg/middleware"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/showtimes - List showtimes (filter by movie_id, screen_id, from/to, upcoming)
	r.Get("/api/showtimes", showtimeHandler.List)

	// GET /api/showtimes/{id} - Showtime details
	r.Get("/api/showtimes/{id}", showtimeHandler.Get)

	// GET /api/showtimes/{id}/seats - Currently available seats
	r.Get("/api/showtimes/{id}/seats", bookingHandler.AvailableSeats)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// POST /api/showtimes - Schedule showtime (admin)
		r.Post("/api/showtimes", showtimeHandler.Create)

		// PUT /api/showtimes/{id} - Reschedule showtime (admin)
		r.Put("/api/showtimes/{id}", showtimeHandler.Update)

		// DELETE /api/showtimes/{id} - Remove showtime (admin)
		r.Delete("/api/showtimes/{id}", showtimeHandler.Delete)

		// GET /api/showtimes/{id}/bookings - All bookings of a showtime (admin)
		r.Get("/api/showtimes/{id}/bookings", bookingHandler.ListByShowtime)
	})
}
