package wire

import (
	"github.com/vishnup-05/movie-booking-app/internal/adaptor"
	"github.com/vishnup-05/movie-booking-app/pkg/middleware"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/bookings - Reserve seats for a showtime
		r.Post("/api/bookings", bookingHandler.Create)

		// GET /api/bookings - Own booking history (filter by status)
		r.Get("/api/bookings", bookingHandler.ListMine)

		// GET /api/bookings/{id} - Booking details (owner or admin)
		r.Get("/api/bookings/{id}", bookingHandler.Get)

		// POST /api/bookings/{id}/cancel - Cancel booking (owner or admin)
		r.Post("/api/bookings/{id}/cancel", bookingHandler.Cancel)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings - List every booking (admin)
		r.Get("/", bookingHandler.ListAll)
	})
}
