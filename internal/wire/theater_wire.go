package wire

import (
	"github.com/vishnup-05/movie-booking-app/internal/adaptor"
	"github.com/vishnup-05/movie-booking-app/pkg/middleware"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTheater(
	r chi.Router,
	theaterHandler *adaptor.TheaterHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/theaters - List all theaters
	r.Get("/api/theaters", theaterHandler.List)

	// GET /api/theaters/{id} - Theater details
	r.Get("/api/theaters/{id}", theaterHandler.Get)

	// GET /api/theaters/{id}/screens - Screens of a theater
	r.Get("/api/theaters/{id}/screens", theaterHandler.ListScreens)

	// GET /api/screens/{id}/seats - Physical seat layout of a screen
	r.Get("/api/screens/{id}/seats", theaterHandler.ListScreenSeats)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// POST /api/theaters - Create theater (admin)
		r.Post("/api/theaters", theaterHandler.Create)

		// PUT /api/theaters/{id} - Update theater (admin)
		r.Put("/api/theaters/{id}", theaterHandler.Update)

		// DELETE /api/theaters/{id} - Delete theater (admin)
		r.Delete("/api/theaters/{id}", theaterHandler.Delete)

		// POST /api/theaters/{id}/screens - Create screen with seat layout (admin)
		r.Post("/api/theaters/{id}/screens", theaterHandler.CreateScreen)
	})
}
