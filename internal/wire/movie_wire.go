package wire

import (
	"github.com/vishnup-05/movie-booking-app/internal/adaptor"
	"github.com/vishnup-05/movie-booking-app/pkg/middleware"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - List all movies
	r.Get("/api/movies", movieHandler.List)

	// GET /api/movies/{id} - Movie details
	r.Get("/api/movies/{id}", movieHandler.Get)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// POST /api/movies - Create movie (admin)
		r.Post("/api/movies", movieHandler.Create)

		// PUT /api/movies/{id} - Update movie (admin)
		r.Put("/api/movies/{id}", movieHandler.Update)

		// DELETE /api/movies/{id} - Delete movie (admin)
		r.Delete("/api/movies/{id}", movieHandler.Delete)
	})
}
