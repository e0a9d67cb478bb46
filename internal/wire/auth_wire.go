package wire

import (
	"github.com/vishnup-05/movie-booking-app/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/register - Register new customer account
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Login and obtain a JWT
	r.Post("/api/auth/login", authHandler.Login)
}
