package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/vishnup-05/movie-booking-app/internal/dto/request"
	"github.com/vishnup-05/movie-booking-app/internal/usecase"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TheaterHandler struct {
	service usecase.TheaterService
	log     *zap.Logger
}

func NewTheaterHandler(service usecase.TheaterService, log *zap.Logger) *TheaterHandler {
	return &TheaterHandler{
		service: service,
		log:     log.With(zap.String("handler", "theater")),
	}
}

// List handles GET /api/theaters (public)
func (h *TheaterHandler) List(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.ListTheaters(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// Get handles GET /api/theaters/{id} (public)
func (h *TheaterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	theater, err := h.service.GetTheater(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get theater")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// Create handles POST /api/theaters (admin)
func (h *TheaterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	theater, err := h.service.CreateTheater(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "success", theater)
}

// Update handles PUT /api/theaters/{id} (admin)
func (h *TheaterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.UpdateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	theater, err := h.service.UpdateTheater(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update theater")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// Delete handles DELETE /api/theaters/{id} (admin)
func (h *TheaterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteTheater(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete theater")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateScreen handles POST /api/theaters/{id}/screens (admin)
func (h *TheaterHandler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")

	var req request.CreateScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screen, err := h.service.CreateScreen(r.Context(), theaterID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create screen")
		return
	}

	utils.ResponseCreated(w, "success", screen)
}

// ListScreens handles GET /api/theaters/{id}/screens (public)
func (h *TheaterHandler) ListScreens(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")

	screens, err := h.service.ListScreens(r.Context(), theaterID)
	if err != nil {
		writeServiceError(w, h.log, err, "list screens")
		return
	}

	utils.ResponseSuccess(w, "success", screens)
}

// ListScreenSeats handles GET /api/screens/{id}/seats (public)
func (h *TheaterHandler) ListScreenSeats(w http.ResponseWriter, r *http.Request) {
	screenID := chi.URLParam(r, "id")

	seats, err := h.service.ListScreenSeats(r.Context(), screenID)
	if err != nil {
		writeServiceError(w, h.log, err, "list screen seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}
