package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/dto/request"
	"github.com/vishnup-05/movie-booking-app/internal/usecase"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// List handles GET /api/showtimes (public)
// Optional query params: movie_id, screen_id, from, to (RFC 3339),
// upcoming=true combined with movie_id.
func (h *ShowtimeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if movieID := q.Get("movie_id"); movieID != "" {
		if q.Get("upcoming") == "true" {
			result, err := h.service.ListUpcomingByMovie(r.Context(), movieID)
			if err != nil {
				writeServiceError(w, h.log, err, "list upcoming showtimes")
				return
			}
			utils.ResponseSuccess(w, "success", result)
			return
		}

		result, err := h.service.ListShowtimesByMovie(r.Context(), movieID)
		if err != nil {
			writeServiceError(w, h.log, err, "list showtimes by movie")
			return
		}
		utils.ResponseSuccess(w, "success", result)
		return
	}

	if screenID := q.Get("screen_id"); screenID != "" {
		result, err := h.service.ListShowtimesByScreen(r.Context(), screenID)
		if err != nil {
			writeServiceError(w, h.log, err, "list showtimes by screen")
			return
		}
		utils.ResponseSuccess(w, "success", result)
		return
	}

	if fromStr, toStr := q.Get("from"), q.Get("to"); fromStr != "" && toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid 'from' timestamp", nil)
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid 'to' timestamp", nil)
			return
		}

		result, err := h.service.ListShowtimesByDateRange(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, h.log, err, "list showtimes by date range")
			return
		}
		utils.ResponseSuccess(w, "success", result)
		return
	}

	result, err := h.service.ListShowtimes(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Get handles GET /api/showtimes/{id} (public)
func (h *ShowtimeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	showtime, err := h.service.GetShowtime(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// Create handles POST /api/showtimes (admin)
func (h *ShowtimeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "success", showtime)
}

// Update handles PUT /api/showtimes/{id} (admin)
func (h *ShowtimeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.UpdateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// Delete handles DELETE /api/showtimes/{id} (admin)
func (h *ShowtimeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteShowtime(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
