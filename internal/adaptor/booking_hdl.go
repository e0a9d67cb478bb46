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

type BookingHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.ReservationService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Create handles POST /api/bookings (authenticated)
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// Cancel handles POST /api/bookings/{id}/cancel (owner or admin)
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID := chi.URLParam(r, "id")

	booking, err := h.service.CancelBooking(r.Context(), userID.String(), role, bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Get handles GET /api/bookings/{id} (owner or admin)
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID := chi.URLParam(r, "id")

	booking, err := h.service.GetBooking(r.Context(), userID.String(), role, bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListMine handles GET /api/bookings (authenticated)
// Optional query param: status (pending|confirmed|cancelled).
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	status := r.URL.Query().Get("status")

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), status)
	if err != nil {
		writeServiceError(w, h.log, err, "list user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// AvailableSeats handles GET /api/showtimes/{id}/seats (public)
func (h *BookingHandler) AvailableSeats(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")

	seats, err := h.service.AvailableSeats(r.Context(), showtimeID)
	if err != nil {
		writeServiceError(w, h.log, err, "list available seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// ListByShowtime handles GET /api/showtimes/{id}/bookings (admin)
func (h *BookingHandler) ListByShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")

	bookings, err := h.service.GetShowtimeBookings(r.Context(), showtimeID)
	if err != nil {
		writeServiceError(w, h.log, err, "list showtime bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListAll handles GET /api/admin/bookings (admin)
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
