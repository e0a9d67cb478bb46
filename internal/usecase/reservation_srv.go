package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/internal/data/repository"
	"github.com/vishnup-05/movie-booking-app/internal/dto/request"
	"github.com/vishnup-05/movie-booking-app/internal/dto/response"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// activeStatuses are the booking statuses that hold seats.
var activeStatuses = []entity.BookingStatus{
	entity.BookingStatusPending,
	entity.BookingStatusConfirmed,
}

var allStatuses = []entity.BookingStatus{
	entity.BookingStatusPending,
	entity.BookingStatusConfirmed,
	entity.BookingStatusCancelled,
}

type ReservationService interface {
	// CreateBooking atomically claims the requested seats for the showtime.
	// The availability check and the insert run under the showtime's
	// reservation scope so two concurrent requests can never both win the
	// same seat.
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// CancelBooking frees the booking's seats. Only the owner or an admin
	// may cancel; cancelling twice yields ErrAlreadyCancelled.
	CancelBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error)

	AvailableSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error)

	GetBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID, status string) ([]response.BookingResponse, error)
	GetShowtimeBookings(ctx context.Context, showtimeID string) ([]response.BookingResponse, error)
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
}

type reservationService struct {
	repo     *repository.Repository
	locker   *showtimeLocker
	lockWait time.Duration
	log      *zap.Logger
}

func NewReservationService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:     repo,
		locker:   newShowtimeLocker(),
		lockWait: time.Duration(config.Reservation.LockWaitMS) * time.Millisecond,
		log:      log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", req.ShowtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	// Seat ids are a set: duplicates collapse before resolution.
	seatIDs, err := parseSeatIDSet(req.SeatIDs)
	if err != nil {
		return nil, err
	}
	if len(seatIDs) == 0 {
		return nil, ErrInvalidSeat
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, showtime.ScreenID, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		// At least one id is unknown or belongs to another screen.
		return nil, ErrInvalidSeat
	}

	// Reservation scope: everything between the held-seat read and the
	// insert is serialized per showtime.
	if err := s.locker.Acquire(ctx, showtimeID, s.lockWait); err != nil {
		s.log.Warn("Reservation scope not acquired",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, err
	}
	defer s.locker.Release(showtimeID)

	held, err := s.heldSeats(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	var conflicting []*entity.Seat
	for _, seat := range seats {
		if _, taken := held[seat.ID]; taken {
			conflicting = append(conflicting, seat)
		}
	}
	if len(conflicting) > 0 {
		return nil, &SeatUnavailableError{Seats: conflicting}
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userUUID,
		ShowtimeID:  showtimeID,
		BookingTime: now,
		Status:      entity.BookingStatusConfirmed,
		SeatIDs:     seatIDs,
	}

	if err := s.repo.Booking.Insert(ctx, booking); err != nil {
		// The partial unique index is the durable backstop for the scope;
		// a conflict here means another writer bypassed the in-process lock
		// (e.g. a second instance sharing the database).
		if errors.Is(err, repository.ErrConflict) {
			s.log.Warn("Booking insert lost a seat conflict at the storage layer",
				zap.String("showtime_id", showtimeID.String()),
			)
			return nil, &SeatUnavailableError{Seats: s.conflictingSeats(ctx, showtimeID, seats)}
		}
		s.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("showtime_id", req.ShowtimeID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("showtime_id", req.ShowtimeID),
		zap.Int("seat_count", len(seats)),
	)

	resp := response.BookingToResponse(booking, seats)
	return &resp, nil
}

func (s *reservationService) CancelBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !canAccessBooking(userUUID, role, booking) {
		return nil, ErrForbidden
	}

	// Cancellation shares the reservation scope so freeing seats is
	// serialized with in-flight reservations for the same showtime.
	if err := s.locker.Acquire(ctx, booking.ShowtimeID, s.lockWait); err != nil {
		return nil, err
	}
	defer s.locker.Release(booking.ShowtimeID)

	// Re-read inside the scope; another cancel may have won the race.
	booking, err = s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !booking.Status.CanTransition(entity.BookingStatusCancelled) {
		return nil, fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	booking.Status = entity.BookingStatusCancelled

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("cancelled_by", userID),
	)

	return s.buildBookingResponse(ctx, booking)
}

func (s *reservationService) AvailableSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	seats, err := s.repo.Seat.FindByScreenID(ctx, showtime.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("list screen seats: %w", err)
	}

	held, err := s.heldSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	available := make([]response.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		if _, taken := held[seat.ID]; !taken {
			available = append(available, response.SeatToResponse(seat))
		}
	}

	return available, nil
}

func (s *reservationService) GetBooking(ctx context.Context, userID, role, bookingID string) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !canAccessBooking(userUUID, role, booking) {
		return nil, ErrForbidden
	}

	return s.buildBookingResponse(ctx, booking)
}

func (s *reservationService) GetUserBookings(ctx context.Context, userID, status string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	var bookings []*entity.Booking
	if status != "" {
		bookings, err = s.repo.Booking.FindByUserAndStatus(ctx, userUUID, entity.BookingStatus(status))
	} else {
		bookings, err = s.repo.Booking.FindByUser(ctx, userUUID)
	}
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	return s.buildBookingResponses(ctx, bookings)
}

func (s *reservationService) GetShowtimeBookings(ctx context.Context, showtimeID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	bookings, err := s.repo.Booking.FindByShowtime(ctx, id, allStatuses)
	if err != nil {
		return nil, fmt.Errorf("get showtime bookings: %w", err)
	}

	return s.buildBookingResponses(ctx, bookings)
}

func (s *reservationService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	return s.buildBookingResponses(ctx, bookings)
}

// ==================== HELPERS ====================

// canAccessBooking is the ownership predicate: admins may act on any
// booking, everyone else only on their own.
func canAccessBooking(userID uuid.UUID, role string, booking *entity.Booking) bool {
	if role == entity.RoleAdmin {
		return true
	}
	return booking.UserID == userID
}

// heldSeats unions the seat sets of all non-cancelled bookings for the
// showtime. Availability is derived from the ledger, never stored on the
// seat itself.
func (s *reservationService) heldSeats(ctx context.Context, showtimeID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	bookings, err := s.repo.Booking.FindByShowtime(ctx, showtimeID, activeStatuses)
	if err != nil {
		s.log.Error("Failed to load held seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("load held seats: %w", err)
	}

	held := make(map[uuid.UUID]struct{})
	for _, booking := range bookings {
		for _, seatID := range booking.SeatIDs {
			held[seatID] = struct{}{}
		}
	}

	return held, nil
}

// conflictingSeats re-reads the held set after a storage-level conflict so
// the error names the seats actually taken, not the whole request. Falls
// back to the full request if the re-read fails or finds nothing; the
// winning transaction may not be visible yet.
func (s *reservationService) conflictingSeats(ctx context.Context, showtimeID uuid.UUID, requested []*entity.Seat) []*entity.Seat {
	held, err := s.heldSeats(ctx, showtimeID)
	if err != nil {
		return requested
	}

	var conflicting []*entity.Seat
	for _, seat := range requested {
		if _, taken := held[seat.ID]; taken {
			conflicting = append(conflicting, seat)
		}
	}
	if len(conflicting) == 0 {
		return requested
	}
	return conflicting
}

func parseSeatIDSet(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid seat ID format %s: %w", value, err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *reservationService) buildBookingResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}

	var seats []*entity.Seat
	if showtime != nil {
		seats, err = s.repo.Seat.FindByIDs(ctx, showtime.ScreenID, booking.SeatIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve booking seats: %w", err)
		}
	}

	resp := response.BookingToResponse(booking, seats)
	return &resp, nil
}

func (s *reservationService) buildBookingResponses(ctx context.Context, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	out := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp, err := s.buildBookingResponse(ctx, booking)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}
