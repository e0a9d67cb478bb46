package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/internal/data/repository"
	"github.com/vishnup-05/movie-booking-app/internal/dto/request"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reservationFixture struct {
	service  ReservationService
	repo     *repository.Repository
	bookings *fakeBookingRepo

	showtimeID uuid.UUID
	screenID   uuid.UUID
	seatA1     *entity.Seat
	seatA2     *entity.Seat
	seatB1     *entity.Seat
}

func newReservationFixture(t *testing.T, lockWaitMS int) *reservationFixture {
	t.Helper()

	repo, bookings, seats, showtimes := newFakeRepository()

	screenID := uuid.New()
	showtime := &entity.Showtime{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		MovieID:   uuid.New(),
		ScreenID:  screenID,
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(26 * time.Hour),
	}
	require.NoError(t, showtimes.Create(context.Background(), showtime))

	seatA1 := &entity.Seat{BaseSimple: entity.BaseSimple{ID: uuid.New()}, ScreenID: screenID, Row: "A", Number: 1}
	seatA2 := &entity.Seat{BaseSimple: entity.BaseSimple{ID: uuid.New()}, ScreenID: screenID, Row: "A", Number: 2}
	seatB1 := &entity.Seat{BaseSimple: entity.BaseSimple{ID: uuid.New()}, ScreenID: screenID, Row: "B", Number: 1}
	require.NoError(t, seats.CreateBatch(context.Background(), []*entity.Seat{seatA1, seatA2, seatB1}))

	config := &utils.Config{Reservation: utils.ReservationConfig{LockWaitMS: lockWaitMS}}
	service := NewReservationService(repo, config, zap.NewNop())

	return &reservationFixture{
		service:    service,
		repo:       repo,
		bookings:   bookings,
		showtimeID: showtime.ID,
		screenID:   screenID,
		seatA1:     seatA1,
		seatA2:     seatA2,
		seatB1:     seatB1,
	}
}

func (f *reservationFixture) bookingRequest(seats ...*entity.Seat) *request.CreateBookingRequest {
	ids := make([]string, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID.String())
	}
	return &request.CreateBookingRequest{
		ShowtimeID: f.showtimeID.String(),
		SeatIDs:    ids,
	}
}

func (f *reservationFixture) availableLabels(t *testing.T) []string {
	t.Helper()
	seats, err := f.service.AvailableSeats(context.Background(), f.showtimeID.String())
	require.NoError(t, err)
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat.Label)
	}
	return labels
}

func TestCreateBooking_ConflictAndRelease(t *testing.T) {
	f := newReservationFixture(t, 3000)
	ctx := context.Background()

	user1 := uuid.New().String()
	user2 := uuid.New().String()

	// User 1 takes A1 and A2.
	booking1, err := f.service.CreateBooking(ctx, user1, f.bookingRequest(f.seatA1, f.seatA2))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, booking1.Status)
	assert.Len(t, booking1.Seats, 2)

	// User 2 wants A2 and B1; A2 is taken so the whole request fails
	// and B1 stays untouched.
	_, err = f.service.CreateBooking(ctx, user2, f.bookingRequest(f.seatA2, f.seatB1))
	var seatErr *SeatUnavailableError
	require.ErrorAs(t, err, &seatErr)
	require.Len(t, seatErr.Seats, 1)
	assert.Equal(t, "A2", seatErr.Seats[0].Label())

	assert.ElementsMatch(t, []string{"B1"}, f.availableLabels(t))

	// B1 alone still works.
	_, err = f.service.CreateBooking(ctx, user2, f.bookingRequest(f.seatB1))
	require.NoError(t, err)

	assert.Empty(t, f.availableLabels(t))

	// Cancelling the first booking frees exactly its seats.
	cancelled, err := f.service.CancelBooking(ctx, user1, entity.RoleCustomer, booking1.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)

	assert.ElementsMatch(t, []string{"A1", "A2"}, f.availableLabels(t))

	// Freed seats can be rebooked.
	_, err = f.service.CreateBooking(ctx, user1, f.bookingRequest(f.seatA1, f.seatA2))
	require.NoError(t, err)
}

func TestCreateBooking_DuplicateSeatIDsCollapse(t *testing.T) {
	f := newReservationFixture(t, 3000)

	req := &request.CreateBookingRequest{
		ShowtimeID: f.showtimeID.String(),
		SeatIDs:    []string{f.seatA1.ID.String(), f.seatA1.ID.String()},
	}
	booking, err := f.service.CreateBooking(context.Background(), uuid.New().String(), req)
	require.NoError(t, err)
	assert.Len(t, booking.Seats, 1)
}

func TestCreateBooking_UnknownSeat(t *testing.T) {
	f := newReservationFixture(t, 3000)

	req := &request.CreateBookingRequest{
		ShowtimeID: f.showtimeID.String(),
		SeatIDs:    []string{uuid.New().String()},
	}
	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestCreateBooking_SeatFromAnotherScreen(t *testing.T) {
	f := newReservationFixture(t, 3000)

	foreign := &entity.Seat{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		ScreenID:   uuid.New(),
		Row:        "C",
		Number:     1,
	}
	require.NoError(t, f.repo.Seat.CreateBatch(context.Background(), []*entity.Seat{foreign}))

	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), f.bookingRequest(foreign))
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestCreateBooking_ShowtimeNotFound(t *testing.T) {
	f := newReservationFixture(t, 3000)

	req := &request.CreateBookingRequest{
		ShowtimeID: uuid.New().String(),
		SeatIDs:    []string{f.seatA1.ID.String()},
	}
	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

func TestCreateBooking_StorageConflictBackstop(t *testing.T) {
	f := newReservationFixture(t, 3000)

	// Simulate a second instance winning seat A1 directly in the database,
	// past the in-process lock: the rival booking lands between this
	// request's availability check and its insert.
	rival := &entity.Booking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uuid.New(),
		ShowtimeID: f.showtimeID,
		Status:     entity.BookingStatusConfirmed,
		SeatIDs:    []uuid.UUID{f.seatA1.ID},
	}
	f.bookings.insertHook = func(*entity.Booking) error {
		f.bookings.mu.Lock()
		f.bookings.bookings[rival.ID] = rival
		f.bookings.mu.Unlock()
		return repository.ErrConflict
	}

	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), f.bookingRequest(f.seatA1, f.seatA2))
	var seatErr *SeatUnavailableError
	require.ErrorAs(t, err, &seatErr)

	// Only the seat the rival holds is reported, not the whole request.
	require.Len(t, seatErr.Seats, 1)
	assert.Equal(t, "A1", seatErr.Seats[0].Label())
}

func TestCreateBooking_StorageConflictWinnerNotVisible(t *testing.T) {
	f := newReservationFixture(t, 3000)

	// Conflict with no visible rival: the error falls back to the full
	// requested set rather than claiming nothing conflicted.
	f.bookings.insertHook = func(*entity.Booking) error {
		return repository.ErrConflict
	}

	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), f.bookingRequest(f.seatA1, f.seatA2))
	var seatErr *SeatUnavailableError
	require.ErrorAs(t, err, &seatErr)
	assert.Len(t, seatErr.Seats, 2)
}

func TestCreateBooking_ConcurrentSameSeat(t *testing.T) {
	f := newReservationFixture(t, 3000)

	const attempts = 16

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), f.bookingRequest(f.seatA1))
			results[i] = err
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		var seatErr *SeatUnavailableError
		assert.ErrorAs(t, err, &seatErr)
	}
	assert.Equal(t, 1, wins, "exactly one concurrent request may claim the seat")
}

func TestCreateBooking_LockWaitExpires(t *testing.T) {
	f := newReservationFixture(t, 20)

	holdInsert := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	f.bookings.insertHook = func(*entity.Booking) error {
		once.Do(func() {
			close(entered)
			<-holdInsert
		})
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), f.bookingRequest(f.seatA1))
		done <- err
	}()

	// First request is inside the reservation scope, stalled in Insert.
	<-entered

	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), f.bookingRequest(f.seatA2))
	assert.ErrorIs(t, err, ErrBusy)

	close(holdInsert)
	require.NoError(t, <-done)
}

func TestCancelBooking_Authorization(t *testing.T) {
	f := newReservationFixture(t, 3000)
	ctx := context.Background()

	owner := uuid.New().String()
	stranger := uuid.New().String()
	admin := uuid.New().String()

	booking, err := f.service.CreateBooking(ctx, owner, f.bookingRequest(f.seatA1))
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, stranger, entity.RoleCustomer, booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may cancel anyone's booking.
	_, err = f.service.CancelBooking(ctx, admin, entity.RoleAdmin, booking.ID)
	require.NoError(t, err)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	f := newReservationFixture(t, 3000)
	ctx := context.Background()

	owner := uuid.New().String()
	booking, err := f.service.CreateBooking(ctx, owner, f.bookingRequest(f.seatA1))
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, owner, entity.RoleCustomer, booking.ID)
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, owner, entity.RoleCustomer, booking.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newReservationFixture(t, 3000)

	_, err := f.service.CancelBooking(context.Background(), uuid.New().String(), entity.RoleCustomer, uuid.New().String())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBooking_Ownership(t *testing.T) {
	f := newReservationFixture(t, 3000)
	ctx := context.Background()

	owner := uuid.New().String()
	booking, err := f.service.CreateBooking(ctx, owner, f.bookingRequest(f.seatA1))
	require.NoError(t, err)

	got, err := f.service.GetBooking(ctx, owner, entity.RoleCustomer, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = f.service.GetBooking(ctx, uuid.New().String(), entity.RoleCustomer, booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err = f.service.GetBooking(ctx, uuid.New().String(), entity.RoleAdmin, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	f := newReservationFixture(t, 3000)
	ctx := context.Background()

	user := uuid.New().String()

	kept, err := f.service.CreateBooking(ctx, user, f.bookingRequest(f.seatA1))
	require.NoError(t, err)
	dropped, err := f.service.CreateBooking(ctx, user, f.bookingRequest(f.seatA2))
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, user, entity.RoleCustomer, dropped.ID)
	require.NoError(t, err)

	all, err := f.service.GetUserBookings(ctx, user, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed, err := f.service.GetUserBookings(ctx, user, string(entity.BookingStatusConfirmed))
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, kept.ID, confirmed[0].ID)

	cancelled, err := f.service.GetUserBookings(ctx, user, string(entity.BookingStatusCancelled))
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, dropped.ID, cancelled[0].ID)
}

func TestGetShowtimeBookings_IncludesCancelled(t *testing.T) {
	f := newReservationFixture(t, 3000)
	ctx := context.Background()

	user := uuid.New().String()
	booking, err := f.service.CreateBooking(ctx, user, f.bookingRequest(f.seatA1))
	require.NoError(t, err)
	_, err = f.service.CancelBooking(ctx, user, entity.RoleCustomer, booking.ID)
	require.NoError(t, err)

	bookings, err := f.service.GetShowtimeBookings(ctx, f.showtimeID.String())
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestAvailableSeats_ShowtimeNotFound(t *testing.T) {
	f := newReservationFixture(t, 3000)

	_, err := f.service.AvailableSeats(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

func TestCreateBooking_NoPartialCommitOnConflict(t *testing.T) {
	f := newReservationFixture(t, 3000)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, uuid.New().String(), f.bookingRequest(f.seatB1))
	require.NoError(t, err)

	_, err = f.service.CreateBooking(ctx, uuid.New().String(), f.bookingRequest(f.seatA1, f.seatB1))
	require.Error(t, err)

	// A1 must not have been claimed by the failed request.
	assert.ElementsMatch(t, []string{"A1", "A2"}, f.availableLabels(t))

	all, err := f.bookings.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateBooking_ValidationFailed(t *testing.T) {
	f := newReservationFixture(t, 3000)

	_, err := f.service.CreateBooking(context.Background(), uuid.New().String(), &request.CreateBookingRequest{
		ShowtimeID: f.showtimeID.String(),
		SeatIDs:    nil,
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBusy))
}
