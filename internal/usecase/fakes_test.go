package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. They keep real state behind a mutex so
// concurrency tests exercise the service's locking rather than mock
// bookkeeping.

type fakeShowtimeRepo struct {
	mu        sync.Mutex
	showtimes map[uuid.UUID]*entity.Showtime
}

func newFakeShowtimeRepo() *fakeShowtimeRepo {
	return &fakeShowtimeRepo{showtimes: make(map[uuid.UUID]*entity.Showtime)}
}

func (f *fakeShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showtimes[showtime.ID] = showtime
	return nil
}

func (f *fakeShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showtimes[id], nil
}

func (f *fakeShowtimeRepo) FindAll(ctx context.Context) ([]*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Showtime, 0, len(f.showtimes))
	for _, st := range f.showtimes {
		out = append(out, st)
	}
	return out, nil
}

func (f *fakeShowtimeRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range f.showtimes {
		if st.MovieID == movieID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeShowtimeRepo) FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range f.showtimes {
		if st.ScreenID == screenID {
			out = append(out, st)
		}
	}
	return out, nil
}

// Range is half-open, matching the SQL: start_time >= from AND start_time < to.
func (f *fakeShowtimeRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range f.showtimes {
		if !st.StartTime.Before(from) && st.StartTime.Before(to) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeShowtimeRepo) FindUpcomingByMovie(ctx context.Context, movieID uuid.UUID, after time.Time) ([]*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range f.showtimes {
		if st.MovieID == movieID && st.StartTime.After(after) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeShowtimeRepo) Update(ctx context.Context, showtime *entity.Showtime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showtimes[showtime.ID] = showtime
	return nil
}

func (f *fakeShowtimeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.showtimes, id)
	return nil
}

type fakeSeatRepo struct {
	mu    sync.Mutex
	seats map[uuid.UUID]*entity.Seat
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{seats: make(map[uuid.UUID]*entity.Seat)}
}

func (f *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seat := range seats {
		f.seats[seat.ID] = seat
	}
	return nil
}

func (f *fakeSeatRepo) FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Seat
	for _, seat := range f.seats {
		if seat.ScreenID == screenID {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (f *fakeSeatRepo) FindByIDs(ctx context.Context, screenID uuid.UUID, ids []uuid.UUID) ([]*entity.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Seat
	for _, id := range ids {
		seat, ok := f.seats[id]
		if ok && seat.ScreenID == screenID {
			out = append(out, seat)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	// insertHook runs inside Insert before the write, outside the mutex.
	// Tests use it to stall a booking mid-flight or to force errors.
	insertHook func(booking *entity.Booking) error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Insert(ctx context.Context, booking *entity.Booking) error {
	if f.insertHook != nil {
		if err := f.insertHook(booking); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Mirror the partial unique index on booking_seats.
	for _, existing := range f.bookings {
		if existing.ShowtimeID != booking.ShowtimeID || !existing.Status.Active() {
			continue
		}
		for _, held := range existing.SeatIDs {
			for _, requested := range booking.SeatIDs {
				if held == requested {
					return repository.ErrConflict
				}
			}
		}
	}

	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Booking, 0, len(f.bookings))
	for _, booking := range f.bookings {
		clone := *booking
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByShowtime(ctx context.Context, showtimeID uuid.UUID, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range f.bookings {
		if booking.ShowtimeID != showtimeID {
			continue
		}
		for _, status := range statuses {
			if booking.Status == status {
				clone := *booking
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			clone := *booking
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.BookingStatus) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID && booking.Status == status {
			clone := *booking
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrConflict
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

type fakeMovieRepo struct {
	mu     sync.Mutex
	movies map[uuid.UUID]*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (f *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Movie, 0, len(f.movies))
	for _, movie := range f.movies {
		out = append(out, movie)
	}
	return out, nil
}

func (f *fakeMovieRepo) Search(ctx context.Context, title, genre string) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Movie
	for _, movie := range f.movies {
		if title != "" && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(title)) {
			continue
		}
		if genre != "" && !strings.EqualFold(movie.Genre, genre) {
			continue
		}
		out = append(out, movie)
	}
	return out, nil
}

func (f *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.movies, id)
	return nil
}

type fakeTheaterRepo struct {
	mu       sync.Mutex
	theaters map[uuid.UUID]*entity.Theater
}

func newFakeTheaterRepo() *fakeTheaterRepo {
	return &fakeTheaterRepo{theaters: make(map[uuid.UUID]*entity.Theater)}
}

func (f *fakeTheaterRepo) Create(ctx context.Context, theater *entity.Theater) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.theaters[theater.ID] = theater
	return nil
}

func (f *fakeTheaterRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theaters[id], nil
}

func (f *fakeTheaterRepo) FindAll(ctx context.Context) ([]*entity.Theater, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Theater, 0, len(f.theaters))
	for _, theater := range f.theaters {
		out = append(out, theater)
	}
	return out, nil
}

func (f *fakeTheaterRepo) Update(ctx context.Context, theater *entity.Theater) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.theaters[theater.ID] = theater
	return nil
}

func (f *fakeTheaterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.theaters, id)
	return nil
}

type fakeScreenRepo struct {
	mu      sync.Mutex
	screens map[uuid.UUID]*entity.Screen
}

func newFakeScreenRepo() *fakeScreenRepo {
	return &fakeScreenRepo{screens: make(map[uuid.UUID]*entity.Screen)}
}

func (f *fakeScreenRepo) Create(ctx context.Context, screen *entity.Screen) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screens[screen.ID] = screen
	return nil
}

func (f *fakeScreenRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screens[id], nil
}

func (f *fakeScreenRepo) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Screen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Screen
	for _, screen := range f.screens {
		if screen.TheaterID == theaterID {
			out = append(out, screen)
		}
	}
	return out, nil
}

func (f *fakeScreenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.screens, id)
	return nil
}

// newFakeRepository wires every fake into the aggregate the services expect.
func newFakeRepository() (*repository.Repository, *fakeBookingRepo, *fakeSeatRepo, *fakeShowtimeRepo) {
	bookings := newFakeBookingRepo()
	seats := newFakeSeatRepo()
	showtimes := newFakeShowtimeRepo()

	repo := &repository.Repository{
		User:     newFakeUserRepo(),
		Movie:    newFakeMovieRepo(),
		Theater:  newFakeTheaterRepo(),
		Screen:   newFakeScreenRepo(),
		Seat:     seats,
		Showtime: showtimes,
		Booking:  bookings,
	}
	return repo, bookings, seats, showtimes
}
