package repository

import (
	"context"
	"fmt"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Insert writes the booking and its seat links in one transaction.
	// Returns ErrConflict when another active booking already claims one of
	// the seats for the same showtime (partial unique index on booking_seats).
	Insert(ctx context.Context, booking *entity.Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindByShowtime(ctx context.Context, showtimeID uuid.UUID, statuses []entity.BookingStatus) ([]*entity.Booking, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.BookingStatus) ([]*entity.Booking, error)

	// UpdateStatus persists a status change. Moving to cancelled also clears
	// the active flag on the seat links so the seats drop out of the
	// uniqueness scope and become claimable again.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Insert(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking insert: %w", err)
	}
	defer tx.Rollback(ctx)

	bookingQuery := `
		INSERT INTO bookings (id, user_id, showtime_id, booking_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, bookingQuery,
		booking.ID,
		booking.UserID,
		booking.ShowtimeID,
		booking.BookingTime,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("insert booking %s: %w", booking.ID.String(), err)
	}

	seatQuery := `
		INSERT INTO booking_seats (booking_id, showtime_id, seat_id, active)
		VALUES ($1, $2, $3, TRUE)
	`

	for _, seatID := range booking.SeatIDs {
		if _, err := tx.Exec(ctx, seatQuery, booking.ID, booking.ShowtimeID, seatID); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert booking seat %s: %w", seatID.String(), ErrConflict)
			}
			r.log.Error("Failed to insert booking seat",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("seat_id", seatID.String()),
			)
			return fmt.Errorf("insert booking seat %s: %w", seatID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("commit booking insert: %w", ErrConflict)
		}
		return fmt.Errorf("commit booking insert: %w", err)
	}

	return nil
}

const bookingSelect = `
	SELECT b.id, b.user_id, b.showtime_id, b.booking_time, b.status, b.created_at, b.updated_at,
	       COALESCE(array_agg(bs.seat_id) FILTER (WHERE bs.seat_id IS NOT NULL), '{}')
	FROM bookings b
	LEFT JOIN booking_seats bs ON bs.booking_id = b.id
`

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := bookingSelect + `WHERE b.id = $1 GROUP BY b.id`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.BookingTime,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.SeatIDs,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := bookingSelect + `GROUP BY b.id ORDER BY b.created_at DESC`
	return r.findMany(ctx, query)
}

func (r *bookingRepository) FindByShowtime(ctx context.Context, showtimeID uuid.UUID, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	// Single statement so the held-seat union reflects one MVCC snapshot,
	// never a torn read across bookings.
	query := bookingSelect + `WHERE b.showtime_id = $1 AND b.status = ANY($2) GROUP BY b.id ORDER BY b.created_at`

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	return r.findMany(ctx, query, showtimeID, values)
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := bookingSelect + `WHERE b.user_id = $1 GROUP BY b.id ORDER BY b.created_at DESC`
	return r.findMany(ctx, query, userID)
}

func (r *bookingRepository) FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := bookingSelect + `WHERE b.user_id = $1 AND b.status = $2 GROUP BY b.id ORDER BY b.created_at DESC`
	return r.findMany(ctx, query, userID, status)
}

func (r *bookingRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ShowtimeID,
			&booking.BookingTime,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.SeatIDs,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	if status == entity.BookingStatusCancelled {
		if _, err := tx.Exec(ctx, `UPDATE booking_seats SET active = FALSE WHERE booking_id = $1`, id); err != nil {
			r.log.Error("Failed to release booking seats",
				zap.Error(err),
				zap.String("booking_id", id.String()),
			)
			return fmt.Errorf("release seats of booking %s: %w", id.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit status update: %w", err)
	}

	return nil
}
