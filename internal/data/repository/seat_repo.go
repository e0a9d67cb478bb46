package repository

import (
	"context"
	"fmt"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Seat, error)

	// FindByIDs returns only the requested seats that belong to the given
	// screen. Callers compare the result count against the requested count
	// to detect ids that are unknown or on another screen.
	FindByIDs(ctx context.Context, screenID uuid.UUID, ids []uuid.UUID) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seat batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO seats (id, screen_id, seat_row, seat_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, seat := range seats {
		if _, err := tx.Exec(ctx, query,
			seat.ID,
			seat.ScreenID,
			seat.Row,
			seat.Number,
			seat.CreatedAt,
		); err != nil {
			r.log.Error("Failed to create seat",
				zap.Error(err),
				zap.String("screen_id", seat.ScreenID.String()),
				zap.String("seat", seat.Label()),
			)
			return fmt.Errorf("create seat %s: %w", seat.Label(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seat batch: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByScreenID(ctx context.Context, screenID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, screen_id, seat_row, seat_number, created_at
		FROM seats
		WHERE screen_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, screenID)
	if err != nil {
		r.log.Error("Failed to find seats by screen ID",
			zap.Error(err),
			zap.String("screen_id", screenID.String()),
		)
		return nil, fmt.Errorf("find seats by screen ID %s: %w", screenID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.ScreenID,
			&seat.Row,
			&seat.Number,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, screenID uuid.UUID, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, screen_id, seat_row, seat_number, created_at
		FROM seats
		WHERE screen_id = $1 AND id = ANY($2)
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, screenID, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.String("screen_id", screenID.String()),
			zap.Int("requested", len(ids)),
		)
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.ScreenID,
			&seat.Row,
			&seat.Number,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}
