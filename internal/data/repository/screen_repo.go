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

type ScreenRepository interface {
	Create(ctx context.Context, screen *entity.Screen) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error)
	FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Screen, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type screenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreenRepository(db database.PgxIface, log *zap.Logger) ScreenRepository {
	return &screenRepository{
		db:  db,
		log: log.With(zap.String("repository", "screen")),
	}
}

func (r *screenRepository) Create(ctx context.Context, screen *entity.Screen) error {
	query := `
		INSERT INTO screens (id, theater_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		screen.ID,
		screen.TheaterID,
		screen.Name,
		screen.CreatedAt,
		screen.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screen",
			zap.Error(err),
			zap.String("theater_id", screen.TheaterID.String()),
			zap.String("name", screen.Name),
		)
		return fmt.Errorf("create screen %s: %w", screen.Name, err)
	}

	return nil
}

func (r *screenRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	query := `
		SELECT id, theater_id, name, created_at, updated_at
		FROM screens
		WHERE id = $1
	`

	var screen entity.Screen
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screen.ID,
		&screen.TheaterID,
		&screen.Name,
		&screen.CreatedAt,
		&screen.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screen by ID",
			zap.Error(err),
			zap.String("screen_id", id.String()),
		)
		return nil, fmt.Errorf("find screen by ID %s: %w", id.String(), err)
	}

	return &screen, nil
}

func (r *screenRepository) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Screen, error) {
	query := `
		SELECT id, theater_id, name, created_at, updated_at
		FROM screens
		WHERE theater_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, theaterID)
	if err != nil {
		r.log.Error("Failed to find screens by theater ID",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return nil, fmt.Errorf("find screens by theater ID %s: %w", theaterID.String(), err)
	}
	defer rows.Close()

	var screens []*entity.Screen
	for rows.Next() {
		var screen entity.Screen
		err := rows.Scan(
			&screen.ID,
			&screen.TheaterID,
			&screen.Name,
			&screen.CreatedAt,
			&screen.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan screen row", zap.Error(err))
			return nil, fmt.Errorf("scan screen row: %w", err)
		}
		screens = append(screens, &screen)
	}

	return screens, nil
}

func (r *screenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screens WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screen",
			zap.Error(err),
			zap.String("screen_id", id.String()),
		)
		return fmt.Errorf("delete screen %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screen %s not found", id.String())
	}

	return nil
}
