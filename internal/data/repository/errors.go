package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConflict is returned when an insert or update violates a uniqueness
// guarantee, e.g. the partial unique index on booking_seats that rejects a
// second active claim on the same (showtime, seat) pair.
var ErrConflict = errors.New("unique constraint violation")

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
