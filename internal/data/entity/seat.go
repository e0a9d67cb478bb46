package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Seat belongs to exactly one screen and is immutable after creation.
// There is no back-reference to a booking; who currently holds a seat
// is derived from the booking ledger.
type Seat struct {
	BaseSimple
	ScreenID uuid.UUID `db:"screen_id"`
	Row      string    `db:"seat_row"` // A, B, C, etc.
	Number   int       `db:"seat_number"`
}

// Label returns the human-readable seat name, e.g. "A1".
func (s *Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}
