package entity

import "github.com/google/uuid"

type Screen struct {
	Base
	TheaterID uuid.UUID `db:"theater_id"`
	Name      string    `db:"name"`
}
