package entity

type Movie struct {
	Base
	Title       string `db:"title"`
	Description string `db:"description"`
	DurationMin int    `db:"duration_min"`
	Genre       string `db:"genre"`
	PosterURL   string `db:"poster_url"`
}
