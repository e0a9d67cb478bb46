package response

import (
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DurationMin int       `json:"duration_min"`
	Genre       string    `json:"genre,omitempty"`
	PosterURL   string    `json:"poster_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TheaterResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

type ScreenResponse struct {
	ID        string `json:"id"`
	TheaterID string `json:"theater_id"`
	Name      string `json:"name"`
	SeatCount int    `json:"seat_count,omitempty"`
}

type SeatResponse struct {
	ID     string `json:"id"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Label  string `json:"label"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		DurationMin: movie.DurationMin,
		Genre:       movie.Genre,
		PosterURL:   movie.PosterURL,
		CreatedAt:   movie.CreatedAt,
	}
}

func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:       theater.ID.String(),
		Name:     theater.Name,
		Location: theater.Location,
	}
}

func ScreenToResponse(screen *entity.Screen, seatCount int) ScreenResponse {
	return ScreenResponse{
		ID:        screen.ID.String(),
		TheaterID: screen.TheaterID.String(),
		Name:      screen.Name,
		SeatCount: seatCount,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:     seat.ID.String(),
		Row:    seat.Row,
		Number: seat.Number,
		Label:  seat.Label(),
	}
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	out := make([]SeatResponse, len(seats))
	for i, seat := range seats {
		out[i] = SeatToResponse(seat)
	}
	return out
}
