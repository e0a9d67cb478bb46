package response

import (
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
)

type ShowtimeResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	ScreenID  string    `json:"screen_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID.String(),
		MovieID:   showtime.MovieID.String(),
		ScreenID:  showtime.ScreenID.String(),
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
	}
}

func ShowtimesToResponse(showtimes []*entity.Showtime) []ShowtimeResponse {
	out := make([]ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		out[i] = ShowtimeToResponse(showtime)
	}
	return out
}
