package request

import "time"

type CreateShowtimeRequest struct {
	MovieID   string    `json:"movie_id" validate:"required,uuid4"`
	ScreenID  string    `json:"screen_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type UpdateShowtimeRequest struct {
	MovieID   string    `json:"movie_id" validate:"required,uuid4"`
	ScreenID  string    `json:"screen_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}
