package request

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	DurationMin int    `json:"duration_min" validate:"required,min=1"`
	Genre       string `json:"genre" validate:"max=100"`
	PosterURL   string `json:"poster_url" validate:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	DurationMin int    `json:"duration_min" validate:"required,min=1"`
	Genre       string `json:"genre" validate:"max=100"`
	PosterURL   string `json:"poster_url" validate:"omitempty,url"`
}
