package request

type CreateTheaterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Location string `json:"location" validate:"max=255"`
}

type UpdateTheaterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Location string `json:"location" validate:"max=255"`
}

// SeatRowRequest describes one row of the seat layout, e.g. {"row": "A", "count": 10}.
type SeatRowRequest struct {
	Row   string `json:"row" validate:"required,max=4"`
	Count int    `json:"count" validate:"required,min=1,max=100"`
}

type CreateScreenRequest struct {
	Name string           `json:"name" validate:"required,max=100"`
	Rows []SeatRowRequest `json:"rows" validate:"required,min=1,dive"`
}
