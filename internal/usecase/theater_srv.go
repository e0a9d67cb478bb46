package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/internal/data/repository"
	"github.com/vishnup-05/movie-booking-app/internal/dto/request"
	"github.com/vishnup-05/movie-booking-app/internal/dto/response"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TheaterService interface {
	GetTheater(ctx context.Context, id string) (*response.TheaterResponse, error)
	ListTheaters(ctx context.Context) ([]response.TheaterResponse, error)
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error)
	UpdateTheater(ctx context.Context, id string, req *request.UpdateTheaterRequest) (*response.TheaterResponse, error)
	DeleteTheater(ctx context.Context, id string) error

	// CreateScreen creates a screen together with its fixed seat layout.
	// Seats are immutable afterwards; there is no seat add/remove endpoint.
	CreateScreen(ctx context.Context, theaterID string, req *request.CreateScreenRequest) (*response.ScreenResponse, error)
	ListScreens(ctx context.Context, theaterID string) ([]response.ScreenResponse, error)
	ListScreenSeats(ctx context.Context, screenID string) ([]response.SeatResponse, error)
}

type theaterService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTheaterService(repo *repository.Repository, log *zap.Logger) TheaterService {
	return &theaterService{
		repo: repo,
		log:  log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) GetTheater(ctx context.Context, id string) (*response.TheaterResponse, error) {
	theaterID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", id, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, ErrTheaterNotFound
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) ListTheaters(ctx context.Context) ([]response.TheaterResponse, error) {
	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}

	out := make([]response.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		out[i] = response.TheaterToResponse(theater)
	}
	return out, nil
}

func (s *theaterService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Location: req.Location,
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		s.log.Error("Failed to create theater", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create theater: %w", err)
	}

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.String("name", theater.Name),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) UpdateTheater(ctx context.Context, id string, req *request.UpdateTheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	theaterID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", id, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, ErrTheaterNotFound
	}

	theater.Name = req.Name
	theater.Location = req.Location
	theater.UpdatedAt = time.Now()

	if err := s.repo.Theater.Update(ctx, theater); err != nil {
		s.log.Error("Failed to update theater", zap.Error(err), zap.String("theater_id", id))
		return nil, fmt.Errorf("update theater %s: %w", id, err)
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) DeleteTheater(ctx context.Context, id string) error {
	theaterID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid theater ID format %s: %w", id, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return ErrTheaterNotFound
	}

	if err := s.repo.Theater.Delete(ctx, theaterID); err != nil {
		s.log.Error("Failed to delete theater", zap.Error(err), zap.String("theater_id", id))
		return fmt.Errorf("delete theater %s: %w", id, err)
	}

	s.log.Info("Theater deleted", zap.String("theater_id", id))
	return nil
}

func (s *theaterService) CreateScreen(ctx context.Context, theaterID string, req *request.CreateScreenRequest) (*response.ScreenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screen validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, ErrTheaterNotFound
	}

	now := time.Now()
	screen := &entity.Screen{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TheaterID: id,
		Name:      req.Name,
	}

	if err := s.repo.Screen.Create(ctx, screen); err != nil {
		s.log.Error("Failed to create screen", zap.Error(err), zap.String("theater_id", theaterID))
		return nil, fmt.Errorf("create screen: %w", err)
	}

	var seats []*entity.Seat
	for _, row := range req.Rows {
		for number := 1; number <= row.Count; number++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				ScreenID: screen.ID,
				Row:      row.Row,
				Number:   number,
			})
		}
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		s.log.Error("Failed to create seat layout",
			zap.Error(err),
			zap.String("screen_id", screen.ID.String()),
		)
		return nil, fmt.Errorf("create seat layout: %w", err)
	}

	s.log.Info("Screen created",
		zap.String("screen_id", screen.ID.String()),
		zap.String("theater_id", theaterID),
		zap.Int("seat_count", len(seats)),
	)

	resp := response.ScreenToResponse(screen, len(seats))
	return &resp, nil
}

func (s *theaterService) ListScreens(ctx context.Context, theaterID string) ([]response.ScreenResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	screens, err := s.repo.Screen.FindByTheaterID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}

	out := make([]response.ScreenResponse, len(screens))
	for i, screen := range screens {
		seats, err := s.repo.Seat.FindByScreenID(ctx, screen.ID)
		if err != nil {
			return nil, fmt.Errorf("count screen seats: %w", err)
		}
		out[i] = response.ScreenToResponse(screen, len(seats))
	}
	return out, nil
}

func (s *theaterService) ListScreenSeats(ctx context.Context, screenID string) ([]response.SeatResponse, error) {
	id, err := uuid.Parse(screenID)
	if err != nil {
		return nil, fmt.Errorf("invalid screen ID format %s: %w", screenID, err)
	}

	screen, err := s.repo.Screen.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find screen: %w", err)
	}
	if screen == nil {
		return nil, ErrScreenNotFound
	}

	seats, err := s.repo.Seat.FindByScreenID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list screen seats: %w", err)
	}

	return response.SeatsToResponse(seats), nil
}
