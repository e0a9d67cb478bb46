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

type ShowtimeService interface {
	GetShowtime(ctx context.Context, id string) (*response.ShowtimeResponse, error)
	ListShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error)
	ListShowtimesByMovie(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)
	ListShowtimesByScreen(ctx context.Context, screenID string) ([]response.ShowtimeResponse, error)
	ListShowtimesByDateRange(ctx context.Context, from, to time.Time) ([]response.ShowtimeResponse, error)
	ListUpcomingByMovie(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)

	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id string) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtime(ctx context.Context, id string) (*response.ShowtimeResponse, error) {
	showtimeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", id, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) ListShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) ListShowtimesByMovie(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list showtimes by movie: %w", err)
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) ListShowtimesByScreen(ctx context.Context, screenID string) ([]response.ShowtimeResponse, error) {
	id, err := uuid.Parse(screenID)
	if err != nil {
		return nil, fmt.Errorf("invalid screen ID format %s: %w", screenID, err)
	}

	showtimes, err := s.repo.Showtime.FindByScreenID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list showtimes by screen: %w", err)
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) ListShowtimesByDateRange(ctx context.Context, from, to time.Time) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list showtimes by date range: %w", err)
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) ListUpcomingByMovie(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	showtimes, err := s.repo.Showtime.FindUpcomingByMovie(ctx, id, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming showtimes: %w", err)
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Overlapping showtimes on the same screen are not rejected here.
	// TODO: decide whether the registry should enforce non-overlap per screen.
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidSchedule
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	screenID, err := uuid.Parse(req.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("invalid screen ID format %s: %w", req.ScreenID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	screen, err := s.repo.Screen.FindByID(ctx, screenID)
	if err != nil {
		return nil, fmt.Errorf("find screen: %w", err)
	}
	if screen == nil {
		return nil, ErrScreenNotFound
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		ScreenID:  screenID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		s.log.Error("Failed to create showtime", zap.Error(err))
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("screen_id", req.ScreenID),
		zap.Time("start_time", req.StartTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, id string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidSchedule
	}

	showtimeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", id, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	screenID, err := uuid.Parse(req.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("invalid screen ID format %s: %w", req.ScreenID, err)
	}

	showtime.MovieID = movieID
	showtime.ScreenID = screenID
	showtime.StartTime = req.StartTime
	showtime.EndTime = req.EndTime
	showtime.UpdatedAt = time.Now()

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		s.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", id),
		)
		return nil, fmt.Errorf("update showtime %s: %w", id, err)
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id string) error {
	showtimeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid showtime ID format %s: %w", id, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return ErrShowtimeNotFound
	}

	if err := s.repo.Showtime.Delete(ctx, showtimeID); err != nil {
		s.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id),
		)
		return fmt.Errorf("delete showtime %s: %w", id, err)
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", id))
	return nil
}
