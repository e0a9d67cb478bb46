package usecase

import (
	"context"
	"testing"

	"github.com/vishnup-05/movie-booking-app/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMovieService(t *testing.T) MovieService {
	t.Helper()
	repo, _, _, _ := newFakeRepository()
	return NewMovieService(repo, zap.NewNop())
}

func TestMovieCRUD(t *testing.T) {
	service := newMovieService(t)
	ctx := context.Background()

	created, err := service.CreateMovie(ctx, &request.CreateMovieRequest{
		Title:       "Alien",
		DurationMin: 117,
		Genre:       "horror",
	})
	require.NoError(t, err)

	got, err := service.GetMovie(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alien", got.Title)

	updated, err := service.UpdateMovie(ctx, created.ID, &request.UpdateMovieRequest{
		Title:       "Alien (Director's Cut)",
		DurationMin: 116,
		Genre:       "horror",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alien (Director's Cut)", updated.Title)

	require.NoError(t, service.DeleteMovie(ctx, created.ID))
	_, err = service.GetMovie(ctx, created.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestSearchMovies(t *testing.T) {
	service := newMovieService(t)
	ctx := context.Background()

	seed := []request.CreateMovieRequest{
		{Title: "Alien", DurationMin: 117, Genre: "horror"},
		{Title: "Aliens", DurationMin: 137, Genre: "horror"},
		{Title: "Amelie", DurationMin: 122, Genre: "comedy"},
	}
	for i := range seed {
		_, err := service.CreateMovie(ctx, &seed[i])
		require.NoError(t, err)
	}

	byTitle, err := service.SearchMovies(ctx, "alien", "")
	require.NoError(t, err)
	assert.Len(t, byTitle, 2)

	byGenre, err := service.SearchMovies(ctx, "", "comedy")
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Amelie", byGenre[0].Title)

	both, err := service.SearchMovies(ctx, "aliens", "horror")
	require.NoError(t, err)
	assert.Len(t, both, 1)
}

func TestGetMovie_NotFound(t *testing.T) {
	service := newMovieService(t)

	_, err := service.GetMovie(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
