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

func newTheaterService(t *testing.T) TheaterService {
	t.Helper()
	repo, _, _, _ := newFakeRepository()
	return NewTheaterService(repo, zap.NewNop())
}

func TestCreateScreen_BuildsSeatLayout(t *testing.T) {
	service := newTheaterService(t)
	ctx := context.Background()

	theater, err := service.CreateTheater(ctx, &request.CreateTheaterRequest{Name: "Grand Cinema"})
	require.NoError(t, err)

	screen, err := service.CreateScreen(ctx, theater.ID, &request.CreateScreenRequest{
		Name: "Screen 1",
		Rows: []request.SeatRowRequest{
			{Row: "A", Count: 2},
			{Row: "B", Count: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, screen.SeatCount)

	seats, err := service.ListScreenSeats(ctx, screen.ID)
	require.NoError(t, err)
	require.Len(t, seats, 5)

	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat.Label)
	}
	assert.ElementsMatch(t, []string{"A1", "A2", "B1", "B2", "B3"}, labels)
}

func TestCreateScreen_TheaterNotFound(t *testing.T) {
	service := newTheaterService(t)

	_, err := service.CreateScreen(context.Background(), uuid.New().String(), &request.CreateScreenRequest{
		Name: "Screen 1",
		Rows: []request.SeatRowRequest{{Row: "A", Count: 1}},
	})
	assert.ErrorIs(t, err, ErrTheaterNotFound)
}

func TestListScreens(t *testing.T) {
	service := newTheaterService(t)
	ctx := context.Background()

	theater, err := service.CreateTheater(ctx, &request.CreateTheaterRequest{Name: "Grand Cinema"})
	require.NoError(t, err)

	for _, name := range []string{"Screen 1", "Screen 2"} {
		_, err := service.CreateScreen(ctx, theater.ID, &request.CreateScreenRequest{
			Name: name,
			Rows: []request.SeatRowRequest{{Row: "A", Count: 4}},
		})
		require.NoError(t, err)
	}

	screens, err := service.ListScreens(ctx, theater.ID)
	require.NoError(t, err)
	assert.Len(t, screens, 2)
}

func TestDeleteTheater_NotFound(t *testing.T) {
	service := newTheaterService(t)

	err := service.DeleteTheater(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrTheaterNotFound)
}
