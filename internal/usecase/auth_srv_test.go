package usecase

import (
	"context"
	"testing"

	"github.com/vishnup-05/movie-booking-app/internal/data/entity"
	"github.com/vishnup-05/movie-booking-app/internal/dto/request"
	"github.com/vishnup-05/movie-booking-app/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()

	repo, _, _, _ := newFakeRepository()
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
	return NewAuthService(repo, config, zap.NewNop())
}

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username: "moviegoer",
		Email:    "moviegoer@example.com",
		Password: "correct-horse",
	}
}

func TestRegister(t *testing.T) {
	service := newAuthService(t)

	user, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "moviegoer", user.Username)
	assert.Equal(t, entity.RoleCustomer, user.Role)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "other@example.com"
	_, err = service.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "othername"
	_, err = service.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_WeakPassword(t *testing.T) {
	service := newAuthService(t)

	req := registerRequest()
	req.Password = "short"
	_, err := service.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	token, err := service.Login(ctx, &request.LoginRequest{
		Username: "moviegoer",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	claims, err := utils.ParseToken("test-secret", token.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Login(ctx, &request.LoginRequest{
		Username: "moviegoer",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	service := newAuthService(t)

	_, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
