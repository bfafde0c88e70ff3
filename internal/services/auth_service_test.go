package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchbinder/content-service/internal/auth"
	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthService(t *testing.T) (AuthService, *mockRepository, *auth.TokenService) {
	t.Helper()

	repo := newMockRepository()
	tokens := auth.NewTokenService("test-secret")

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	require.NoError(t, repo.Admin().Create(context.Background(), &models.Admin{
		Email:        "admin@batchbinder.com",
		PasswordHash: hash,
	}))

	return NewAuthService(repo, tokens, testLogger(), validator.New()), repo, tokens
}

func TestLoginSuccess(t *testing.T) {
	svc, repo, tokens := newTestAuthService(t)

	token, err := svc.Login(context.Background(), &validator.LoginRequest{
		Email:    "admin@batchbinder.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, status := tokens.Verify(token)
	assert.Equal(t, auth.TokenValid, status)
	assert.Equal(t, "admin@batchbinder.com", claims.Email)

	admin, err := repo.Admin().GetByEmail(context.Background(), "admin@batchbinder.com")
	require.NoError(t, err)
	assert.NotNil(t, admin.LastLogin, "successful login should stamp last_login")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	token, err := svc.Login(context.Background(), &validator.LoginRequest{
		Email:    "admin@batchbinder.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	// Same error as a wrong password so emails cannot be enumerated
	_, err := svc.Login(context.Background(), &validator.LoginRequest{
		Email:    "nobody@batchbinder.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	tests := []struct {
		name    string
		req     *validator.LoginRequest
		message string
	}{
		{"missing email", &validator.LoginRequest{Password: "x"}, "Email is required"},
		{"missing password", &validator.LoginRequest{Email: "admin@batchbinder.com"}, "Password is required"},
		{"bad email format", &validator.LoginRequest{Email: "not-an-email", Password: "x"}, "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
