package services

import (
	"context"
	"log/slog"

	"github.com/batchbinder/content-service/internal/auth"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenService, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (string, error) {
	if errs := s.validator.Struct(req); errs != nil {
		return "", errs
	}

	admin, err := s.repo.Admin().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same answer as a wrong password, to prevent email enumeration
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		return "", ErrInvalidCredentials
	}

	token := s.tokens.Issue(admin.Email)

	if err := s.repo.Admin().UpdateLastLogin(ctx, admin.Email); err != nil {
		// The login itself succeeded; a failed stamp is not worth a 500
		s.logger.Warn("failed to update last login", "email", admin.Email, "error", err)
	}

	s.logger.Info("admin logged in", "email", admin.Email)
	return token, nil
}
