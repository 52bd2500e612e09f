package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/config"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/pkg/auth"
)

// AuthService authenticates the single admin account
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	adminEmail        string
	adminPasswordHash string
	jwtService        *auth.JWTService
	logger            zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(cfg *config.Config, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		adminEmail:        cfg.Admin.Email,
		adminPasswordHash: cfg.Admin.PasswordHash,
		jwtService:        jwtService,
		logger:            logger,
	}
}

// Login checks the credentials against the configured admin account and
// issues an access token. The email comparison is case-insensitive; the
// password is compared against the stored bcrypt hash.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !strings.EqualFold(req.Email, s.adminEmail) {
		// Run the hash comparison anyway so unknown emails cost the same
		// as wrong passwords.
		_ = bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password))
		s.logger.Warn().Str("email", req.Email).Msg("Login attempt with unknown email")
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(s.adminEmail)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", s.adminEmail).Msg("Admin logged in")
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtService.ExpiresIn().Seconds()),
	}, nil
}
