package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bookline/reservation-service/internal/auth"
	"github.com/bookline/reservation-service/internal/config"
	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/repository"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// AuthService is the session gate: it authenticates staff-role directory
// entries and issues opaque session tokens.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// LoginResult carries the issued token and the authenticated identity.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the token capability for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a staff member. Client-role entries may never
// authenticate, regardless of credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.Role.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	if !user.Active {
		return nil, apperrors.NewForbidden("account disabled")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Validate reports whether the token is a currently valid session token.
func (s *AuthService) Validate(token string) bool {
	_, err := s.tokenMgr.ParseToken(token)
	return err == nil
}
