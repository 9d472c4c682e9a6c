package identity

import (
	"context"
	"errors"

	"github.com/gympos/backend/internal/domain/identity"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles operator login and the supervisor credential
// check the shift escalation gate relies on.
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	clock    shared.Clock
	logger   *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, clock shared.Clock, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		clock:    clock,
		logger:   logger,
	}
}

// LoginResponse carries the issued token and user display info
type LoginResponse struct {
	Token       *auth.Token `json:"token"`
	UserID      string      `json:"user_id"`
	DisplayName string      `json:"display_name"`
	Role        string      `json:"role"`
}

// Login authenticates a user by username and password and issues an
// access token. Invalid credentials and unknown users both come back
// as ErrUnauthorized so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active || !user.CheckPassword(password) {
		s.logger.Warn("failed login attempt", zap.String("username", username))
		return nil, shared.ErrUnauthorized
	}

	token, err := s.jwt.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.RecordLogin(s.clock.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:       token,
		UserID:      user.ID.String(),
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	}, nil
}

// VerifySupervisor checks supervisor credentials for a close override.
// It reports acceptance and the supervisor's display name; it never
// issues a token. Implements the till workflow's Authorizer.
func (s *AuthService) VerifySupervisor(ctx context.Context, username, password string) (string, bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if !user.CanAuthorizeOverride() || !user.CheckPassword(password) {
		s.logger.Warn("rejected override attempt", zap.String("username", username))
		return "", false, nil
	}

	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	return name, true, nil
}
