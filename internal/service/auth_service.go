package service

import (
	"context"
	"fmt"
	"strings"

	"daurulang/internal/authclient"
	"daurulang/internal/model"
	"daurulang/internal/session"
	"daurulang/internal/validation"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	client   authclient.Client
	sessions session.Provider
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(client authclient.Client, sessions session.Provider, logger zerolog.Logger) AuthService {
	return &authService{
		client:   client,
		sessions: sessions,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies credentials with the authentication service and opens a session.
func (s *authService) Login(ctx context.Context, creds model.Credentials) (*model.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validation.Login(creds); err != nil {
		return nil, err
	}

	user, err := s.client.Login(ctx, creds)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login failed")
		return nil, fmt.Errorf("login failed: %w", err)
	}

	sess := s.sessions.Create(*user)
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &sess, nil
}

// Register creates an account with the authentication service.
func (s *authService) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := validation.Register(reg); err != nil {
		return nil, err
	}

	user, err := s.client.Register(ctx, reg)
	if err != nil {
		s.logger.Warn().Err(err).Msg("registration failed")
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// ForgotPassword requests a password reset email.
func (s *authService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.ForgotPassword(req); err != nil {
		return "", err
	}

	msg, err := s.client.ForgotPassword(ctx, req.Email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("password reset request failed")
		return "", fmt.Errorf("password reset failed: %w", err)
	}
	return msg, nil
}

// Logout ends the session identified by token.
func (s *authService) Logout(token string) {
	s.sessions.Revoke(token)
}
