package service

import (
	"context"
	"errors"

	"farmprice/internal/model"
	"farmprice/internal/repository"
	"farmprice/internal/upstream"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultLoginFailure        = "Invalid name or password"
	defaultRegistrationFailure = "Registration failed"
)

// accountService implements AccountService.
type accountService struct {
	api         upstream.PriceAPI
	sessionRepo repository.SessionRepository
	logger      zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(api upstream.PriceAPI, sessionRepo repository.SessionRepository, logger zerolog.Logger) AccountService {
	return &accountService{
		api:         api,
		sessionRepo: sessionRepo,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// Login authenticates against the price service.
func (s *accountService) Login(ctx context.Context, sessionID uuid.UUID, creds model.Credentials) (*model.Account, error) {
	account, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.Warn().Err(err).Str("name", creds.Name).Msg("login rejected")
		return nil, rejection(ctx, err, model.ErrCodeInvalidCredentials, defaultLoginFailure)
	}

	if sessionID != uuid.Nil {
		name := account.Name
		if name == "" {
			name = creds.Name
		}
		_, err := updateSession(ctx, s.sessionRepo, sessionID, s.logger, func(session *model.Session) {
			session.UserName = &name
		})
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("name", account.Name).Msg("user logged in")

	return account, nil
}

// Register creates an account at the price service.
func (s *accountService) Register(ctx context.Context, creds model.Credentials) error {
	if err := s.api.Register(ctx, creds); err != nil {
		s.logger.Warn().Err(err).Str("name", creds.Name).Msg("registration rejected")
		return rejection(ctx, err, model.ErrCodeRegistrationFailed, defaultRegistrationFailure)
	}

	s.logger.Info().Str("name", creds.Name).Msg("user registered")
	return nil
}

// Logout forgets the user name stored on the session.
func (s *accountService) Logout(ctx context.Context, sessionID uuid.UUID) (*model.Session, error) {
	return updateSession(ctx, s.sessionRepo, sessionID, s.logger, func(session *model.Session) {
		session.UserName = nil
	})
}

// rejection surfaces the price service's own message for 4xx answers and
// reports anything else as the service being unavailable.
func rejection(ctx context.Context, err error, code, fallback string) error {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
		msg := statusErr.Message
		if msg == "" {
			msg = fallback
		}
		return model.NewDomainError(code, msg)
	}
	return upstreamError(ctx, err)
}
