package service

import (
	"context"
	"fmt"
	"time"

	"farmprice/internal/model"
	"farmprice/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sessionService implements SessionService.
type sessionService struct {
	sessionRepo repository.SessionRepository
	logger      zerolog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(sessionRepo repository.SessionRepository, logger zerolog.Logger) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		logger:      logger.With().Str("service", "session").Logger(),
	}
}

// Create starts a new session with default preferences and an empty liked set.
func (s *sessionService) Create(ctx context.Context) (*model.Session, error) {
	now := time.Now().UTC()
	session := &model.Session{
		ID:        uuid.New(),
		Language:  model.DefaultLanguage,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("failed to create session")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().Str("session_id", session.ID.String()).Msg("session created")

	return session, nil
}

// Get retrieves an existing session.
func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return loadSession(ctx, s.sessionRepo, id, s.logger)
}

// SetLanguage changes the session's interface language.
func (s *sessionService) SetLanguage(ctx context.Context, id uuid.UUID, language string) (*model.Session, error) {
	if !model.IsSupportedLanguage(language) {
		return nil, model.ErrUnsupportedLanguage
	}

	return updateSession(ctx, s.sessionRepo, id, s.logger, func(session *model.Session) {
		session.Language = language
	})
}

// CompleteOnboarding marks the onboarding screens as seen.
func (s *sessionService) CompleteOnboarding(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return updateSession(ctx, s.sessionRepo, id, s.logger, func(session *model.Session) {
		session.HasSeenOnboarding = true
	})
}

func loadSession(ctx context.Context, repo repository.SessionRepository, id uuid.UUID, logger zerolog.Logger) (*model.Session, error) {
	if id == uuid.Nil {
		return nil, model.ErrSessionRequired
	}

	session, err := repo.GetByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to get session")
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		logger.Debug().Str("session_id", id.String()).Msg("session not found")
		return nil, model.ErrSessionNotFound
	}

	return session, nil
}

// updateSession loads the session, applies mutate and persists the result.
func updateSession(
	ctx context.Context,
	repo repository.SessionRepository,
	id uuid.UUID,
	logger zerolog.Logger,
	mutate func(*model.Session),
) (*model.Session, error) {
	session, err := loadSession(ctx, repo, id, logger)
	if err != nil {
		return nil, err
	}

	mutate(session)
	session.UpdatedAt = time.Now().UTC()

	if err := repo.Update(ctx, session); err != nil {
		if err == model.ErrSessionNotFound {
			return nil, err
		}
		logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to update session")
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}
