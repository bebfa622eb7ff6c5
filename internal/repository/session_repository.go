package repository

import (
	"context"
	"errors"
	"fmt"

	"farmprice/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// sessionRepository implements the SessionRepository interface using PostgreSQL.
type sessionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSessionRepository creates a new PostgreSQL-backed session repository.
func NewSessionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "session").Logger(),
	}
}

// Create inserts a new session.
func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (id, language, has_seen_onboarding, user_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Language,
		session.HasSeenOnboarding,
		session.UserName,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("session_id", session.ID.String()).
			Msg("failed to create session")
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug().
		Str("session_id", session.ID.String()).
		Msg("session created successfully")

	return nil
}

// GetByID retrieves a session by its ID.
func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	query := `
		SELECT id, language, has_seen_onboarding, user_name, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var s model.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Language,
		&s.HasSeenOnboarding,
		&s.UserName,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("session_id", id.String()).Msg("session not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to query session")
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return &s, nil
}

// Update persists language, onboarding flag, user name and updated_at.
func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	query := `
		UPDATE sessions
		SET language = $2, has_seen_onboarding = $3, user_name = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Language,
		session.HasSeenOnboarding,
		session.UserName,
		session.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("session_id", session.ID.String()).
			Msg("failed to update session")
		return fmt.Errorf("failed to update session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("session_id", session.ID.String()).Msg("session to update does not exist")
		return model.ErrSessionNotFound
	}

	return nil
}
