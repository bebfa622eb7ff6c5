package repository

import (
	"context"

	"farmprice/internal/model"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for session data access operations.
type SessionRepository interface {
	// Create inserts a new session.
	Create(ctx context.Context, session *model.Session) error

	// GetByID retrieves a session by its ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)

	// Update persists the mutable fields of an existing session.
	// Returns model.ErrSessionNotFound when the session does not exist.
	Update(ctx context.Context, session *model.Session) error
}

// LikedRepository defines the interface for the per-session liked product set.
type LikedRepository interface {
	// Add marks a product as liked. Adding an already liked product is a no-op.
	Add(ctx context.Context, sessionID uuid.UUID, productID string) error

	// Remove unmarks a product. Removing a product that is not liked is a no-op.
	Remove(ctx context.Context, sessionID uuid.UUID, productID string) error

	// List returns the liked product IDs in the order they were first liked.
	List(ctx context.Context, sessionID uuid.UUID) ([]string, error)
}
