package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"farmprice/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memorySessionRepository keeps sessions in process memory. With a positive
// capacity, creating a session beyond it evicts the least recently updated one.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.Session
	capacity int
	onEvict  func(uuid.UUID)
	logger   zerolog.Logger
}

// NewMemorySessionRepository creates an unbounded in-memory session repository.
func NewMemorySessionRepository(logger zerolog.Logger) SessionRepository {
	return newMemorySessionRepository(0, nil, logger)
}

// NewMemoryRepositories creates in-memory session and liked repositories that
// hold at most maxSessions sessions. An evicted session's liked set is dropped
// with it. maxSessions <= 0 means unbounded.
func NewMemoryRepositories(maxSessions int, logger zerolog.Logger) (SessionRepository, LikedRepository) {
	liked := newMemoryLikedRepository(logger)
	sessions := newMemorySessionRepository(maxSessions, liked.forget, logger)
	return sessions, liked
}

func newMemorySessionRepository(capacity int, onEvict func(uuid.UUID), logger zerolog.Logger) *memorySessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]model.Session),
		capacity: capacity,
		onEvict:  onEvict,
		logger:   logger.With().Str("repository", "session-memory").Logger(),
	}
}

func (r *memorySessionRepository) Create(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; !exists && r.capacity > 0 && len(r.sessions) >= r.capacity {
		r.evictOldest()
	}

	r.sessions[session.ID] = copySession(*session)
	r.logger.Debug().Str("session_id", session.ID.String()).Msg("session created")
	return nil
}

// evictOldest drops the least recently updated session. Callers hold mu.
func (r *memorySessionRepository) evictOldest() {
	var (
		oldest   uuid.UUID
		oldestAt time.Time
		found    bool
	)
	for id, s := range r.sessions {
		if !found || s.UpdatedAt.Before(oldestAt) {
			oldest, oldestAt, found = id, s.UpdatedAt, true
		}
	}
	if !found {
		return
	}

	delete(r.sessions, oldest)
	if r.onEvict != nil {
		r.onEvict(oldest)
	}

	r.logger.Info().
		Str("session_id", oldest.String()).
		Int("capacity", r.capacity).
		Msg("session evicted")
}

func (r *memorySessionRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	out := copySession(s)
	return &out, nil
}

func (r *memorySessionRepository) Update(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[session.ID]
	if !ok {
		return model.ErrSessionNotFound
	}

	updated := copySession(*session)
	updated.CreatedAt = existing.CreatedAt
	r.sessions[session.ID] = updated
	return nil
}

// copySession detaches the UserName pointer from the caller's value.
func copySession(s model.Session) model.Session {
	if s.UserName != nil {
		name := *s.UserName
		s.UserName = &name
	}
	return s
}

// memoryLikedRepository keeps liked product sets in process memory.
type memoryLikedRepository struct {
	mu     sync.RWMutex
	liked  map[uuid.UUID][]string
	logger zerolog.Logger
}

// NewMemoryLikedRepository creates an in-memory liked product repository.
func NewMemoryLikedRepository(logger zerolog.Logger) LikedRepository {
	return newMemoryLikedRepository(logger)
}

func newMemoryLikedRepository(logger zerolog.Logger) *memoryLikedRepository {
	return &memoryLikedRepository{
		liked:  make(map[uuid.UUID][]string),
		logger: logger.With().Str("repository", "liked-memory").Logger(),
	}
}

// forget drops a session's liked set.
func (r *memoryLikedRepository) forget(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.liked, sessionID)
}

func (r *memoryLikedRepository) Add(_ context.Context, sessionID uuid.UUID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.liked[sessionID]
	if slices.Contains(ids, productID) {
		return nil
	}
	r.liked[sessionID] = append(ids, productID)
	return nil
}

func (r *memoryLikedRepository) Remove(_ context.Context, sessionID uuid.UUID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.liked[sessionID]
	idx := slices.Index(ids, productID)
	if idx < 0 {
		return nil
	}
	r.liked[sessionID] = slices.Delete(slices.Clone(ids), idx, idx+1)
	return nil
}

func (r *memoryLikedRepository) List(_ context.Context, sessionID uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.liked[sessionID]))
	copy(out, r.liked[sessionID])
	return out, nil
}
