package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"farmprice/internal/model"

	"github.com/rs/zerolog"
)

// Store holds the most recent known product listing. It is seeded from a
// snapshot file at start-up and refreshed from every successful upstream
// listing, so the fallback is never older than the last good response.
type Store struct {
	mu        sync.RWMutex
	catalogue *Catalogue
	logger    zerolog.Logger
}

// NewStore creates an empty store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		logger: logger.With().Str("component", "snapshot-store").Logger(),
	}
}

// Seed loads path through loader into the store.
func (s *Store) Seed(ctx context.Context, loader Loader, path string) error {
	catalogue, err := loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to seed snapshot store: %w", err)
	}

	s.mu.Lock()
	s.catalogue = catalogue
	s.mu.Unlock()

	s.logger.Info().
		Int("products", len(catalogue.ProductPrices)).
		Time("generated_at", catalogue.GeneratedAt).
		Msg("snapshot store seeded")

	return nil
}

// Remember replaces the stored listing with a fresh one.
func (s *Store) Remember(listing []model.ProductPrices, at time.Time) {
	copied := make([]model.ProductPrices, len(listing))
	copy(copied, listing)

	s.mu.Lock()
	s.catalogue = &Catalogue{GeneratedAt: at, ProductPrices: copied}
	s.mu.Unlock()
}

// Listing returns the stored listing and when it was produced.
// ok is false when nothing has been stored yet.
func (s *Store) Listing() (listing []model.ProductPrices, generatedAt time.Time, ok bool) {
	if s == nil {
		return nil, time.Time{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalogue == nil {
		return nil, time.Time{}, false
	}

	out := make([]model.ProductPrices, len(s.catalogue.ProductPrices))
	copy(out, s.catalogue.ProductPrices)
	return out, s.catalogue.GeneratedAt, true
}

// Save writes the stored listing to path so the next start can seed from it.
// The file is replaced atomically. Saving an empty store is a no-op.
func (s *Store) Save(path string) error {
	listing, generatedAt, ok := s.Listing()
	if !ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalogue-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, &Catalogue{GeneratedAt: generatedAt, ProductPrices: listing}); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	s.logger.Info().
		Str("file", path).
		Int("products", len(listing)).
		Msg("snapshot saved")

	return nil
}

// Publish uploads the stored listing through publisher under key, so that an
// S3-seeded start sees the latest listing. Publishing an empty store is a no-op.
func (s *Store) Publish(ctx context.Context, publisher Publisher, key string) error {
	listing, generatedAt, ok := s.Listing()
	if !ok {
		return nil
	}

	if err := publisher.Publish(ctx, key, &Catalogue{GeneratedAt: generatedAt, ProductPrices: listing}); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}
