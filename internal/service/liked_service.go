package service

import (
	"context"
	"errors"
	"fmt"

	"farmprice/internal/metrics"
	"farmprice/internal/model"
	"farmprice/internal/pricing"
	"farmprice/internal/repository"
	"farmprice/internal/upstream"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// likedService implements LikedService.
type likedService struct {
	likedRepo   repository.LikedRepository
	sessionRepo repository.SessionRepository
	api         upstream.PriceAPI
	metrics     *metrics.Metrics
	fanout      int
	logger      zerolog.Logger
}

// NewLikedService creates a new liked product service. fanout bounds the
// concurrent price lookups made by List.
func NewLikedService(
	likedRepo repository.LikedRepository,
	sessionRepo repository.SessionRepository,
	api upstream.PriceAPI,
	m *metrics.Metrics,
	fanout int,
	logger zerolog.Logger,
) LikedService {
	if fanout < 1 {
		fanout = 1
	}
	return &likedService{
		likedRepo:   likedRepo,
		sessionRepo: sessionRepo,
		api:         api,
		metrics:     m,
		fanout:      fanout,
		logger:      logger.With().Str("service", "liked").Logger(),
	}
}

// Like adds productID to the session's liked set.
func (s *likedService) Like(ctx context.Context, sessionID uuid.UUID, productID string) error {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return err
	}
	if productID == "" {
		return model.ErrProductNotFound
	}

	if err := s.likedRepo.Add(ctx, sessionID, productID); err != nil {
		s.logger.Error().Err(err).
			Str("session_id", sessionID.String()).
			Str("product_id", productID).
			Msg("failed to like product")
		return fmt.Errorf("failed to like product: %w", err)
	}

	s.metrics.LikedChange("like")
	return nil
}

// Unlike removes productID from the session's liked set.
func (s *likedService) Unlike(ctx context.Context, sessionID uuid.UUID, productID string) error {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return err
	}

	if err := s.likedRepo.Remove(ctx, sessionID, productID); err != nil {
		s.logger.Error().Err(err).
			Str("session_id", sessionID.String()).
			Str("product_id", productID).
			Msg("failed to unlike product")
		return fmt.Errorf("failed to unlike product: %w", err)
	}

	s.metrics.LikedChange("unlike")
	return nil
}

// List returns the liked products in the order they were liked. Products the
// price service no longer knows are skipped.
func (s *likedService) List(ctx context.Context, sessionID uuid.UUID) ([]model.MarketComparison, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	ids, err := s.likedRepo.List(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to list liked products")
		return nil, fmt.Errorf("failed to list liked products: %w", err)
	}

	results := make([]*model.MarketComparison, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			prices, err := s.api.GetProductPrices(gctx, id)
			if err != nil {
				if errors.Is(err, upstream.ErrNotFound) {
					s.logger.Warn().Str("product_id", id).Msg("liked product no longer exists")
					return nil
				}
				return fmt.Errorf("product %s: %w", id, err)
			}
			results[i] = pricing.Compare(prices.Product, prices.MarketPrices)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to load liked product prices")
		return nil, upstreamError(ctx, err)
	}

	comparisons := make([]model.MarketComparison, 0, len(ids))
	for _, c := range results {
		if c != nil {
			comparisons = append(comparisons, *c)
		}
	}

	return comparisons, nil
}

func (s *likedService) requireSession(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return model.ErrSessionRequired
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to get session")
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return model.ErrSessionNotFound
	}

	return nil
}
