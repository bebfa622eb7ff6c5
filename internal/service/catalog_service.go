package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"farmprice/internal/metrics"
	"farmprice/internal/model"
	"farmprice/internal/pricing"
	"farmprice/internal/repository"
	"farmprice/internal/search"
	"farmprice/internal/snapshot"
	"farmprice/internal/upstream"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	api       upstream.PriceAPI
	likedRepo repository.LikedRepository
	store     *snapshot.Store
	metrics   *metrics.Metrics
	threshold float64
	logger    zerolog.Logger
}

// NewCatalogService creates a new catalog service. store and m may be nil.
func NewCatalogService(
	api upstream.PriceAPI,
	likedRepo repository.LikedRepository,
	store *snapshot.Store,
	m *metrics.Metrics,
	threshold float64,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		api:       api,
		likedRepo: likedRepo,
		store:     store,
		metrics:   m,
		threshold: threshold,
		logger:    logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts returns the home grid filtered by query.
func (s *catalogService) ListProducts(ctx context.Context, sessionID uuid.UUID, query string) (*model.ProductGrid, error) {
	listing, generatedAt, stale, err := s.listing(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) != "" {
		s.metrics.SearchQuery()
		listing = search.Filter(listing, func(p model.ProductPrices) string {
			return p.Product.Name
		}, query, s.threshold)
	}

	liked := map[string]bool{}
	if sessionID != uuid.Nil {
		ids, err := s.likedRepo.List(ctx, sessionID)
		if err != nil {
			s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to list liked products")
			return nil, fmt.Errorf("failed to list liked products: %w", err)
		}
		for _, id := range ids {
			liked[id] = true
		}
	}

	products := make([]model.ProductListing, len(listing))
	for i, p := range listing {
		comparison := pricing.Compare(p.Product, p.MarketPrices)
		products[i] = model.ProductListing{
			Product:      p.Product,
			MarketPrices: comparison.Quotes,
			AveragePrice: comparison.AveragePrice,
			Liked:        liked[p.Product.ID],
		}
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("query", query).
		Bool("stale", stale).
		Msg("listed products")

	return &model.ProductGrid{
		Products:    products,
		Stale:       stale,
		GeneratedAt: generatedAt,
	}, nil
}

// listing fetches the live listing, falling back to the snapshot store when
// the price service fails.
func (s *catalogService) listing(ctx context.Context) ([]model.ProductPrices, time.Time, bool, error) {
	listing, err := s.api.ListProductPrices(ctx)
	if err == nil {
		now := time.Now().UTC()
		if s.store != nil {
			s.store.Remember(listing, now)
		}
		return listing, now, false, nil
	}

	if ctx.Err() != nil {
		return nil, time.Time{}, false, ctx.Err()
	}

	cached, generatedAt, ok := s.store.Listing()
	if !ok {
		s.logger.Error().Err(err).Msg("failed to list product prices and no snapshot is available")
		return nil, time.Time{}, false, model.ErrUpstreamUnavailable
	}

	s.metrics.SnapshotFallback()
	s.logger.Warn().
		Err(err).
		Time("generated_at", generatedAt).
		Msg("price service unavailable, serving snapshot")

	return cached, generatedAt, true, nil
}

// ListMarkets returns every market with the products it currently quotes.
func (s *catalogService) ListMarkets(ctx context.Context) ([]model.MarketProducts, error) {
	markets, err := s.api.ListMarketProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list market products")
		return nil, upstreamError(ctx, err)
	}

	s.logger.Debug().Int("count", len(markets)).Msg("listed markets")

	return markets, nil
}

// upstreamError converts a failed price service call into the error returned
// to handlers. Context errors pass through unchanged.
func upstreamError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return model.ErrUpstreamUnavailable
}
