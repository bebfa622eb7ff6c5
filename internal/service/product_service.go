package service

import (
	"context"
	"errors"

	"farmprice/internal/model"
	"farmprice/internal/pricing"
	"farmprice/internal/upstream"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	api    upstream.PriceAPI
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(api upstream.PriceAPI, logger zerolog.Logger) ProductService {
	return &productService{
		api:    api,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// CompareMarkets returns the product's quotes ranked across all markets.
func (s *productService) CompareMarkets(ctx context.Context, productID string) (*model.MarketComparison, error) {
	if productID == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	prices, err := s.api.GetProductPrices(ctx, productID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			s.logger.Debug().Str("product_id", productID).Msg("product not found")
			return nil, model.ErrProductNotFound
		}
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get product prices")
		return nil, upstreamError(ctx, err)
	}

	comparison := pricing.Compare(prices.Product, prices.MarketPrices)

	s.logger.Debug().
		Str("product_id", productID).
		Int("markets", len(comparison.Quotes)).
		Msg("compared product across markets")

	return comparison, nil
}
