package service

import (
	"context"
	"errors"

	"farmprice/internal/model"
	"farmprice/internal/pricing"
	"farmprice/internal/upstream"

	"github.com/rs/zerolog"
)

// trendService implements TrendService.
type trendService struct {
	api    upstream.PriceAPI
	window int
	logger zerolog.Logger
}

// NewTrendService creates a new trend service summarising at most window points.
func NewTrendService(api upstream.PriceAPI, window int, logger zerolog.Logger) TrendService {
	return &trendService{
		api:    api,
		window: window,
		logger: logger.With().Str("service", "trend").Logger(),
	}
}

// GetTrend summarises the recent prices of a product at one market.
func (s *trendService) GetTrend(ctx context.Context, marketID, productID string) (*model.PriceTrend, error) {
	if marketID == "" || productID == "" {
		s.logger.Warn().Str("market_id", marketID).Str("product_id", productID).Msg("market or product ID is empty")
		return nil, model.ErrMarketNotFound
	}

	product, history, err := s.api.GetPriceHistory(ctx, marketID, productID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			s.logger.Debug().Str("market_id", marketID).Str("product_id", productID).Msg("price history not found")
			return nil, model.ErrMarketNotFound
		}
		s.logger.Error().Err(err).
			Str("market_id", marketID).
			Str("product_id", productID).
			Msg("failed to get price history")
		return nil, upstreamError(ctx, err)
	}

	return &model.PriceTrend{
		Product:  *product,
		MarketID: marketID,
		Trend:    pricing.Summarize(history, s.window),
	}, nil
}
