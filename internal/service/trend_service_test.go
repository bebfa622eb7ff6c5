package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmprice/internal/model"
	"farmprice/internal/upstream"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricePoints(prices ...int64) []model.PricePoint {
	// Oldest first, one day apart
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Price: decimal.NewFromInt(p), ObservedAt: start.AddDate(0, 0, i)}
	}
	return points
}

func TestTrendService_GetTrend(t *testing.T) {
	ctx := context.Background()
	product := &model.Product{ID: "tomato", Name: "Tomato"}

	t.Run("Summarises within the window", func(t *testing.T) {
		api := new(MockPriceAPI)
		api.On("GetPriceHistory", ctx, "m1", "tomato").
			Return(product, pricePoints(50, 100, 104, 108, 110, 112), nil)

		svc := NewTrendService(api, 4, zerolog.Nop())
		trend, err := svc.GetTrend(ctx, "m1", "tomato")

		require.NoError(t, err)
		assert.Equal(t, "m1", trend.MarketID)
		assert.Equal(t, "Tomato", trend.Product.Name)
		assert.Len(t, trend.Trend.Points, 4)
		assert.True(t, trend.Trend.Latest.Equal(decimal.NewFromInt(112)))
		assert.True(t, trend.Trend.Previous.Equal(decimal.NewFromInt(110)))
		assert.True(t, trend.Trend.Min.Equal(decimal.NewFromInt(104)))
		assert.True(t, trend.Trend.Max.Equal(decimal.NewFromInt(112)))
		assert.True(t, trend.Trend.Predicted.Equal(decimal.NewFromInt(114)))
		api.AssertExpectations(t)
	})

	t.Run("Empty history", func(t *testing.T) {
		api := new(MockPriceAPI)
		api.On("GetPriceHistory", ctx, "m1", "tomato").Return(product, []model.PricePoint{}, nil)

		svc := NewTrendService(api, 8, zerolog.Nop())
		trend, err := svc.GetTrend(ctx, "m1", "tomato")

		require.NoError(t, err)
		assert.Empty(t, trend.Trend.Points)
		assert.True(t, trend.Trend.Predicted.IsZero())
	})

	t.Run("Missing IDs", func(t *testing.T) {
		svc := NewTrendService(new(MockPriceAPI), 8, zerolog.Nop())

		_, err := svc.GetTrend(ctx, "", "tomato")
		assert.Equal(t, model.ErrMarketNotFound, err)
	})

	t.Run("Not found upstream", func(t *testing.T) {
		api := new(MockPriceAPI)
		api.On("GetPriceHistory", ctx, "m9", "tomato").Return(nil, nil, upstream.ErrNotFound)

		svc := NewTrendService(api, 8, zerolog.Nop())
		trend, err := svc.GetTrend(ctx, "m9", "tomato")

		assert.Nil(t, trend)
		assert.Equal(t, model.ErrMarketNotFound, err)
	})

	t.Run("Upstream failure", func(t *testing.T) {
		api := new(MockPriceAPI)
		api.On("GetPriceHistory", ctx, "m1", "tomato").Return(nil, nil, errors.New("boom"))

		svc := NewTrendService(api, 8, zerolog.Nop())
		_, err := svc.GetTrend(ctx, "m1", "tomato")

		assert.Equal(t, model.ErrUpstreamUnavailable, err)
	})
}
