// Package pricing derives the figures the client renders from raw market
// quotes and price histories. Every function is pure and safe for concurrent use.
package pricing

import (
	"farmprice/internal/model"

	"github.com/shopspring/decimal"
)

// AveragePrice returns the arithmetic mean of the quotes' prices.
// An empty slice yields zero.
func AveragePrice(quotes []model.MarketQuote) decimal.Decimal {
	if len(quotes) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, q := range quotes {
		total = total.Add(q.Price)
	}

	return total.Div(decimal.NewFromInt(int64(len(quotes))))
}

// PriceRange returns the lowest and highest price among the quotes.
// Both are zero for an empty slice.
func PriceRange(quotes []model.MarketQuote) (lowest, highest decimal.Decimal) {
	if len(quotes) == 0 {
		return decimal.Zero, decimal.Zero
	}

	lowest, highest = quotes[0].Price, quotes[0].Price
	for _, q := range quotes[1:] {
		if q.Price.LessThan(lowest) {
			lowest = q.Price
		}
		if q.Price.GreaterThan(highest) {
			highest = q.Price
		}
	}

	return lowest, highest
}

// Classify ranks quote against quotes. HIGHEST is checked before LOWEST,
// so when every price is equal all quotes rank HIGHEST.
func Classify(quote model.MarketQuote, quotes []model.MarketQuote) model.Rank {
	if len(quotes) == 0 {
		return model.RankNormal
	}

	lowest, highest := PriceRange(quotes)
	switch {
	case quote.Price.Equal(highest):
		return model.RankHighest
	case quote.Price.Equal(lowest):
		return model.RankLowest
	default:
		return model.RankNormal
	}
}

// Compare builds the all-markets view for a product.
func Compare(product model.Product, quotes []model.MarketQuote) *model.MarketComparison {
	lowest, highest := PriceRange(quotes)

	ranked := make([]model.RankedQuote, len(quotes))
	for i, q := range quotes {
		ranked[i] = model.RankedQuote{
			MarketQuote:   q,
			Rank:          Classify(q, quotes),
			ChangePercent: PercentChange(q.PreviousPrice, q.Price),
		}
	}

	return &model.MarketComparison{
		Product:      product,
		AveragePrice: AveragePrice(quotes),
		HighestPrice: highest,
		LowestPrice:  lowest,
		Quotes:       ranked,
	}
}
