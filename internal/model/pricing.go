package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rank classifies a quote relative to the other quotes for the same product.
type Rank string

const (
	RankHighest Rank = "HIGHEST"
	RankLowest  Rank = "LOWEST"
	RankNormal  Rank = "NORMAL"
)

// ProductListing is a row of the home grid. Each quote carries its rank and
// change since the previous price at that market.
type ProductListing struct {
	Product      Product         `json:"product"`
	MarketPrices []RankedQuote   `json:"marketPrices"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	Liked        bool            `json:"liked"`
}

// RankedQuote is a market quote annotated for the comparison view.
type RankedQuote struct {
	MarketQuote
	Rank          Rank            `json:"rank"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

// MarketComparison is a product's price across every market that quotes it.
type MarketComparison struct {
	Product      Product         `json:"product"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	HighestPrice decimal.Decimal `json:"highestPrice"`
	LowestPrice  decimal.Decimal `json:"lowestPrice"`
	Quotes       []RankedQuote   `json:"quotes"`
}

// TrendSummary describes the recent price movement of a product at one market.
// Predicted is a short-horizon linear extrapolation, not a forecast.
type TrendSummary struct {
	Latest        decimal.Decimal `json:"latest"`
	Previous      decimal.Decimal `json:"previous"`
	Min           decimal.Decimal `json:"min"`
	Max           decimal.Decimal `json:"max"`
	Predicted     decimal.Decimal `json:"predicted"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	Points        []PricePoint    `json:"points"`
}

// PriceTrend is the history view for a product at a market.
type PriceTrend struct {
	Product  Product      `json:"product"`
	MarketID string       `json:"marketId"`
	Trend    TrendSummary `json:"trend"`
}

// ProductGrid is the home grid. Stale is set when the listing was served
// from the last known snapshot because the price service was unreachable.
type ProductGrid struct {
	Products    []ProductListing `json:"products"`
	Stale       bool             `json:"stale"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
