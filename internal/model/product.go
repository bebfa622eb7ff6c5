package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a commodity in the upstream catalogue.
type Product struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageURL"`
	BaseUnit   string `json:"baseUnit"`
	Priority   int    `json:"priority"`
	IsInDemand bool   `json:"isInDemand"`
}

// Market represents a trading place where commodities are quoted.
type Market struct {
	ID    string `json:"_id"`
	Place string `json:"place"`
}

// MarketQuote is one market's current price for a product.
type MarketQuote struct {
	MarketID      string          `json:"marketId"`
	MarketName    string          `json:"marketName"`
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	ObservedAt    time.Time       `json:"observedAt"`
}

// PricePoint is a single observation in a product's price history at one market.
type PricePoint struct {
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	ObservedAt    time.Time       `json:"observedAt"`
}

// ProductPrices groups a product with its quotes across all markets.
type ProductPrices struct {
	Product      Product       `json:"product"`
	MarketPrices []MarketQuote `json:"marketPrices"`
}

// MarketProduct is a product's current price inside a market listing.
type MarketProduct struct {
	Product    Product         `json:"product"`
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observedAt"`
}

// MarketProducts groups a market with the products it currently quotes.
type MarketProducts struct {
	Market   Market          `json:"market"`
	Products []MarketProduct `json:"products"`
}
