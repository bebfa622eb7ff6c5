package upstream

import (
	"time"

	"farmprice/internal/model"

	"github.com/shopspring/decimal"
)

// Wire types mirror the upstream JSON. They are converted to model types
// before leaving this package.

type productPricesListResponse struct {
	ProductPrices []productPricesWire `json:"productPrices"`
}

type productPricesWire struct {
	Product      model.Product     `json:"product"`
	MarketPrices []marketPriceWire `json:"marketPrices"`
}

type marketPriceWire struct {
	ID            string          `json:"_id"`
	MarketName    string          `json:"marketName"`
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type productInAllMarketsResponse struct {
	Product *model.Product    `json:"product"`
	Prices  []marketQuoteWire `json:"prices"`
}

type marketQuoteWire struct {
	Market        model.Market    `json:"market"`
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type priceHistoryResponse struct {
	Product *model.Product   `json:"product"`
	Prices  []pricePointWire `json:"prices"`
}

type pricePointWire struct {
	Price         decimal.Decimal `json:"price"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	Date          time.Time       `json:"date"`
}

type marketProductsResponse struct {
	MarketProducts []marketProductsWire `json:"marketProducts"`
}

type marketProductsWire struct {
	MarketID string              `json:"marketId"`
	Market   model.Market        `json:"market"`
	Products []marketProductWire `json:"products"`
}

type marketProductWire struct {
	Product      model.Product   `json:"product"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Date         time.Time       `json:"date"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (w productPricesWire) toModel() model.ProductPrices {
	quotes := make([]model.MarketQuote, len(w.MarketPrices))
	for i, mp := range w.MarketPrices {
		quotes[i] = model.MarketQuote{
			MarketID:      mp.ID,
			MarketName:    mp.MarketName,
			Price:         mp.Price,
			PreviousPrice: mp.PreviousPrice,
			ObservedAt:    mp.UpdatedAt,
		}
	}
	return model.ProductPrices{Product: w.Product, MarketPrices: quotes}
}

func (w marketQuoteWire) toModel() model.MarketQuote {
	return model.MarketQuote{
		MarketID:      w.Market.ID,
		MarketName:    w.Market.Place,
		Price:         w.Price,
		PreviousPrice: w.PreviousPrice,
		ObservedAt:    w.UpdatedAt,
	}
}

func (w pricePointWire) toModel() model.PricePoint {
	return model.PricePoint{
		Price:         w.Price,
		PreviousPrice: w.PreviousPrice,
		ObservedAt:    w.Date,
	}
}

func (w marketProductsWire) toModel() model.MarketProducts {
	market := w.Market
	if market.ID == "" {
		market.ID = w.MarketID
	}

	products := make([]model.MarketProduct, len(w.Products))
	for i, p := range w.Products {
		products[i] = model.MarketProduct{
			Product:    p.Product,
			Price:      p.CurrentPrice,
			ObservedAt: p.Date,
		}
	}
	return model.MarketProducts{Market: market, Products: products}
}
