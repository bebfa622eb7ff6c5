package handler

import (
	"net/http"

	"farmprice/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MarketHandler handles the markets tab and price history.
type MarketHandler struct {
	catalog service.CatalogService
	trends  service.TrendService
	logger  zerolog.Logger
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(catalog service.CatalogService, trends service.TrendService, logger zerolog.Logger) *MarketHandler {
	return &MarketHandler{
		catalog: catalog,
		trends:  trends,
		logger:  logger.With().Str("handler", "market").Logger(),
	}
}

// List handles GET /api/markets requests.
func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	markets, err := h.catalog.ListMarkets(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, markets, h.logger)
}

// History handles GET /api/markets/{marketID}/products/{productID}/history requests.
func (h *MarketHandler) History(w http.ResponseWriter, r *http.Request) {
	trend, err := h.trends.GetTrend(r.Context(), chi.URLParam(r, "marketID"), chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, trend, h.logger)
}
