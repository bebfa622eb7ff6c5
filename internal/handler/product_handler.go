package handler

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"farmprice/internal/model"
	"farmprice/internal/search"
	"farmprice/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles the home grid and per-product comparison.
type ProductHandler struct {
	catalog  service.CatalogService
	products service.ProductService
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog service.CatalogService, products service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		products: products,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products?q= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := optionalSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	query := r.URL.Query().Get("q")
	if utf8.RuneCountInString(query) > search.MaxQueryRunes {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation,
			fmt.Sprintf("q must be at most %d characters", search.MaxQueryRunes), h.logger)
		return
	}

	grid, err := h.catalog.ListProducts(r.Context(), sessionID, query)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, grid, h.logger)
}

// CompareMarkets handles GET /api/products/{productID}/markets requests.
func (h *ProductHandler) CompareMarkets(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	comparison, err := h.products.CompareMarkets(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, comparison, h.logger)
}
