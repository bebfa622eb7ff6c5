package handler

import (
	"net/http"

	"farmprice/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// LikedHandler handles the session's liked products.
type LikedHandler struct {
	service service.LikedService
	logger  zerolog.Logger
}

// NewLikedHandler creates a new liked product handler.
func NewLikedHandler(service service.LikedService, logger zerolog.Logger) *LikedHandler {
	return &LikedHandler{
		service: service,
		logger:  logger.With().Str("handler", "liked").Logger(),
	}
}

// List handles GET /api/liked requests.
func (h *LikedHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	liked, err := h.service.List(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, liked, h.logger)
}

// Like handles PUT /api/liked/{productID} requests.
func (h *LikedHandler) Like(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Like(r.Context(), sessionID, chi.URLParam(r, "productID")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unlike handles DELETE /api/liked/{productID} requests.
func (h *LikedHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Unlike(r.Context(), sessionID, chi.URLParam(r, "productID")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
