package handler

import (
	"net/http"

	"farmprice/internal/model"
	"farmprice/internal/service"

	"github.com/rs/zerolog"
)

// SessionHandler handles session lifecycle and preferences.
type SessionHandler struct {
	service   service.SessionService
	validator *Validator
	logger    zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service service.SessionService, validator *Validator, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "session").Logger(),
	}
}

// Create handles POST /api/sessions requests.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Create(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.Header().Set(SessionHeader, session.ID.String())
	writeJSON(w, http.StatusCreated, session, h.logger)
}

// Get handles GET /api/sessions/current requests.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	session, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session, h.logger)
}

// SetLanguage handles PUT /api/sessions/current/language requests.
func (h *SessionHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req model.LanguageRequest
	if err := h.validator.decode(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	session, err := h.service.SetLanguage(r.Context(), sessionID, req.Language)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session, h.logger)
}

// CompleteOnboarding handles POST /api/sessions/current/onboarding requests.
func (h *SessionHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	session, err := h.service.CompleteOnboarding(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session, h.logger)
}
