package handler

import (
	"net/http"

	"farmprice/internal/model"
	"farmprice/internal/service"

	"github.com/rs/zerolog"
)

// AccountHandler handles login, registration and logout.
type AccountHandler struct {
	service   service.AccountService
	validator *Validator
	logger    zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service service.AccountService, validator *Validator, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "account").Logger(),
	}
}

// Login handles POST /api/users/login requests.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	sessionID, err := optionalSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var creds model.Credentials
	if err := h.validator.decode(r, &creds); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	account, err := h.service.Login(r.Context(), sessionID, creds)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, account, h.logger)
}

// Register handles POST /api/users/register requests.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := h.validator.decode(r, &creds); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Register(r.Context(), creds); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"}, h.logger)
}

// Logout handles POST /api/users/logout requests.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	session, err := h.service.Logout(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session, h.logger)
}
