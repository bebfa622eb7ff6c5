package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farmprice/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(h *SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/sessions", h.Create)
	r.Get("/api/sessions/current", h.Get)
	r.Put("/api/sessions/current/language", h.SetLanguage)
	r.Post("/api/sessions/current/onboarding", h.CompleteOnboarding)
	return r
}

func testSession() *model.Session {
	now := time.Now().UTC()
	return &model.Session{ID: uuid.New(), Language: model.LanguageEnglish, CreatedAt: now, UpdatedAt: now}
}

func TestSessionHandler_Create(t *testing.T) {
	session := testSession()
	svc := new(MockSessionService)
	svc.On("Create", mock.Anything).Return(session, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	w := httptest.NewRecorder()

	newSessionRouter(NewSessionHandler(svc, NewValidator(), zerolog.Nop())).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, session.ID.String(), w.Header().Get(SessionHeader))

	var got model.Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, model.LanguageEnglish, got.Language)
}

func TestSessionHandler_Get(t *testing.T) {
	session := testSession()

	tests := []struct {
		name           string
		header         string
		mockReturn     *model.Session
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{name: "Success", header: session.ID.String(), mockReturn: session, expectService: true, expectedStatus: http.StatusOK},
		{name: "Missing header", expectedStatus: http.StatusUnauthorized},
		{name: "Unknown session", header: session.ID.String(), mockError: model.ErrSessionNotFound, expectService: true, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSessionService)
			if tt.expectService {
				if tt.mockReturn != nil {
					svc.On("Get", mock.Anything, session.ID).Return(tt.mockReturn, nil)
				} else {
					svc.On("Get", mock.Anything, session.ID).Return(nil, tt.mockError)
				}
			}

			req := httptest.NewRequest(http.MethodGet, "/api/sessions/current", nil)
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}
			w := httptest.NewRecorder()

			newSessionRouter(NewSessionHandler(svc, NewValidator(), zerolog.Nop())).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_SetLanguage(t *testing.T) {
	session := testSession()
	updated := *session
	updated.Language = model.LanguageKannada

	tests := []struct {
		name           string
		body           string
		expectService  bool
		expectedStatus int
		expectedCode   string
	}{
		{name: "Success", body: `{"language":"kn"}`, expectService: true, expectedStatus: http.StatusOK},
		{name: "Unsupported language", body: `{"language":"fr"}`, expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeValidation},
		{name: "Missing language", body: `{}`, expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeValidation},
		{name: "Invalid JSON", body: `language=kn`, expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSessionService)
			if tt.expectService {
				svc.On("SetLanguage", mock.Anything, session.ID, model.LanguageKannada).Return(&updated, nil)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/sessions/current/language", strings.NewReader(tt.body))
			req.Header.Set(SessionHeader, session.ID.String())
			w := httptest.NewRecorder()

			newSessionRouter(NewSessionHandler(svc, NewValidator(), zerolog.Nop())).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_CompleteOnboarding(t *testing.T) {
	session := testSession()
	session.HasSeenOnboarding = true

	svc := new(MockSessionService)
	svc.On("CompleteOnboarding", mock.Anything, session.ID).Return(session, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/current/onboarding", nil)
	req.Header.Set(SessionHeader, session.ID.String())
	w := httptest.NewRecorder()

	newSessionRouter(NewSessionHandler(svc, NewValidator(), zerolog.Nop())).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got model.Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.True(t, got.HasSeenOnboarding)
}
