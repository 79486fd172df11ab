package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/aksara-server/internal/model"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "validation", err: model.NewValidationError("secret", "is required"), wantStatus: http.StatusBadRequest, wantMessage: "secret: is required"},
		{name: "wrapped validation", err: fmt.Errorf("register: %w", model.NewValidationError("email", "is required")), wantStatus: http.StatusBadRequest, wantMessage: "email: is required"},
		{name: "malformed body", err: fmt.Errorf("%w: unexpected EOF", errMalformedBody), wantStatus: http.StatusBadRequest, wantMessage: "malformed JSON body"},
		{name: "body too large", err: &http.MaxBytesError{Limit: 1}, wantStatus: http.StatusRequestEntityTooLarge, wantMessage: "request body too large"},
		{name: "conflict", err: fmt.Errorf("failed: %w", model.ErrEmailTaken), wantStatus: http.StatusConflict, wantMessage: "email already registered"},
		{name: "unauthorized", err: model.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantMessage: "invalid email or password"},
		{name: "not configured", err: fmt.Errorf("failed to create user: %w", model.ErrNotConfigured), wantStatus: http.StatusInternalServerError, wantMessage: "service is not configured"},
		{name: "pool unavailable", err: fmt.Errorf("%w: pq: password authentication failed", model.ErrPoolUnavailable), wantStatus: http.StatusInternalServerError, wantMessage: "internal server error"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMessage: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.wantMessage), rec.Body.String())
		})
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"route not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"method not allowed"}`, rec.Body.String())
}
