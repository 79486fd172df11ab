package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/aksara-server/internal/mocks"
	"github.com/dtroode/aksara-server/internal/model"
	"github.com/dtroode/aksara-server/internal/testutil"
)

func TestStatus_Get(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "connected",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "OK", "db": "Connected", "message": "API is running successfully"},
		},
		{
			name:       "unreachable",
			pingErr:    fmt.Errorf("%w: dial tcp: connection refused", model.ErrPoolUnavailable),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"status": "Error", "db": "Failed", "message": "database connection failed"},
		},
		{
			name:       "not configured",
			pingErr:    model.ErrNotConfigured,
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"status": "Error", "db": "Failed", "message": "service is not configured"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := mocks.NewPinger(t)
			pinger.On("Ping", mock.Anything).Return(tt.pingErr)
			if tt.pingErr != nil {
				pinger.On("Stat").Return(model.PoolStat{Max: 10})
			}

			rec := httptest.NewRecorder()
			NewStatus(pinger, testutil.MakeNoopLogger()).Get(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decodeBody(t, rec))
		})
	}
}
