package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/aksara-server/internal/config"
	"github.com/dtroode/aksara-server/internal/mocks"
	"github.com/dtroode/aksara-server/internal/model"
	"github.com/dtroode/aksara-server/internal/testutil"
)

var permissive = config.CORS{AllowedOrigins: []string{"*"}, AllowCredentials: true, MaxAge: 300}

func newTestRouter(t *testing.T, corsConfig config.CORS) (http.Handler, *mocks.AccountService, *mocks.Pinger) {
	t.Helper()
	service := mocks.NewAccountService(t)
	pinger := mocks.NewPinger(t)
	return New(service, pinger, corsConfig, testutil.MakeNoopLogger()).Register(), service, pinger
}

func TestRouter_Routes(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "a@x.com"}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(*mocks.AccountService, *mocks.Pinger)
		wantStatus int
	}{
		{
			name: "status", method: http.MethodGet, path: "/api/status",
			setup: func(_ *mocks.AccountService, p *mocks.Pinger) {
				p.On("Ping", mock.Anything).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "register", method: http.MethodPost, path: "/api/register", body: `{"email":"a@x.com","secret":"p1"}`,
			setup: func(s *mocks.AccountService, _ *mocks.Pinger) {
				s.On("Register", mock.Anything, mock.Anything).Return(user, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "legacy register", method: http.MethodPost, path: "/register", body: `{"email":"a@x.com","password":"p1"}`,
			setup: func(s *mocks.AccountService, _ *mocks.Pinger) {
				s.On("Register", mock.Anything, mock.Anything).Return(user, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "login", method: http.MethodPost, path: "/api/login", body: `{"email":"a@x.com","secret":"p1"}`,
			setup: func(s *mocks.AccountService, _ *mocks.Pinger) {
				s.On("Authenticate", mock.Anything, mock.Anything).Return(user, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "legacy login", method: http.MethodPost, path: "/login", body: `{"email":"a@x.com","password":"p1"}`,
			setup: func(s *mocks.AccountService, _ *mocks.Pinger) {
				s.On("Authenticate", mock.Anything, mock.Anything).Return(model.User{}, model.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{name: "unknown route", method: http.MethodGet, path: "/api/users", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/login", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, service, pinger := newTestRouter(t, permissive)
			if tt.setup != nil {
				tt.setup(service, pinger)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			assert.NotEmpty(t, rec.Body.String())
		})
	}
}

func TestRouter_PanicBecomesJSON500(t *testing.T) {
	h, service, _ := newTestRouter(t, permissive)
	service.On("Register", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("unexpected")
	}).Return(model.User{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"email":"a@x.com","secret":"p1"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h, _, _ := newTestRouter(t, permissive)

	req := httptest.NewRequest(http.MethodOptions, "/api/register", nil)
	req.Header.Set("Origin", "https://dashboard-aksara.vercel.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://dashboard-aksara.vercel.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
}

func TestRouter_CORSRestrictedOrigins(t *testing.T) {
	h, _, pinger := newTestRouter(t, config.CORS{AllowedOrigins: []string{"https://dashboard-aksara.vercel.app"}})
	pinger.On("Ping", mock.Anything).Return(nil)

	allowed := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	allowed.Header.Set("Origin", "https://dashboard-aksara.vercel.app")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, allowed)
	assert.Equal(t, "https://dashboard-aksara.vercel.app", rec.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	denied.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, denied)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsOptions(t *testing.T) {
	opts := corsOptions(permissive)
	assert.Empty(t, opts.AllowedOrigins)
	require.NotNil(t, opts.AllowOriginFunc)
	assert.True(t, opts.AllowOriginFunc(nil, "https://anything.example"))
	assert.True(t, opts.AllowCredentials)

	opts = corsOptions(config.CORS{AllowedOrigins: []string{"*"}})
	assert.Equal(t, []string{"*"}, opts.AllowedOrigins)
	assert.Nil(t, opts.AllowOriginFunc)
}

func TestRouter_RequestIDHeaderAccepted(t *testing.T) {
	h, _, pinger := newTestRouter(t, permissive)
	pinger.On("Ping", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
