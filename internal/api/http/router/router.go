package router

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/aksara-server/internal/api/http/handler"
	"github.com/dtroode/aksara-server/internal/api/http/middleware"
	"github.com/dtroode/aksara-server/internal/config"
	"github.com/dtroode/aksara-server/internal/logger"
)

// Router wires the account API onto a chi mux.
type Router struct {
	accountService handler.AccountService
	pinger         handler.Pinger
	cors           config.CORS
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	accountService handler.AccountService,
	pinger handler.Pinger,
	corsConfig config.CORS,
	logger *logger.Logger,
) *Router {
	return &Router{
		accountService: accountService,
		pinger:         pinger,
		cors:           corsConfig,
		logger:         logger,
	}
}

// Register builds the HTTP handler with middleware and all routes.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	mux.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.NewLogging(r.logger).Handle,
		middleware.NewRecover(r.logger).Handle,
		cors.Handler(corsOptions(r.cors)),
	)

	mux.NotFound(handler.NotFound)
	mux.MethodNotAllowed(handler.MethodNotAllowed)

	account := handler.NewAccount(r.accountService, r.logger)
	status := handler.NewStatus(r.pinger, r.logger)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/status", status.Get)
		api.Post("/register", account.Register)
		api.Post("/login", account.Login)
	})

	// Paths used by the first frontend release.
	mux.Post("/register", account.Register)
	mux.Post("/login", account.Login)

	return mux
}

// corsOptions translates the configured policy. A wildcard with credentials
// echoes the caller's origin, since browsers reject "*" on credentialed requests.
func corsOptions(cfg config.CORS) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if slices.Contains(cfg.AllowedOrigins, "*") && cfg.AllowCredentials {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
		return opts
	}

	opts.AllowedOrigins = cfg.AllowedOrigins
	return opts
}
