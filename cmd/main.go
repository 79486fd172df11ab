package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dtroode/aksara-server/internal/api/http/router"
	httpServer "github.com/dtroode/aksara-server/internal/api/http/server"
	"github.com/dtroode/aksara-server/internal/config"
	"github.com/dtroode/aksara-server/internal/hasher"
	"github.com/dtroode/aksara-server/internal/logger"
	"github.com/dtroode/aksara-server/internal/model"
	"github.com/dtroode/aksara-server/internal/repository/postgres"
	"github.com/dtroode/aksara-server/internal/server"
	"github.com/dtroode/aksara-server/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database)
	switch {
	case errors.Is(err, model.ErrNotConfigured):
		// Keep serving so every data request reports the missing configuration.
		logger.Error("database is not configured, data requests will fail", "error", err)
		db = postgres.NewUnconfigured(err)
	case err != nil:
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository()
	credentialHasher := hasher.NewArgon2(cfg.KDF)
	accountService := service.NewAccount(db, userRepo, credentialHasher, logger)

	r := router.New(accountService, db, cfg.CORS, logger)
	srv := httpServer.NewHTTPServer(r.Register(), cfg.HTTP)
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()

	stat := db.Stat()
	logger.Info("shutdown complete", "pool_acquired", stat.Acquired, "pool_total", stat.Total)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
