package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwise1/court_cases/config"
	deps "github.com/bwise1/court_cases/internal/debs"
	api "github.com/bwise1/court_cases/internal/http/rest"
	"go.uber.org/zap"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
	migrationTimeout              = 10 * time.Second
)

func main() {
	cfg := config.New()

	deps, err := deps.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialise dependencies: %v", err)
	}
	logger := deps.Logger.Sugar()

	if cfg.JwtSecret == "" {
		logger.Warn("JWT_SECRET is empty; signup and login will fail until it is set")
	}

	if cfg.MigrateOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
		err := deps.DB.Migrate(ctx)
		cancel()
		if err != nil {
			logger.Fatalw("failed to migrate database", "error", err)
		}
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go deps.Hub.Run(hubCtx)

	a := &api.API{
		Config: cfg,
		Deps:   deps,
		DB:     deps.Pool(),
	}
	go func() {
		logger.Infow("server running", "port", cfg.Port)
		if err := a.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server stopped", "error", err)
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	logger.Infow("request to shutdown server", "grace", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	logger.Info("shutting down server...")
	if err := a.Shutdown(); err != nil {
		logger.Errorw("server shutdown failed", "error", err)
	}
	stopHub()

	deps.Close()
	zap.L().Info("database connections closed")
}
