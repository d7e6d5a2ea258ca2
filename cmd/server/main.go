// Package main is the entry point for the cleardeal-ai risk analysis
// service: it loads configuration, wires the dependency container, and
// serves the HTTP API until an interrupt signal triggers graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prabhnoor12/cleardeal-ai/internal/config"
	"github.com/prabhnoor12/cleardeal-ai/internal/di"
	"github.com/prabhnoor12/cleardeal-ai/internal/logging"
)

func main() {
	log := logging.New(logging.Config{
		Level:  "info",
		Pretty: true,
	})

	log.Info().Msg("Starting cleardeal-ai")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Re-create the logger now that the configured level and mode are known.
	log = logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	container, err := di.Build(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	container.Scheduler.Start()
	defer container.Scheduler.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      container.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
