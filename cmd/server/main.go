// Package main is the entry point for the Chronax analysis service.
// Chronax scores physiological time series (continuous glucose, cardiac
// inter-beat intervals) for brittleness: nonlinear-dynamics indicators,
// a change-point ensemble, regime segmentation and a discrete risk
// classification, exposed over a JSON API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chronax-dev/chronax/internal/config"
	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/internal/modules/analysis"
	"github.com/chronax-dev/chronax/internal/server"
	"github.com/chronax-dev/chronax/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Chronax")

	glucose, err := analysis.NewService(cfg.AnalysisConfig(domain.SeriesGlucose), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build glucose pipeline")
	}
	cardiac, err := analysis.NewService(cfg.AnalysisConfig(domain.SeriesCardiac), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build cardiac pipeline")
	}

	srv := server.New(server.Config{
		Log:     log,
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
		Glucose: glucose,
		Cardiac: cardiac,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Chronax stopped")
}
