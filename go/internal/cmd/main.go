package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/quizhost/go/internal/config"
)

func main() {
	config.LoadDotEnv()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	config.SetupLogger(cfg.Server.LogLevel, cfg.Server.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := setupStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup store")
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	services := setupServices(repos)
	if cfg.Server.SeedSampleQuiz {
		if err := seedSampleQuiz(ctx, services); err != nil {
			log.Fatal().Err(err).Msg("seed sample quiz")
		}
	}

	server := setupServer(cfg.Server, services)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("store", cfg.Server.StoreDriver).
			Msg("quiz host listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server exited unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("graceful shutdown complete")
}
