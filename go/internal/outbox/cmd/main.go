package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/quizhost/go/internal/config"
	"github.com/mcdev12/quizhost/go/internal/dbconfig"
	"github.com/mcdev12/quizhost/go/internal/outbox"
)

type relayConfig struct {
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"debug"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

func main() {
	config.LoadDotEnv()

	var rc relayConfig
	if err := config.ParseEnv(&rc); err != nil {
		log.Fatal().Err(err).Msg("load relay config")
	}
	config.SetupLogger(rc.LogLevel, rc.LogFormat)

	// DB config
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("load database config")
	}
	dsn := cfg.DSN()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to database")

	// JetStream publisher
	jsCfg, err := outbox.LoadJetStreamConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load JetStream config")
	}
	publisher, err := outbox.NewJetStreamPublisher(jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create JetStream publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close publisher")
		}
	}()

	ltCfg, err := outbox.LoadListenerConfig(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("load listener config")
	}
	listener, err := outbox.NewListener(db, publisher, ltCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create outbox listener")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msg("starting outbox relay")
		errCh <- listener.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		if err := <-errCh; err != nil {
			log.Error().Err(err).Msg("listener stop")
		}
		log.Info().Msg("graceful shutdown complete")
	case err := <-errCh:
		log.Error().Err(err).Msg("listener exited unexpectedly")
	}
}
