package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/database"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/logging"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/config"
	"github.com/Kabroda-Trading/KTBB-APP/cmd/api/internal"
)

func main() {
	config.LoadEnv()

	cfg, err := config.LoadConfig()
	if err != nil {
		fallback := logging.New(config.Default().Logging)
		fallback.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.Component(logging.New(cfg.Logging), "api")
	if cfg.Source != "" {
		logger.Info().Str("path", cfg.Source).Msg("config loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store internal.RunStore
	if cfg.Journal.Enabled {
		db, err := database.InitDatabase(ctx, cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		journal := database.NewJournal(db)
		defer journal.Close()
		store = journal
		logger.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("run journal enabled")
	} else {
		logger.Info().Msg("run journal disabled")
	}

	if cfg.Auth.Enabled {
		logger.Info().Str("issuer", cfg.Auth.Issuer).Msg("JWT auth enabled for /api routes")
	}

	api := internal.NewAPI(logger, cfg, store)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logger.Info().Str("addr", cfg.Server.Addr).Msg("starting API server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("server stopped")
}
