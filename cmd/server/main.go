package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seguradora/internal/config"
	"seguradora/internal/infra"
	"seguradora/internal/metrics"
	"seguradora/internal/repository"
	"seguradora/internal/router"
	"seguradora/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply database migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logCloser, err := infra.SetupLogger(cfg.Env, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open log file")
	}
	defer logCloser.Close()

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}

	if cfg.RunMigrations || *migrateOnly {
		if err := infra.Migrate(db, cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}
	if *migrateOnly {
		return
	}

	if cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		criado, err := service.SeedAdmin(ctx, repository.NewUsuarioRepository(db), cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptCost)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
		}
		log.Info().Str("username", cfg.AdminUsername).Bool("criado", criado).Msg("admin user ready")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Info().Msg("REDIS_URL not set, report cache disabled")
	}

	r, err := router.New(cfg, db, rdb, metrics.New())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("seguradora backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
