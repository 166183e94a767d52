// cmd/seeduser/main.go: creates or resets the admin user from ADMIN_USERNAME
// and ADMIN_PASSWORD.
// Uso: ADMIN_PASSWORD=... go run ./cmd/seeduser
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"seguradora/internal/config"
	"seguradora/internal/infra"
	"seguradora/internal/repository"
	"seguradora/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if _, err := infra.SetupLogger(cfg.Env, cfg.LogLevel, ""); err != nil {
		log.Fatal().Err(err).Msg("logger setup")
	}
	if cfg.AdminPassword == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD não definido")
		os.Exit(2)
	}

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}
	if err := infra.Migrate(db, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrate error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	criado, err := service.SeedAdmin(ctx, repository.NewUsuarioRepository(db), cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("seed error")
	}
	if criado {
		fmt.Printf("Usuário '%s' criado\n", cfg.AdminUsername)
	} else {
		fmt.Printf("Usuário '%s' atualizado\n", cfg.AdminUsername)
	}
}
