package infra

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// postgres migrations open their own lib/pq connection from the DSN
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies every pending versioned migration for the dialect of db.
// It is meant to run once at startup, never on each operation.
func Migrate(db *gorm.DB, dsn string) error {
	dialect := db.Dialector.Name()

	src, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("migrate: source %s: %w", dialect, err)
	}

	var m *migrate.Migrate
	switch dialect {
	case DriverSQLite:
		// In-memory databases only exist on the pool gorm already holds, so the
		// driver reuses it. Closing m would close that pool too.
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		drv, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("migrate: sqlite driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite3", drv)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	case DriverPostgres:
		m, err = migrate.NewWithSourceInstance("iofs", src, dsn)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		defer m.Close()
	default:
		return fmt.Errorf("migrate: dialect %q não suportado", dialect)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrate: version: %w", err)
	}
	log.Info().Str("dialect", dialect).Uint("version", version).Bool("dirty", dirty).Msg("schema migrated")
	return nil
}
