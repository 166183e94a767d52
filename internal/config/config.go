package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database
	DBDriver      string `mapstructure:"DB_DRIVER"` // sqlite | postgres
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RunMigrations bool   `mapstructure:"RUN_MIGRATIONS"`

	// Redis (empty disables the report cache)
	RedisURL              string `mapstructure:"REDIS_URL"`
	ReportCacheTTLSeconds int    `mapstructure:"REPORT_CACHE_TTL_SECONDS"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	BcryptCost         int    `mapstructure:"BCRYPT_COST"`
	AdminUsername      string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword      string `mapstructure:"ADMIN_PASSWORD"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	// Reports
	ExportDir       string `mapstructure:"EXPORT_DIR"`
	TopClientsLimit int    `mapstructure:"TOP_CLIENTS_LIMIT"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "seguradora.sqlite3")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REPORT_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("EXPORT_DIR", "exports")
	viper.SetDefault("TOP_CLIENTS_LIMIT", 5)

	// Optional .env file for local development; a missing file is fine
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
