package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("TOP_CLIENTS_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.TopClientsLimit)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.IsProduction())
}
