package config_test

import (
	"testing"

	"scm/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, config.StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "scm:storage", cfg.RedisChannel)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, ',', cfg.Delimiter())
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := config.Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestLoad_InvalidPostgresPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("POSTGRES_PORT", "abc")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_Delimiter(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("EXPORT_DELIMITER", ";")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ';', cfg.Delimiter())

	cfg.ExportDelimiter = ";;"
	assert.ErrorContains(t, cfg.Validate(), "EXPORT_DELIMITER")
}

func TestAddr_KeepsColon(t *testing.T) {
	cfg := config.Config{Port: ":9090"}
	assert.Equal(t, ":9090", cfg.Addr())
}
