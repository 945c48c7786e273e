package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "STORAGE_DRIVER", "SEED_FIXTURES", "AI_MODEL", "DB_CONN_MAX_LIFETIME", "AUTH_SECRET"} {
		t.Setenv(k, "")
	}

	cfg, _ := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.True(t, cfg.SeedFixtures)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/gastro")
	t.Setenv("SEED_FIXTURES", "false")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, _ := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.False(t, cfg.SeedFixtures)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		cfg := &Config{Port: "8080", StorageDriver: DriverPostgres}
		assert.Error(t, cfg.Validate())
	})
	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{Port: "8080", StorageDriver: "redis"}
		assert.Error(t, cfg.Validate())
	})
	t.Run("auth secret without credentials", func(t *testing.T) {
		cfg := &Config{Port: "8080", StorageDriver: DriverMemory, Auth: AuthConfig{Secret: "s"}}
		assert.Error(t, cfg.Validate())
	})
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("1"))
	assert.NoError(t, ValidatePort("65535"))
	assert.Error(t, ValidatePort(""))
	assert.Error(t, ValidatePort("0"))
	assert.Error(t, ValidatePort("70000"))
	assert.Error(t, ValidatePort("http"))
}
