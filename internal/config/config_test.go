package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Empty(t, cfg.RedisAddr)
		assert.Equal(t, "showroom", cfg.ServiceName)
		assert.Equal(t, 10*time.Minute, cfg.TestDriveTTL)
		assert.Equal(t, 5, cfg.PlateRetryMax)
		assert.True(t, cfg.SeedCatalog)
		assert.Nil(t, cfg.VIPAllowList)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", ":9090")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("TESTDRIVE_TTL", "30m")
		t.Setenv("PLATE_RETRY_MAX", "8")
		t.Setenv("SEED_CATALOG", "false")
		t.Setenv("VIP_ALLOW_LIST", "buyer-1, buyer-2,,buyer-3")

		cfg := Load()
		assert.Equal(t, ":9090", cfg.HTTPAddr)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, 30*time.Minute, cfg.TestDriveTTL)
		assert.Equal(t, 8, cfg.PlateRetryMax)
		assert.False(t, cfg.SeedCatalog)
		assert.Equal(t, []string{"buyer-1", "buyer-2", "buyer-3"}, cfg.VIPAllowList)
	})

	t.Run("malformed values fall back", func(t *testing.T) {
		t.Setenv("TESTDRIVE_TTL", "soon")
		t.Setenv("PLATE_RETRY_MAX", "many")
		t.Setenv("SEED_CATALOG", "maybe")

		cfg := Load()
		assert.Equal(t, 10*time.Minute, cfg.TestDriveTTL)
		assert.Equal(t, 5, cfg.PlateRetryMax)
		assert.True(t, cfg.SeedCatalog)
	})
}
