package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "STORAGE_DRIVER", "REDIS_ENABLED", "REQUIRE_AUTH_ON_UPDATE", "ENFORCE_PARTICIPANT_CHECK", "CACHE_TTL_SECONDS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()

	assert.Equal(t, "4741", cfg.AppPort)
	assert.Equal(t, StorageMongo, cfg.StorageDriver)
	assert.True(t, cfg.RedisEnabled)
	assert.False(t, cfg.RequireAuthOnUpdate)
	assert.False(t, cfg.EnforceParticipantCheck)
	assert.Equal(t, 300, cfg.CacheTTLSeconds)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_WRITES", "5")
	t.Setenv("REQUIRE_AUTH_ON_UPDATE", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 5, cfg.RateLimitWrites)
	assert.True(t, cfg.RequireAuthOnUpdate)
}

func TestGetEnvAsInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_MIN", "soon")

	assert.Equal(t, 60, getEnvAsInt("JWT_EXPIRY_MIN", 60))
}
