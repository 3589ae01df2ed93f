package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9091", cfg.Addr)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 1024, cfg.MaxImageWidth)
	assert.Equal(t, 5*time.Minute, cfg.CalendarCacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":8080")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MAX_IMAGE_WIDTH", "800")
	t.Setenv("CALENDAR_CACHE_TTL", "90s")
	t.Setenv("FIREBASE_PROJECT_ID", "hibi-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 800, cfg.MaxImageWidth)
	assert.Equal(t, 90*time.Second, cfg.CalendarCacheTTL)
	assert.Equal(t, "hibi-test", cfg.FirebaseProjectID)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"REDIS_DB", "not-a-number"},
		{"MAX_IMAGE_WIDTH", "wide"},
		{"CALENDAR_CACHE_TTL", "soon"},
		{"SESSION_IDLE_TIMEOUT", "whenever"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
