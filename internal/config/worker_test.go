package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadWorkerConfigDefaults(t *testing.T) {
	t.Setenv("RECONCILER_DISABLED", "")
	t.Setenv("RECONCILER_INTERVAL_MS", "")
	t.Setenv("RECONCILER_BATCH", "")
	t.Setenv("ALLOCATION_STALE_MINUTES", "")

	cfg := LoadWorkerConfig()
	assert.False(t, cfg.Disabled)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 25, cfg.BatchLimit)
	assert.Equal(t, 10*time.Minute, cfg.StaleAfter)
}

func TestLoadWorkerConfigFromEnv(t *testing.T) {
	t.Setenv("RECONCILER_DISABLED", "1")
	t.Setenv("RECONCILER_INTERVAL_MS", "1500")
	t.Setenv("RECONCILER_BATCH", "7")
	t.Setenv("ALLOCATION_STALE_MINUTES", "30")

	cfg := LoadWorkerConfig()
	assert.True(t, cfg.Disabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 7, cfg.BatchLimit)
	assert.Equal(t, 30*time.Minute, cfg.StaleAfter)
}

func TestLoadWorkerConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("RECONCILER_INTERVAL_MS", "not-a-number")
	t.Setenv("RECONCILER_BATCH", "-5")
	t.Setenv("ALLOCATION_STALE_MINUTES", "0")

	cfg := LoadWorkerConfig()
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 25, cfg.BatchLimit)
	assert.Equal(t, 10*time.Minute, cfg.StaleAfter)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, 2*time.Minute, cfg.TTL)
	assert.Equal(t, "suggestions", cfg.Prefix)
}
