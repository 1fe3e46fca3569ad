package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("INTERNAL_KEY", "k")
	t.Setenv("ENCRYPTER_KEY", "0123456789abcdef")
}

// unsetForTest removes key for the duration of the test and restores it afterwards.
func unsetForTest(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)
	unsetForTest(t, "ENV")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, 15*time.Minute, cfg.Alert.DedupWindow)
	assert.Equal(t, 50, cfg.Alert.RateLimitPerHour)
	assert.Equal(t, time.Hour, cfg.Alert.RateLimitWindow)
	assert.Equal(t, 3, cfg.Webhook.MaxRetries)
	assert.Equal(t, time.Second, cfg.Webhook.BaseDelay)
	assert.Equal(t, 2.0, cfg.Webhook.BackoffMultiplier)
	assert.Equal(t, []string{"premium"}, cfg.Plan.PremiumMarkers)
	assert.Equal(t, 10, cfg.Plan.WeightPremium)
	assert.True(t, cfg.IsProduction())
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("ALERT_RATE_LIMIT_PER_HOUR=7\nENV=development\n"), 0o600))
	t.Chdir(dir)
	setRequired(t)
	unsetForTest(t, "ALERT_RATE_LIMIT_PER_HOUR")
	unsetForTest(t, "ENV")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Alert.RateLimitPerHour)
	assert.False(t, cfg.IsProduction())
}

func TestLoadValidation(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("INTERNAL_KEY", "k")
	t.Setenv("ENCRYPTER_KEY", "short")
	_, err := Load()
	assert.Error(t, err)

	setRequired(t)
	t.Setenv("WEBHOOK_MAX_RETRIES", "-1")
	_, err = Load()
	assert.Error(t, err)
}
