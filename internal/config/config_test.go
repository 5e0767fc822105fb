package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresVisitsTable(t *testing.T) {
	t.Setenv("VISITS_TABLE", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VISITS_TABLE")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VISITS_TABLE", "sales_visits")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("VENDOR_ID", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "sales_visits", cfg.Dynamo.Table)
	assert.Equal(t, 24*time.Hour, cfg.Form.SessionTTL)
	assert.Equal(t, DefaultVendorID, cfg.Form.VendorID)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VISITS_TABLE", "sales_visits")
	t.Setenv("PORT", "127.0.0.1:8080")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("VENDOR_ID", "vendor-9")
	t.Setenv("PUBLIC_BASE_URL", "https://bot.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 45*time.Minute, cfg.Form.SessionTTL)
	assert.Equal(t, "vendor-9", cfg.Form.VendorID)
	assert.Equal(t, "https://bot.example.com", cfg.Twilio.PublicBaseURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("VISITS_TABLE", "sales_visits")

	t.Setenv("SESSION_TTL", "pronto")
	_, err := Load()
	assert.Error(t, err)
	t.Setenv("SESSION_TTL", "")

	t.Setenv("REDIS_DB", "uno")
	_, err = Load()
	assert.Error(t, err)
	t.Setenv("REDIS_DB", "")

	t.Setenv("PORT", "80 80")
	_, err = Load()
	assert.Error(t, err)
}
