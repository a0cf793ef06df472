package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wayfare/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Reaper.TTLSeconds)
	assert.Equal(t, 5*time.Minute, cfg.ReaperTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Share.Window)
	assert.Equal(t, "postgres://postgres:@localhost:5432/wayfare?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REAPER_TTL_SECONDS", "600")
	t.Setenv("SHARE_WINDOW", "24h")
	t.Setenv("CORS_ORIGINS", "https://wayfare.app,https://admin.wayfare.app")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.ReaperTTL())
	assert.Equal(t, 24*time.Hour, cfg.Share.Window)
	assert.Equal(t, []string{"https://wayfare.app", "https://admin.wayfare.app"}, cfg.Server.CORSOrigins)
}

func TestLoad_NegativeTTL(t *testing.T) {
	t.Setenv("REAPER_TTL_SECONDS", "-1")

	_, err := config.Load()
	assert.Error(t, err)
}
