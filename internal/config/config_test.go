package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("KOTLINCONF_MASTER_SECRET", "")
	t.Setenv("KOTLINCONF_ADMIN_SECRET", "")

	_, err := Load(Overrides{})
	require.Error(t, err)

	_, err = Load(Overrides{MasterSecret: strPtr("m")})
	require.Error(t, err)

	cfg, err := Load(Overrides{MasterSecret: strPtr("m"), AdminSecret: strPtr("a")})
	require.NoError(t, err)
	require.Equal(t, "m", cfg.MasterSecret)
	require.Equal(t, "a", cfg.AdminSecret)
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("KOTLINCONF_MASTER_SECRET", "m")
	t.Setenv("KOTLINCONF_ADMIN_SECRET", "a")
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_PATH", "/tmp/conf.db")
	t.Setenv("SYNC_INTERVAL", "90s")
	t.Setenv("DEBUG", "1")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	require.Equal(t, ":9001", cfg.Addr)
	require.Equal(t, "/tmp/conf.db", cfg.DatabasePath)
	require.Equal(t, 90*time.Second, cfg.SyncInterval)
	require.Equal(t, time.UTC, cfg.ScheduleTimezone)
	require.True(t, cfg.Debug)
}

func TestLoadScheduleTimezone(t *testing.T) {
	t.Setenv("KOTLINCONF_MASTER_SECRET", "m")
	t.Setenv("KOTLINCONF_ADMIN_SECRET", "a")

	cfg, err := Load(Overrides{ScheduleTimezone: strPtr("America/New_York")})
	require.NoError(t, err)
	require.Equal(t, "America/New_York", cfg.ScheduleTimezone.String())

	_, err = Load(Overrides{ScheduleTimezone: strPtr("Not/AZone")})
	require.Error(t, err)
}

func TestLoadOverridesWinOverEnv(t *testing.T) {
	t.Setenv("KOTLINCONF_MASTER_SECRET", "env-m")
	t.Setenv("KOTLINCONF_ADMIN_SECRET", "env-a")
	t.Setenv("PORT", "9001")

	interval := 10 * time.Second
	debug := false
	cfg, err := Load(Overrides{
		Addr:          strPtr(":0"),
		DatabasePath:  strPtr(":memory:"),
		SessionizeURL: strPtr("https://example.test/schedule"),
		SyncInterval:  &interval,
		Debug:         &debug,
	})
	require.NoError(t, err)
	require.Equal(t, ":0", cfg.Addr)
	require.Equal(t, ":memory:", cfg.DatabasePath)
	require.Equal(t, "https://example.test/schedule", cfg.SessionizeURL)
	require.Equal(t, interval, cfg.SyncInterval)
	require.False(t, cfg.Debug)
}
