package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"availability-system/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 24*time.Hour, cfg.Availability.MaxSlotDuration)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Empty(t, cfg.Redis.Addr)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Empty(t, cfg.Server.TrustedProxies)
	})

	t.Run("trusted proxies from env", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("AVAIL_SERVER_TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Server.TrustedProxies)
	})

	t.Run("non-positive shutdown timeout", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("AVAIL_SERVER_SHUTDOWN_TIMEOUT", "0s")

		_, err := config.Load("")
		require.ErrorContains(t, err, "shutdown_timeout")
	})

	t.Run("legacy env names", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PORT", "9090")
		t.Setenv("POSTGRES_DSN", "postgres://u:p@db:5432/x?sslmode=disable")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "postgres://u:p@db:5432/x?sslmode=disable", cfg.Database.DSN)
	})

	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := "server:\n  port: 7000\navailability:\n  max_slot_duration: 12h\nlog:\n  format: console\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Server.Port)
		assert.Equal(t, 12*time.Hour, cfg.Availability.MaxSlotDuration)
		assert.Equal(t, "console", cfg.Log.Format)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("AVAIL_SERVER_PORT", "70000")

		_, err := config.Load("")
		require.Error(t, err)
	})
}
