package tenant

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTenantConfig(t *testing.T, home, tenantID string, cfg map[string]any) string {
	t.Helper()
	dir := filepath.Join(home, "blindcal-server", "config", tenantID)
	require.NoError(t, os.MkdirAll(dir, 0755))
	data, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(dir, "env.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadTenantConfig(t *testing.T) {
	t.Run("mints and persists a JWT secret when none is provisioned", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		writeTenantConfig(t, home, "acme", map[string]any{
			"tenantId": "acme",
			"domains":  []string{"acme.example.com"},
			"status":   "active",
		})

		cfg, err := LoadTenantConfig("acme", nil)
		require.NoError(t, err)
		require.NotEmpty(t, cfg.JWTSecret)
		assert.Len(t, cfg.JWTSecret, 64, "hex-encoded key of the requested length")

		// The minted secret survives a reload, sessions stay valid.
		again, err := LoadTenantConfig("acme", nil)
		require.NoError(t, err)
		assert.Equal(t, cfg.JWTSecret, again.JWTSecret)
	})

	t.Run("keeps a provisioned secret untouched", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		writeTenantConfig(t, home, "acme", map[string]any{
			"tenantId":   "acme",
			"JWT_SECRET": "operator-chosen-secret",
		})

		cfg, err := LoadTenantConfig("acme", nil)
		require.NoError(t, err)
		assert.Equal(t, "operator-chosen-secret", cfg.JWTSecret)
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		_, err := LoadTenantConfig("ghost", nil)
		require.Error(t, err)
	})

	t.Run("computed paths are filled in", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		writeTenantConfig(t, home, "acme", map[string]any{
			"tenantId":   "acme",
			"JWT_SECRET": "s",
		})

		cfg, err := LoadTenantConfig("acme", nil)
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.TenantID)
		assert.Equal(t, filepath.Join(home, "blindcal-server", "db", "acme", "blindcal.db"), cfg.SQLitePath)
	})
}
