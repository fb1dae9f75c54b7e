package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8443", cfg.Server.Addr)
	assert.Equal(t, 1.0, cfg.Server.RatePerSecond)
	assert.Equal(t, 3, cfg.Server.RateBurst)
	assert.Equal(t, "operator", cfg.Auth.OperatorLogin)
	assert.Equal(t, "microgreens.csv", cfg.Catalog.Path)
	assert.Equal(t, 0.31, cfg.Microgreens.EnergyCostEURkWh)
	assert.Equal(t, 12.0, cfg.Microgreens.LightHoursPerDay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Server.TLS())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "estimator.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9000"
tls_cert = "server.crt"
tls_key = "server.key"

[microgreens]
energy_cost_eur_kwh = 0.27
`), 0o644))

	t.Setenv("ESTIMATOR_LOG_LEVEL", "debug")
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("ADMIN_PEER_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.Server.TLS())
	assert.Equal(t, 0.27, cfg.Microgreens.EnergyCostEURkWh)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "secret", cfg.Auth.TokenKey)
	assert.Equal(t, int64(42), cfg.Bot.AdminPeerID)

	// Found by name when no explicit path is given.
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.ValidateServer()
	assert.True(t, errors.Is(err, ErrMissingSetting))
	assert.Contains(t, errors.FlattenHints(err), "TOKEN_KEY")

	cfg.Auth.TokenKey = "k"
	assert.NoError(t, cfg.ValidateServer())

	assert.True(t, errors.Is(cfg.ValidateBot(), ErrMissingSetting))
	cfg.Bot.Token, cfg.Bot.AdminPeerID = "t", 1
	assert.NoError(t, cfg.ValidateBot())
}
