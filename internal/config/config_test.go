package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NJDG_COOKIE_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Auth.AutoLoginGrace)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 100000, cfg.Data.ChunkSize)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "njdg.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9000

[data]
cases_path = "toml-cases.csv"
hearings_path = "toml-hearings.csv"
cache_ttl = "10m"

[auth]
cookie_secret = "from-toml"
auto_login_grace = "3s"
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NJDG_HEARINGS_CSV=env-file-hearings.csv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("NJDG_HEARINGS_CSV") })

	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Test case 1: environment beats the TOML file
	assert.Equal(t, 9100, cfg.Server.Port)

	// Test case 2: TOML beats defaults
	assert.Equal(t, "toml-cases.csv", cfg.Data.CasesPath)
	assert.Equal(t, 10*time.Minute, cfg.Data.CacheTTL)
	assert.Equal(t, "from-toml", cfg.Auth.CookieSecret)
	assert.Equal(t, 3*time.Second, cfg.Auth.AutoLoginGrace)

	// Test case 3: .env fills variables not set in the environment
	assert.Equal(t, "env-file-hearings.csv", cfg.Data.HearingsPath)
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport ="), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsPlaceholderSecret(t *testing.T) {
	t.Chdir(t.TempDir())

	// Test case 1: release mode with the built-in secret
	_, err := Load("")
	assert.Error(t, err)

	// Test case 2: test mode accepts it
	t.Setenv("GIN_MODE", "test")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, PlaceholderSecret, cfg.Auth.CookieSecret)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Auth.CookieSecret = "s3cret"
		return cfg
	}
	require.NoError(t, valid().Validate())

	// The built-in secret only passes in test mode
	assert.Error(t, Default().Validate())
	cfg := Default()
	cfg.Server.Mode = "test"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Store.Driver = "redis"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.CookieSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.MinPasswordLength = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Server.Mode = "production"
	assert.Error(t, cfg.Validate())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("NJDG_TEST_INT", "not-a-number")
	t.Setenv("NJDG_TEST_DURATION", "90s")
	t.Setenv("NJDG_TEST_BOOL", "true")

	assert.Equal(t, 7, getEnvAsInt("NJDG_TEST_INT", 7))
	assert.Equal(t, 90*time.Second, getEnvAsDuration("NJDG_TEST_DURATION", time.Second))
	assert.True(t, getEnvAsBool("NJDG_TEST_BOOL", false))
	assert.Equal(t, "fallback", getEnv("NJDG_TEST_UNSET", "fallback"))
}

func TestGetDSN(t *testing.T) {
	db := Default().Database
	assert.Equal(t, "host=localhost port=5432 user=postgres password=password dbname=njdg sslmode=disable", db.GetDSN())
}
