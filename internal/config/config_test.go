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
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "America/Toronto", cfg.Shop.Timezone)
	assert.Equal(t, 3, cfg.Shop.PublicCapacity)
	assert.Equal(t, 2, cfg.Shop.CustomerCapacity)
	assert.Equal(t, 30*time.Minute, cfg.AdminIdleTimeout.Duration)
	assert.Equal(t, ":8080", cfg.Addr())

	day, err := cfg.ClosedDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_port = "9000"
admin_idle_timeout = "10m"

[shop]
public_capacity = 4
closed_weekday = "sunday"
`), 0o600))

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("CUSTOMER_CAPACITY", "1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.ServerPort)
	assert.Equal(t, 4, cfg.Shop.PublicCapacity)
	assert.Equal(t, 1, cfg.Shop.CustomerCapacity)
	assert.Equal(t, 10*time.Minute, cfg.AdminIdleTimeout.Duration)

	day, err := cfg.ClosedDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SHOP_LAST_END=18:00\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SHOP_LAST_END") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "18:00", cfg.Shop.LastEnd)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdir(t, t.TempDir())

	for key, val := range map[string]string{
		"DB_DRIVER":          "oracle",
		"SHOP_TIMEZONE":      "Mars/Olympus",
		"SHOP_OPEN":          "9am",
		"PUBLIC_CAPACITY":    "three",
		"ADMIN_IDLE_TIMEOUT": "forever",
		"COOKIE_SECURE":      "sometimes",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadLists(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.CookieSecure)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
