package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/work-hours-logger/internal/config"
)

func TestLoadFromWritesTemplateOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBackend, cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.Path)
	assert.Equal(t, config.DefaultRollingDays, cfg.Summary.RollingDays)
	assert.Equal(t, time.Minute, cfg.MinSession())

	_, err = os.Stat(config.FilePath(dir))
	require.NoError(t, err, "template should have been written")

	// The template itself must parse.
	again, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadFromFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	body := `// partial
{
  "summary": { "standard_hours": 7.5 },
  // comment inside
  "timer": { "min_session": "30s" },
  "storage": { "backend": "sqlite", "path": "db" }
}
`
	require.NoError(t, os.WriteFile(config.FilePath(dir), []byte(body), 0o600))

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, 7.5, cfg.Summary.StandardHours)
	assert.Equal(t, config.DefaultRollingDays, cfg.Summary.RollingDays)
	assert.Equal(t, 30*time.Second, cfg.MinSession())
	assert.Equal(t, config.DefaultTick, cfg.Tick())
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "db"), cfg.Storage.Path)
	assert.Equal(t, config.DefaultProvider, cfg.Auth.Provider)
	assert.NotNil(t, cfg.Auth.Users)
}

func TestLoadFromRejectsBrokenJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(config.FilePath(dir), []byte("{ not json"), 0o600))

	_, err := config.LoadFrom(dir)
	assert.Error(t, err)
}

func TestBadDurationsFallBack(t *testing.T) {
	cfg := config.Config{Timer: config.TimerConfig{MinSession: "soon", Tick: "-1s"}}
	assert.Equal(t, config.DefaultMinSession, cfg.MinSession())
	assert.Equal(t, config.DefaultTick, cfg.Tick())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)

	cfg.Auth.Users["alice"] = "$argon2id$hash"
	require.NoError(t, config.Save(dir, cfg))

	got, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "$argon2id$hash", got.Auth.Users["alice"])
}

func TestHomeHonoursEnv(t *testing.T) {
	t.Setenv(config.HomeEnv, "/tmp/whl-test")
	dir, err := config.Home()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/whl-test", dir)
}
