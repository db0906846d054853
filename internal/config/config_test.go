package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "NO_AUTH", "FIREBASE_PROJECT_ID", "FIREBASE_SERVICE_ACCOUNT_JSON",
		"GOOGLE_APPLICATION_CREDENTIALS", "ADMIN_IDS", "FIXTURES_FILE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	// keep godotenv from picking up a developer's .env
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_DefaultsWithNoAuth(t *testing.T) {
	clearEnv(t)
	t.Setenv("NO_AUTH", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8088", cfg.Server.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.Playback.Tick)
	assert.Equal(t, 5, cfg.Playback.Step)
	assert.True(t, cfg.Auth.NoAuth)
}

func TestLoad_RequiresProjectWithoutNoAuth(t *testing.T) {
	clearEnv(t)
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "prepcircle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  read_timeout: 5s
auth:
  no_auth: true
  admins: [coord]
playback:
  tick: 250ms
  step: 10
log:
  level: debug
fixtures: seed.yaml
`), 0o644))

	t.Run("file only", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 250*time.Millisecond, cfg.Playback.Tick)
		assert.Equal(t, 10, cfg.Playback.Step)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "seed.yaml", cfg.Fixtures)
		assert.True(t, cfg.IsAdmin("coord"))
	})

	t.Run("env wins", func(t *testing.T) {
		t.Setenv("PORT", "7000")
		t.Setenv("ADMIN_IDS", " a , b ,")
		t.Setenv("FIXTURES_FILE", "other.yaml")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, []string{"a", "b"}, cfg.Auth.Admins)
		assert.False(t, cfg.IsAdmin("coord"))
		assert.Equal(t, "other.yaml", cfg.Fixtures)
	})
}

func TestLoad_InvalidPlayback(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth: {no_auth: true}\nplayback: {step: 0}\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestIsAdmin_Empty(t *testing.T) {
	cfg := Default()
	cfg.Auth.Admins = []string{""}
	assert.False(t, cfg.IsAdmin(""))
}

func TestNewAuthClient_NoAuth(t *testing.T) {
	c, err := NewAuthClient(context.Background(), AuthConfig{NoAuth: true})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewAuthClient_MissingCredentials(t *testing.T) {
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", "")
	_, err := NewAuthClient(context.Background(), AuthConfig{FirebaseProjectID: "p"})
	assert.Error(t, err)
}
