package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"AISTACK_DB", "AISTACK_LOG_FILE", "AISTACK_LOG_LEVEL", "AISTACK_CATALOG",
		"AISTACK_FEEDBACK_DELAY", "AISTACK_SETTLE_DELAY", "AISTACK_READY_DELAY", "AISTACK_CONFIRM_DELAY",
		"AISTACK_PROFILE_FORM", "AISTACK_SEED"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("AISTACK_FEEDBACK_DELAY", "250ms")
	t.Setenv("AISTACK_SETTLE_DELAY", "2s")
	t.Setenv("AISTACK_PROFILE_FORM", "true")
	t.Setenv("AISTACK_SEED", "42")
	t.Setenv("AISTACK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.FeedbackDelay)
	assert.Equal(t, 2*time.Second, cfg.SettleDelay)
	assert.True(t, cfg.ProfileForm)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("AISTACK_READY_DELAY", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero feedback", func(c *Config) { c.FeedbackDelay = 0 }, "feedback delay"},
		{"negative settle", func(c *Config) { c.SettleDelay = -time.Second }, "settle delay"},
		{"zero ready", func(c *Config) { c.ReadyDelay = 0 }, "ready delay"},
		{"negative confirm", func(c *Config) { c.ConfirmDelay = -1 }, "confirm delay"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var fe *FieldError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoggingEnabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.LoggingEnabled())
	cfg.LogLevel = "OFF"
	assert.False(t, cfg.LoggingEnabled())
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(dir, "nested", "x.db")
	p, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, p)
	assert.DirExists(t, filepath.Join(dir, "nested"))

	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultConfig().ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aistack", "aistack.db"), p)
}

func TestResolveLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	p, err := DefaultConfig().ResolveLogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aistack", "aistack.log"), p)
	assert.DirExists(t, filepath.Join(dir, "aistack"))
}

func TestEnsureDir_SkipsDSN(t *testing.T) {
	assert.NoError(t, EnsureDir("file::memory:?cache=shared"))
	assert.NoError(t, EnsureDir(":memory:"))
}
