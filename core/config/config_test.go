package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"untis-notifier/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.False(t, cfg.Server.EnableWeb)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, snapshot.BackendDatabase, cfg.Snapshot.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Poll.Interval)
	assert.True(t, cfg.Poll.Timetable)
	assert.True(t, cfg.Poll.Console)
	assert.Equal(t, 10, cfg.Discord.TimeoutSeconds)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("UNTIS_SCHOOL", "example-school")
	t.Setenv("UNTIS_USERNAME", "jane")
	t.Setenv("POLL_INTERVAL", "90s")
	t.Setenv("POLL_EXAMS", "false")
	t.Setenv("SNAPSHOT_BACKEND", "redis")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "example-school", cfg.Untis.School)
	assert.Equal(t, "jane", cfg.Untis.Username)
	assert.Equal(t, 90*time.Second, cfg.Poll.Interval)
	assert.False(t, cfg.Poll.Exams)
	assert.Equal(t, snapshot.BackendRedis, cfg.Snapshot.Backend)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "DISCORD_WEBHOOK_URL=https://discord.example/api/webhooks/1/abc\nDISCORD_USER_ID=42\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("DISCORD_WEBHOOK_URL")
		os.Unsetenv("DISCORD_USER_ID")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://discord.example/api/webhooks/1/abc", cfg.Discord.WebhookURL)
	assert.Equal(t, "42", cfg.Discord.UserID)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		cfg.Untis.URL = "https://example.webuntis.com"
		cfg.Untis.School = "example-school"
		cfg.Untis.Username = "jane"
		cfg.Untis.Password = "secret"
		return cfg
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Untis.Password = ""
	assert.ErrorContains(t, cfg.Validate(), "password")

	cfg = valid()
	cfg.Snapshot.Backend = "cassandra"
	assert.ErrorContains(t, cfg.Validate(), "unknown snapshot backend")

	cfg = valid()
	cfg.Poll.Interval = 0
	assert.ErrorContains(t, cfg.Validate(), "invalid poll interval")
}
