package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"SCHOOL_ENV_FILE", "APP_ENV", "APP_NAME", "APP_DEBUG", "APP_COMMAND_TIMEOUT",
	"ROUTINE_DAYS", "ROUTINE_PERIODS", "ROUTINE_BREAK_AFTER", "REFERENCE_PATH",
	"REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_DISABLED", "REDIS_REPORT_TTL",
	"LOG_LEVEL", "LOG_CALLER",
}

// clearEnv blanks every key Load reads. Blank values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
	t.Setenv("SCHOOL_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "school-core", cfg.App.Name)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Nil(t, cfg.Routine.Days)
	assert.Equal(t, 6, cfg.Routine.Periods)
	assert.Equal(t, 3, cfg.Routine.BreakAfter)
	assert.Empty(t, cfg.Reference.Path)
	assert.True(t, cfg.Redis.Disabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ReportTTL)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("ROUTINE_DAYS", "শনিবার, রবিবার ,,সোমবার")
	t.Setenv("ROUTINE_PERIODS", "7")
	t.Setenv("ROUTINE_BREAK_AFTER", "4")
	t.Setenv("REDIS_DISABLED", "false")
	t.Setenv("REDIS_REPORT_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.App.Environment)
	assert.Equal(t, []string{"শনিবার", "রবিবার", "সোমবার"}, cfg.Routine.Days)
	assert.Equal(t, 7, cfg.Routine.Periods)
	assert.Equal(t, 4, cfg.Routine.BreakAfter)
	assert.False(t, cfg.Redis.Disabled)
	assert.Equal(t, 90*time.Minute, cfg.Redis.ReportTTL)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	for _, k := range []string{"REFERENCE_PATH", "LOG_LEVEL"} {
		k := k
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("REFERENCE_PATH=/etc/school/reference.yaml\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("SCHOOL_ENV_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/school/reference.yaml", cfg.Reference.Path)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROUTINE_PERIODS", "4")
	t.Setenv("ROUTINE_BREAK_AFTER", "5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROUTINE_BREAK_AFTER")
}

func TestLoad_UnknownEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROUTINE_PERIODS", "six")
	t.Setenv("APP_DEBUG", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Routine.Periods)
	assert.False(t, cfg.App.Debug)
}

func TestValidate_RedisEnabled(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{CommandTimeout: time.Second},
		Routine: RoutineConfig{Periods: 6, BreakAfter: 3},
		Redis:   RedisConfig{Port: 70000, ReportTTL: 0},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_PORT")
	assert.Contains(t, err.Error(), "REDIS_REPORT_TTL")

	cfg.Redis.Disabled = true
	assert.NoError(t, cfg.Validate())
}
