package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSubmitDelay, EnvPageSize, EnvSeed, EnvLogLevel, EnvLogFormat, EnvCurrency} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 300*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 10, cfg.PageSize)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSubmitDelay, "0s")
	t.Setenv(EnvPageSize, "25")
	t.Setenv(EnvSeed, "false")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvCurrency, "₹")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{
		SubmitDelay: 0,
		PageSize:    25,
		Seed:        false,
		LogLevel:    "debug",
		LogFormat:   "json",
		Currency:    "₹",
	}, cfg)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvSubmitDelay, "soon"},
		{EnvSubmitDelay, "-1s"},
		{EnvPageSize, "0"},
		{EnvPageSize, "ten"},
		{EnvSeed, "maybe"},
		{EnvLogLevel, "loud"},
		{EnvLogFormat, "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ESTIMATES_PAGE_SIZE=50\nESTIMATES_CURRENCY=EUR\n"), 0o600))
	t.Setenv(EnvCurrency, "GBP")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "GBP", cfg.Currency)
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg.LogLevel = "nope"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}
