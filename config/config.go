// Package config loads runtime settings from the environment, with an
// optional .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvSubmitDelay = "ESTIMATES_SUBMIT_DELAY"
	EnvPageSize    = "ESTIMATES_PAGE_SIZE"
	EnvSeed        = "ESTIMATES_SEED"
	EnvLogLevel    = "ESTIMATES_LOG_LEVEL"
	EnvLogFormat   = "ESTIMATES_LOG_FORMAT"
	EnvCurrency    = "ESTIMATES_CURRENCY"
)

type Config struct {
	SubmitDelay time.Duration
	PageSize    int
	Seed        bool
	LogLevel    string
	// LogFormat is "console" or "json".
	LogFormat string
	Currency  string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		SubmitDelay: 300 * time.Millisecond,
		PageSize:    10,
		Seed:        true,
		LogLevel:    "info",
		LogFormat:   "console",
		Currency:    "$",
	}
}

// Load reads files (".env" when none are given) into the process
// environment without overriding variables that are already set, then
// builds a Config from the environment. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables over Default.
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvSubmitDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("%s: invalid duration %q", EnvSubmitDelay, v)
		}
		cfg.SubmitDelay = d
	}
	if v, ok := lookup(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: must be a positive integer, got %q", EnvPageSize, v)
		}
		cfg.PageSize = n
	}
	if v, ok := lookup(EnvSeed); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid boolean %q", EnvSeed, v)
		}
		cfg.Seed = b
	}
	if v, ok := lookup(EnvLogLevel); ok {
		if _, err := zapcore.ParseLevel(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		v = strings.ToLower(v)
		if v != "console" && v != "json" {
			return Config{}, fmt.Errorf("%s: want console or json, got %q", EnvLogFormat, v)
		}
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvCurrency); ok {
		cfg.Currency = v
	}
	return cfg, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// NewLogger builds the zap logger described by cfg: JSON production output
// for "json", human-readable development output otherwise.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
