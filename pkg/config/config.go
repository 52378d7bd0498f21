package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvWorkers       = "PCTRANK_WORKERS"
	EnvLogLevel      = "PCTRANK_LOG_LEVEL"
	EnvLogFormat     = "PCTRANK_LOG_FORMAT"
	EnvMaxBinCeiling = "PCTRANK_MAX_BIN_CEILING"
	EnvFootprint     = "PCTRANK_FOOTPRINT"
	EnvUpdateRepo    = "PCTRANK_UPDATE_REPO"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	DefaultMaxBinCeiling = 1 << 16
	DefaultFootprint     = "disk:1"
	DefaultUpdateRepo    = "Fepozopo/pctrank"
)

// Config holds the settings shared by every command. Flags override it.
type Config struct {
	Workers       int
	LogLevel      string
	LogFormat     string
	MaxBinCeiling int
	Footprint     string
	UpdateRepo    string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Workers:       runtime.GOMAXPROCS(0),
		LogLevel:      "info",
		LogFormat:     FormatConsole,
		MaxBinCeiling: DefaultMaxBinCeiling,
		Footprint:     DefaultFootprint,
		UpdateRepo:    DefaultUpdateRepo,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and then builds a Config from it. Missing files are
// ignored; variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the PCTRANK_* variables.
func FromEnv() (*Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		if n > 0 {
			cfg.Workers = n
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		switch f := strings.ToLower(v); f {
		case FormatConsole, FormatJSON:
			cfg.LogFormat = f
		default:
			return nil, fmt.Errorf("%s: unknown format %q (want console or json)", EnvLogFormat, v)
		}
	}
	if v, ok := lookup(EnvMaxBinCeiling); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvMaxBinCeiling, err)
		}
		cfg.MaxBinCeiling = min(max(n, 2), DefaultMaxBinCeiling)
	}
	if v, ok := lookup(EnvFootprint); ok {
		cfg.Footprint = v
	}
	if v, ok := lookup(EnvUpdateRepo); ok {
		cfg.UpdateRepo = v
	}
	return cfg, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
