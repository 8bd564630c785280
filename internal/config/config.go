// Package config reads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel    = "BINGO_LOG_LEVEL"
	EnvJSONLogs    = "BINGO_JSON_LOGS"
	EnvSeed        = "BINGO_SEED"
	EnvOptionsPath = "BINGO_OPTIONS"
	EnvCellSize    = "BINGO_CELL_SIZE"

	DefaultCellSize = 200
)

type Config struct {
	LogLevel zerolog.Level
	JSONLogs bool

	// Seed fixes the shuffle when HasSeed is set.
	Seed    uint64
	HasSeed bool

	// OptionsPath is an option list loaded at startup, if set.
	OptionsPath string

	CellSize float32
}

func Default() Config {
	return Config{
		LogLevel: zerolog.InfoLevel,
		CellSize: DefaultCellSize,
	}
}

// Load applies .env (when present) and then reads the environment.
func Load() (Config, []string) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment. Invalid values keep their defaults and
// are reported as warnings, since the logger does not exist yet.
func FromEnv() (Config, []string) {
	cfg := Default()
	var warnings []string

	if val := os.Getenv(EnvLogLevel); val != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(val))
		if err != nil || level == zerolog.NoLevel {
			warnings = append(warnings, fmt.Sprintf("invalid %s %q, using %s", EnvLogLevel, val, cfg.LogLevel))
		} else {
			cfg.LogLevel = level
		}
	}

	if val := os.Getenv(EnvJSONLogs); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid %s %q, using false", EnvJSONLogs, val))
		} else {
			cfg.JSONLogs = b
		}
	}

	if val := os.Getenv(EnvSeed); val != "" {
		seed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid %s %q, using a random seed", EnvSeed, val))
		} else {
			cfg.Seed = seed
			cfg.HasSeed = true
		}
	}

	cfg.OptionsPath = strings.TrimSpace(os.Getenv(EnvOptionsPath))

	if val := os.Getenv(EnvCellSize); val != "" {
		size, err := strconv.ParseFloat(val, 32)
		if err != nil || size < 40 {
			warnings = append(warnings, fmt.Sprintf("invalid %s %q, using %d", EnvCellSize, val, DefaultCellSize))
		} else {
			cfg.CellSize = float32(size)
		}
	}

	return cfg, warnings
}
