package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/panyam/vecalc/runtime"
)

// Config holds settings read from the environment (and .env), before flag
// overrides are applied.
type Config struct {
	LogLevel runtime.LogLevel
	Seed     uint64
	HasSeed  bool
	JSON     bool
}

// LoadConfig loads envFile into the process environment and reads the
// VECALC_* settings. A missing envFile is only an error when required.
func LoadConfig(envFile string, required bool) (cfg Config, err error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("loading env file %s: %w", envFile, err)
			}
		}
	}

	cfg.LogLevel = runtime.LogLevelWarn
	if s := os.Getenv("VECALC_LOG_LEVEL"); s != "" {
		if cfg.LogLevel, err = runtime.ParseLogLevel(s); err != nil {
			return cfg, err
		}
	}
	if s := os.Getenv("VECALC_SEED"); s != "" {
		if cfg.Seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return cfg, fmt.Errorf("invalid VECALC_SEED %q: %w", s, err)
		}
		cfg.HasSeed = true
	}
	cfg.JSON = strings.EqualFold(os.Getenv("VECALC_FORMAT"), "json")
	return cfg, nil
}
