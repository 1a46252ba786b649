// Package config loads runtime settings from the environment (and an
// optional .env file) and configures logging.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/roach88/tally/internal/table"
)

// Environment variables read by Load.
const (
	EnvEnvironment = "ENV"
	EnvLogLevel    = "LOGLEVEL"
	EnvSortMode    = "TALLY_SORT_MODE"
	EnvDataset     = "TALLY_DATASET"
	EnvJournal     = "TALLY_JOURNAL"
	EnvUserLatency = "TALLY_USER_LATENCY"
)

// Config holds runtime settings. Command-line flags override these.
type Config struct {
	Env         string
	LogLevel    string
	SortMode    table.SortMode
	DatasetPath string
	JournalPath string
	UserLatency time.Duration
}

// Production reports whether ENV=production.
func (c Config) Production() bool {
	return c.Env == "production"
}

// Load reads a .env file if one exists, then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	dotenvErr := godotenv.Load()
	cfg, err := FromLookup(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	if dotenvErr == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	}
	return cfg, nil
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(getenv func(string) string) (Config, error) {
	cfg := Config{
		Env:         getenv(EnvEnvironment),
		LogLevel:    strings.ToLower(getenv(EnvLogLevel)),
		DatasetPath: getenv(EnvDataset),
		JournalPath: getenv(EnvJournal),
	}

	mode, err := table.ParseSortMode(getenv(EnvSortMode))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvSortMode, err)
	}
	cfg.SortMode = mode

	if v := getenv(EnvUserLatency); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvUserLatency, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("%s: negative duration %s", EnvUserLatency, v)
		}
		cfg.UserLatency = d
	}

	return cfg, nil
}

// SetupLogging configures the global zerolog logger. Production writes JSON
// with unix timestamps; anything else gets a console writer. verbose forces
// debug level.
func SetupLogging(cfg Config, verbose bool, w io.Writer) {
	if cfg.Production() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	level := ParseLevel(cfg.LogLevel, cfg.Production())
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if !knownLevel(cfg.LogLevel) {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", cfg.LogLevel)
	}
}

// ParseLevel maps a LOGLEVEL value to a zerolog level. Empty selects warn in
// production and info elsewhere; unknown values select info.
func ParseLevel(s string, production bool) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	case "":
		if production {
			return zerolog.WarnLevel
		}
		return zerolog.InfoLevel
	}
	return zerolog.InfoLevel
}

func knownLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
		return true
	}
	return false
}
