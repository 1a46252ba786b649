package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/table"
)

func lookup(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, Config{SortMode: table.SortModeShared}, cfg)
	assert.False(t, cfg.Production())
}

func TestFromLookup_AllSet(t *testing.T) {
	cfg, err := FromLookup(lookup(map[string]string{
		EnvEnvironment: "production",
		EnvLogLevel:    "DEBUG",
		EnvSortMode:    "column",
		EnvDataset:     "shop.cue",
		EnvJournal:     "tally.db",
		EnvUserLatency: "250ms",
	}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Env:         "production",
		LogLevel:    "debug",
		SortMode:    table.SortModeColumn,
		DatasetPath: "shop.cue",
		JournalPath: "tally.db",
		UserLatency: 250 * time.Millisecond,
	}, cfg)
	assert.True(t, cfg.Production())
}

func TestFromLookup_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"sort mode":        {EnvSortMode: "global"},
		"latency":          {EnvUserLatency: "soon"},
		"negative latency": {EnvUserLatency: "-1s"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookup(env))
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug", false))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning", false))
	assert.Equal(t, zerolog.Disabled, ParseLevel("disabled", true))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("", false))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("", true))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty", true))
}

func TestSetupLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	SetupLogging(Config{Env: "production", LogLevel: "error"}, false, &buf)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	log.Error().Str("k", "v").Msg("boom")
	assert.Contains(t, buf.String(), `"message":"boom"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	SetupLogging(Config{LogLevel: "error"}, true, &buf)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetupLogging_WarnsOnUnknownLevel(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	SetupLogging(Config{Env: "production", LogLevel: "chatty"}, false, &buf)

	assert.Contains(t, buf.String(), "Unknown LOGLEVEL 'chatty'")
}
