package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, 24, cfg.Cache.TTLHours)
	assert.Equal(t, "Virginia", cfg.Geocode.SupportedState)
	assert.Equal(t, 300, cfg.Places.DailyBudget)
	assert.Len(t, cfg.Overpass.Mirrors, 3)
	assert.Equal(t, 3.0, cfg.Transit.RadiusMiles)
	assert.Equal(t, 8080, cfg.Server.Port)

	sum := cfg.Scoring.WeightSafety + cfg.Scoring.WeightWalk +
		cfg.Scoring.WeightTransit + cfg.Scoring.WeightAmenity
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LIVABILITY_CACHE_TTL_HOURS", "48")
	t.Setenv("LIVABILITY_GEOCODE_SUPPORTED_STATE", "Maryland")
	t.Setenv("LIVABILITY_PLACES_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 48, cfg.Cache.TTLHours)
	assert.Equal(t, "Maryland", cfg.Geocode.SupportedState)
	assert.Equal(t, "test-key", cfg.Places.APIKey)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
