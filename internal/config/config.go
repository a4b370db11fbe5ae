package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Geocode   GeocodeConfig   `yaml:"geocode" mapstructure:"geocode"`
	Places    PlacesConfig    `yaml:"places" mapstructure:"places"`
	Overpass  OverpassConfig  `yaml:"overpass" mapstructure:"overpass"`
	Transit   TransitConfig   `yaml:"transit" mapstructure:"transit"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CacheConfig configures the result cache backend.
type CacheConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite or postgres
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	TTLHours    int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// GeocodeConfig configures the reverse geocoding collaborator.
type GeocodeConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	SupportedState string  `yaml:"supported_state" mapstructure:"supported_state"`
	RatePerSec     float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// PlacesConfig configures the primary metered POI provider.
type PlacesConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	DailyBudget int    `yaml:"daily_budget" mapstructure:"daily_budget"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// OverpassConfig configures the mirrored fallback POI provider.
type OverpassConfig struct {
	Mirrors     []string `yaml:"mirrors" mapstructure:"mirrors"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// TransitConfig configures the live transit-stop provider.
type TransitConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RadiusMiles float64 `yaml:"radius_miles" mapstructure:"radius_miles"`
}

// AnthropicConfig configures the optional narrative generator.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ScoringConfig holds tunable scoring knobs. The label-rule thresholds are
// empirically chosen constants; they live in internal/vibe as named
// constants, while the caller-facing defaults live here.
type ScoringConfig struct {
	RadiusMiles   float64 `yaml:"radius_miles" mapstructure:"radius_miles"`
	BikeNoise     bool    `yaml:"bike_noise" mapstructure:"bike_noise"`
	WeightSafety  float64 `yaml:"weight_safety" mapstructure:"weight_safety"`
	WeightWalk    float64 `yaml:"weight_walk" mapstructure:"weight_walk"`
	WeightTransit float64 `yaml:"weight_transit" mapstructure:"weight_transit"`
	WeightAmenity float64 `yaml:"weight_amenity" mapstructure:"weight_amenity"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LIVABILITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("cache.driver", "sqlite")
	v.SetDefault("cache.path", "livability.db")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("geocode.base_url", "https://geocoding.geo.census.gov/geocoder")
	v.SetDefault("geocode.timeout_secs", 15)
	v.SetDefault("geocode.supported_state", "Virginia")
	v.SetDefault("geocode.rate_per_sec", 2)
	v.SetDefault("cache.database_url", "")
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("places.api_key", "")
	v.SetDefault("places.daily_budget", 300)
	v.SetDefault("places.timeout_secs", 20)
	v.SetDefault("overpass.mirrors", []string{
		"https://overpass-api.de/api/interpreter",
		"https://overpass.kumi.systems/api/interpreter",
		"https://maps.mail.ru/osm/tools/overpass/api/interpreter",
	})
	v.SetDefault("overpass.timeout_secs", 30)
	v.SetDefault("transit.base_url", "")
	v.SetDefault("transit.timeout_secs", 15)
	v.SetDefault("transit.radius_miles", 3.0)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("scoring.radius_miles", 2.0)
	v.SetDefault("scoring.bike_noise", true)
	v.SetDefault("scoring.weight_safety", 0.35)
	v.SetDefault("scoring.weight_walk", 0.25)
	v.SetDefault("scoring.weight_transit", 0.15)
	v.SetDefault("scoring.weight_amenity", 0.25)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
