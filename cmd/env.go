package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/cache"
	"github.com/sells-group/livability-cli/internal/config"
	"github.com/sells-group/livability-cli/internal/mobility"
	"github.com/sells-group/livability-cli/internal/model"
	"github.com/sells-group/livability-cli/internal/pipeline"
	"github.com/sells-group/livability-cli/internal/poi"
	"github.com/sells-group/livability-cli/internal/safety"
	"github.com/sells-group/livability-cli/internal/transit"
	"github.com/sells-group/livability-cli/internal/vibe"
	"github.com/sells-group/livability-cli/pkg/anthropic"
	"github.com/sells-group/livability-cli/pkg/geocode"
)

// appEnv holds the wired pipeline and the handles commands need beyond it.
type appEnv struct {
	Orchestrator *pipeline.Orchestrator
	Cache        *cache.Cache
	Ledger       *poi.QuotaLedger
	store        cache.Store
}

func (e *appEnv) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			zap.L().Warn("closing cache store", zap.Error(err))
		}
	}
}

// buildEnv constructs every pipeline component from config.
func buildEnv(ctx context.Context) (*appEnv, error) {
	store, err := openStore(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close() //nolint:errcheck
		return nil, err
	}
	resultCache := cache.New(store, time.Duration(cfg.Cache.TTLHours)*time.Hour)

	safetyData, err := safety.LoadDataset()
	if err != nil {
		return nil, eris.Wrap(err, "load crime dataset")
	}

	staticStops, err := transit.LoadStaticDataset()
	if err != nil {
		return nil, eris.Wrap(err, "load transit dataset")
	}

	ledger := poi.NewQuotaLedger(cfg.Places.DailyBudget)
	metered := poi.NewMeteredProvider(
		cfg.Places.BaseURL, cfg.Places.APIKey,
		time.Duration(cfg.Places.TimeoutSecs)*time.Second, ledger,
	)
	mirrors := poi.NewMirrorProvider(
		cfg.Overpass.Mirrors,
		time.Duration(cfg.Overpass.TimeoutSecs)*time.Second,
	)

	var narrator vibe.Narrator
	if cfg.Anthropic.Key != "" {
		narrator = vibe.NewAnthropicNarrator(
			anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model,
		)
	}

	orch := pipeline.New(pipeline.Options{
		Geocoder: geocode.NewHTTPClient(
			cfg.Geocode.BaseURL,
			time.Duration(cfg.Geocode.TimeoutSecs)*time.Second,
			cfg.Geocode.RatePerSec,
		),
		SupportedState: cfg.Geocode.SupportedState,
		RadiusMiles:    cfg.Scoring.RadiusMiles,
		Safety:         safety.NewScorer(safetyData),
		POIs:           poi.NewCascade(metered, mirrors),
		Transit: transit.NewCascade(
			transit.NewHTTPProvider(cfg.Transit.BaseURL, time.Duration(cfg.Transit.TimeoutSecs)*time.Second),
			staticStops,
		),
		Mobility: mobility.NewScorer(cfg.Scoring.BikeNoise),
		Vibe:     vibe.NewScorer(configWeights(), narrator),
		Cache:    resultCache,
	})

	return &appEnv{
		Orchestrator: orch,
		Cache:        resultCache,
		Ledger:       ledger,
		store:        store,
	}, nil
}

func openStore(ctx context.Context, c config.CacheConfig) (cache.Store, error) {
	switch c.Driver {
	case "postgres":
		store, err := cache.NewPostgres(ctx, c.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "open postgres cache")
		}
		return store, nil
	default:
		store, err := cache.NewSQLite(c.Path)
		if err != nil {
			return nil, eris.Wrap(err, "open sqlite cache")
		}
		return store, nil
	}
}

func configWeights() model.Weights {
	return vibe.Normalize(model.Weights{
		Safety:      cfg.Scoring.WeightSafety,
		Walkability: cfg.Scoring.WeightWalk,
		Transit:     cfg.Scoring.WeightTransit,
		Amenities:   cfg.Scoring.WeightAmenity,
	}, nil)
}
