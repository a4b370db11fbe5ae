// Package pipeline orchestrates a single livability analysis: geocode,
// cache check, concurrent data fetches, scoring, and write-through.
package pipeline

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/livability-cli/internal/amenity"
	"github.com/sells-group/livability-cli/internal/cache"
	"github.com/sells-group/livability-cli/internal/mobility"
	"github.com/sells-group/livability-cli/internal/model"
	"github.com/sells-group/livability-cli/internal/poi"
	"github.com/sells-group/livability-cli/internal/safety"
	"github.com/sells-group/livability-cli/internal/transit"
	"github.com/sells-group/livability-cli/internal/vibe"
	"github.com/sells-group/livability-cli/pkg/geocode"
)

// ErrUnsupportedRegion is returned when the coordinate resolves outside the
// supported state or to no known place at all.
var ErrUnsupportedRegion = eris.New("pipeline: coordinate outside supported region")

// Request is one analysis query.
type Request struct {
	Coord     model.Coordinate
	Intent    model.Intent
	Overrides *model.Weights
}

// Orchestrator wires the scorers, cascades, and cache into the analysis
// pipeline. All fields are required except cache and narrator-bearing vibe
// scorers, which degrade gracefully when absent.
type Orchestrator struct {
	geocoder       geocode.Client
	supportedState string
	radiusMiles    float64

	safety   *safety.Scorer
	pois     *poi.Cascade
	transit  *transit.Cascade
	mobility *mobility.Scorer
	vibe     *vibe.Scorer
	cache    *cache.Cache

	validate *validator.Validate
	now      func() time.Time
}

// Options configures an Orchestrator.
type Options struct {
	Geocoder       geocode.Client
	SupportedState string
	RadiusMiles    float64
	Safety         *safety.Scorer
	POIs           *poi.Cascade
	Transit        *transit.Cascade
	Mobility       *mobility.Scorer
	Vibe           *vibe.Scorer
	Cache          *cache.Cache // nil disables caching
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		geocoder:       opts.Geocoder,
		supportedState: opts.SupportedState,
		radiusMiles:    opts.RadiusMiles,
		safety:         opts.Safety,
		pois:           opts.POIs,
		transit:        opts.Transit,
		mobility:       opts.Mobility,
		vibe:           opts.Vibe,
		cache:          opts.Cache,
		validate:       validator.New(),
		now:            time.Now,
	}
}

// WithNow overrides the clock for tests.
func (o *Orchestrator) WithNow(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Analyze runs the full pipeline for one request. The only errors it returns
// are input validation and region rejection; every provider failure degrades
// to a default sub-result inside its component.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*model.AnalysisResult, error) {
	if err := o.validate.Struct(req.Coord); err != nil {
		return nil, eris.Wrap(err, "pipeline: invalid coordinate")
	}
	if req.Intent != "" && !req.Intent.Valid() {
		return nil, eris.Errorf("pipeline: unknown intent %q", req.Intent)
	}

	log := zap.L().With(
		zap.Float64("lat", req.Coord.Lat),
		zap.Float64("lng", req.Coord.Lng),
	)

	place, err := o.resolvePlace(ctx, req.Coord)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("zip", place.ZIP), zap.String("jurisdiction", place.Jurisdiction))

	if o.cache != nil {
		if cached, ok := o.cache.Get(ctx, place.ZIP); ok {
			log.Debug("pipeline: cache hit")
			cached.Cached = true
			return cached, nil
		}
	}

	// Safety is a static lookup; the two cascades go out concurrently. The
	// errgroup closures never return errors, cascades degrade internally.
	safetyProfile := o.safety.Score(place.Jurisdiction)

	var (
		pois       []model.PointOfInterest
		poiSource  string
		stops      []model.TransitStop
		fromStatic bool
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pois, poiSource = o.pois.Fetch(gCtx, req.Coord, o.radiusMiles)
		return nil
	})
	g.Go(func() error {
		stops, fromStatic = o.transit.Fetch(gCtx, req.Coord, o.radiusMiles)
		return nil
	})
	g.Wait() //nolint:errcheck

	log.Debug("pipeline: data resolved",
		zap.Int("pois", len(pois)),
		zap.String("poi_source", poiSource),
		zap.Int("stops", len(stops)),
		zap.Bool("static_transit", fromStatic),
	)

	mobilityProfile := o.mobility.Profile(pois, stops, fromStatic)
	amenityProfile := amenity.Score(pois)

	vibeResult := o.vibe.Score(ctx, vibe.Input{
		Place:     place,
		Safety:    safetyProfile,
		Mobility:  mobilityProfile,
		Amenity:   amenityProfile,
		POIs:      pois,
		Intent:    req.Intent,
		Overrides: req.Overrides,
	})

	result := &model.AnalysisResult{
		RequestID:   uuid.New().String(),
		Coord:       req.Coord,
		Place:       place,
		Safety:      safetyProfile,
		Mobility:    mobilityProfile,
		Amenities:   amenityProfile,
		Vibe:        vibeResult,
		POICount:    len(pois),
		GeneratedAt: o.now().UTC(),
	}

	o.maybeCache(ctx, place.ZIP, req, result, log)
	return result, nil
}

func (o *Orchestrator) resolvePlace(ctx context.Context, coord model.Coordinate) (model.Place, error) {
	resolved, err := o.geocoder.ReverseGeocode(ctx, coord.Lat, coord.Lng)
	if err != nil {
		if eris.Is(err, geocode.ErrNoMatch) {
			return model.Place{}, ErrUnsupportedRegion
		}
		return model.Place{}, eris.Wrap(err, "pipeline: reverse geocode")
	}
	if resolved.State != o.supportedState {
		return model.Place{}, ErrUnsupportedRegion
	}
	return model.Place{
		ZIP:          resolved.ZIP,
		Jurisdiction: resolved.Jurisdiction,
		State:        resolved.State,
	}, nil
}

// maybeCache writes through unless the result is hollow or personalized.
// A personalized narrative must not leak to other callers of the same ZIP.
func (o *Orchestrator) maybeCache(ctx context.Context, zip string, req Request, result *model.AnalysisResult, log *zap.Logger) {
	if o.cache == nil {
		return
	}
	if result.POICount == 0 {
		log.Debug("pipeline: skipping cache, no POIs")
		return
	}
	if req.Intent != "" && req.Intent != model.IntentBalanced {
		log.Debug("pipeline: skipping cache, personalized intent")
		return
	}
	if err := o.cache.Put(ctx, zip, req.Coord, result); err != nil {
		log.Warn("pipeline: cache write failed", zap.Error(err))
	}
}
