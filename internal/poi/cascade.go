package poi

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/model"
)

// Cascade tries the primary metered provider, then the mirrored fallback,
// stopping at the first authoritative result. An empty result from a
// configured primary is trusted and does not fall back.
type Cascade struct {
	primary   Provider
	secondary Provider
}

// NewCascade creates the amenity cascade.
func NewCascade(primary, secondary Provider) *Cascade {
	return &Cascade{primary: primary, secondary: secondary}
}

// Fetch returns the POIs for a coordinate and the name of the provider that
// supplied them. It never returns an error: a fully failed cascade degrades
// to an empty set.
func (c *Cascade) Fetch(ctx context.Context, center model.Coordinate, radiusMiles float64) ([]model.PointOfInterest, string) {
	res, err := c.primary.Search(ctx, center, radiusMiles)
	if err != nil {
		zap.L().Warn("poi: primary provider error",
			zap.String("provider", c.primary.Name()),
			zap.Error(err),
		)
		res = Result{Outcome: OutcomeUnavailable}
	}

	switch res.Outcome {
	case OutcomeData:
		zap.L().Debug("poi: primary provider served",
			zap.String("provider", c.primary.Name()),
			zap.Int("count", len(res.POIs)),
		)
		return res.POIs, c.primary.Name()
	case OutcomeEmpty:
		// Configured-but-empty is authoritative.
		return nil, c.primary.Name()
	}

	res, err = c.secondary.Search(ctx, center, radiusMiles)
	if err != nil {
		zap.L().Warn("poi: secondary provider error",
			zap.String("provider", c.secondary.Name()),
			zap.Error(err),
		)
		return nil, c.secondary.Name()
	}

	zap.L().Debug("poi: secondary provider served",
		zap.String("provider", c.secondary.Name()),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("count", len(res.POIs)),
	)
	return res.POIs, c.secondary.Name()
}
