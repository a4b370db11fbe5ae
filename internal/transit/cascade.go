package transit

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/model"
)

// Cascade queries the live provider and falls back to the static stop table
// when it yields nothing. The second return reports the static path, which
// forces downstream recomputation of the transit and bike sub-scores.
type Cascade struct {
	live   LiveProvider
	static *StaticDataset
}

// NewCascade creates the transit cascade.
func NewCascade(live LiveProvider, static *StaticDataset) *Cascade {
	return &Cascade{live: live, static: static}
}

// Fetch returns the transit stops for a coordinate. It never returns an
// error: a failed live call degrades to the static table, and a coordinate
// outside the static table's coverage yields an empty set.
func (c *Cascade) Fetch(ctx context.Context, center model.Coordinate, radiusMiles float64) (stops []model.TransitStop, fromStatic bool) {
	live, err := c.live.StopsNear(ctx, center, radiusMiles)
	if err != nil {
		zap.L().Warn("transit: live provider failed, using static table",
			zap.String("provider", c.live.Name()),
			zap.Error(err),
		)
	} else if len(live) > 0 {
		return live, false
	}

	static := c.static.StopsWithin(center, radiusMiles)
	zap.L().Debug("transit: served from static table",
		zap.Int("count", len(static)),
	)
	return static, true
}
