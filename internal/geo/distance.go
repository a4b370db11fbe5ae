// Package geo provides the distance math shared by scorers and cascades.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/sells-group/livability-cli/internal/model"
)

const metersPerMile = 1609.344

// DistanceMiles returns the great-circle distance between two coordinates
// in miles, rounded to two decimals (the precision POIs carry).
func DistanceMiles(a, b model.Coordinate) float64 {
	meters := orbgeo.DistanceHaversine(
		orb.Point{a.Lng, a.Lat},
		orb.Point{b.Lng, b.Lat},
	)
	return math.Round(meters/metersPerMile*100) / 100
}

// MilesToMeters converts a radius in miles to meters for provider queries.
func MilesToMeters(miles float64) float64 {
	return miles * metersPerMile
}
