// Package mobility derives the walk, transit, and bike sub-scores from the
// POI and transit-stop sets the cascades return.
package mobility

import (
	"math"
	"math/rand/v2"

	"github.com/sells-group/livability-cli/internal/model"
)

// Category importance weights for walkability. Daily-needs categories
// dominate; generic categories contribute little.
var categoryWeights = map[model.Category]float64{
	model.CategoryGrocery:       3.0,
	model.CategoryRestaurant:    2.0,
	model.CategoryPharmacy:      2.0,
	model.CategoryHealthcare:    2.0,
	model.CategoryCafe:          1.5,
	model.CategoryPark:          1.5,
	model.CategoryGym:           1.5,
	model.CategoryBank:          1.0,
	model.CategorySchool:        1.0,
	model.CategoryBar:           1.0,
	model.CategoryEntertainment: 1.0,
	model.CategoryShopping:      1.0,
	model.CategoryGasStation:    0.5,
	model.CategoryTransit:       0.5,
	model.CategoryOther:         0.5,
}

// categoryCap bounds one category's contribution so a dense strip of one
// kind cannot dominate the walk score.
const categoryCap = 6.0

// Transit scoring constants.
const (
	railMultiplier    = 2.0  // rail/subway/station stops over bus stops
	varietyBonus      = 0.15 // two or more distinct stop types in range
	referenceStopMass = 12.0 // weighted stop mass that maps to 100
)

// Bike score blend: an approximation pending dedicated bike-infrastructure
// data.
const (
	bikeWalkFactor    = 0.7
	bikeTransitFactor = 0.3
	bikeNoiseSpan     = 3.0 // symmetric, ± this value
)

// Scorer computes mobility profiles. Noise perturbs only the bike score and
// only for display variety; inject a zero func for deterministic output.
type Scorer struct {
	noise func() float64
}

// NewScorer creates a Scorer with the default bike-score noise.
func NewScorer(withNoise bool) *Scorer {
	if !withNoise {
		return &Scorer{noise: func() float64 { return 0 }}
	}
	return &Scorer{noise: func() float64 {
		return rand.Float64()*2*bikeNoiseSpan - bikeNoiseSpan
	}}
}

// WithNoise overrides the noise source for testing.
func (s *Scorer) WithNoise(noise func() float64) *Scorer {
	s.noise = noise
	return s
}

// Profile builds the full mobility profile. fromStatic selects the static
// point-budget transit formula, which also feeds the derived bike score.
func (s *Scorer) Profile(pois []model.PointOfInterest, stops []model.TransitStop, fromStatic bool) model.MobilityProfile {
	walk := s.WalkScore(pois)
	var transit float64
	if fromStatic {
		transit = s.StaticTransitScore(stops)
	} else {
		transit = s.TransitScore(stops)
	}
	bike := s.BikeScore(walk, transit)

	return model.MobilityProfile{
		WalkScore:         walk,
		WalkLabel:         walkLabel(walk),
		TransitScore:      transit,
		TransitLabel:      transitLabel(transit),
		BikeScore:         bike,
		BikeLabel:         bikeLabel(bike),
		FromStaticTransit: fromStatic,
	}
}

// WalkScore accumulates categoryWeight x distanceDecay per category, caps
// each category's contribution, and normalizes against the theoretical
// maximum of every category at its cap.
func (s *Scorer) WalkScore(pois []model.PointOfInterest) float64 {
	perCategory := make(map[model.Category]float64)
	for _, p := range pois {
		w, ok := categoryWeights[p.Category]
		if !ok {
			w = categoryWeights[model.CategoryOther]
		}
		perCategory[p.Category] += w * distanceDecay(p.DistanceMiles)
	}

	var total float64
	for _, contribution := range perCategory {
		total += math.Min(contribution, categoryCap)
	}

	max := categoryCap * float64(len(categoryWeights))
	return math.Round(clamp(total/max*100, 0, 100))
}

// TransitScore weighs live stops by distance decay with a rail bonus, adds
// a variety bonus when two or more stop types are in range, and normalizes
// against the reference stop mass.
func (s *Scorer) TransitScore(stops []model.TransitStop) float64 {
	if len(stops) == 0 {
		return 0
	}

	types := make(map[string]struct{})
	var mass float64
	for _, stop := range stops {
		w := distanceDecay(stop.DistanceMiles)
		if w == 0 {
			continue
		}
		if stop.IsRail() {
			w *= railMultiplier
		}
		mass += w
		types[stop.Type] = struct{}{}
	}

	if len(types) >= 2 {
		mass *= 1 + varietyBonus
	}
	return math.Round(clamp(mass/referenceStopMass*100, 0, 100))
}

// Static transit point budgets.
const (
	staticDensityPerStop = 3.0
	staticDensityCap     = 30.0
	staticVarietyBonus   = 10.0
)

// StaticTransitScore is the point-budget formula used when stops come from
// the static table: up to 40 points for nearest-stop proximity, up to 30
// for nearest-rail proximity, up to 30 for density within a mile, plus a
// variety bonus, clamped to 0-100.
func (s *Scorer) StaticTransitScore(stops []model.TransitStop) float64 {
	if len(stops) == 0 {
		return 0
	}

	nearest := math.Inf(1)
	nearestRail := math.Inf(1)
	withinMile := 0
	types := make(map[string]struct{})
	for _, stop := range stops {
		if stop.DistanceMiles < nearest {
			nearest = stop.DistanceMiles
		}
		if stop.IsRail() && stop.DistanceMiles < nearestRail {
			nearestRail = stop.DistanceMiles
		}
		if stop.DistanceMiles <= 1.0 {
			withinMile++
		}
		if stop.DistanceMiles <= 3.0 {
			types[stop.Type] = struct{}{}
		}
	}

	points := nearestStopPoints(nearest) + nearestRailPoints(nearestRail)
	points += math.Min(float64(withinMile)*staticDensityPerStop, staticDensityCap)
	if len(types) >= 2 {
		points += staticVarietyBonus
	}
	return math.Round(clamp(points, 0, 100))
}

// nearestStopPoints awards up to 40 points by proximity band.
func nearestStopPoints(miles float64) float64 {
	switch {
	case miles <= 0.25:
		return 40
	case miles <= 0.5:
		return 30
	case miles <= 1.0:
		return 20
	case miles <= 2.0:
		return 10
	case miles <= 3.0:
		return 5
	default:
		return 0
	}
}

// nearestRailPoints awards up to 30 points by proximity band.
func nearestRailPoints(miles float64) float64 {
	switch {
	case miles <= 0.5:
		return 30
	case miles <= 1.0:
		return 22
	case miles <= 2.0:
		return 15
	case miles <= 3.0:
		return 8
	default:
		return 0
	}
}

// BikeScore blends walk and transit plus the display-variety noise term.
func (s *Scorer) BikeScore(walk, transit float64) float64 {
	raw := walk*bikeWalkFactor + transit*bikeTransitFactor + s.noise()
	return math.Round(clamp(raw, 0, 100))
}

// distanceDecay maps distance in miles onto the fixed decay bands.
func distanceDecay(miles float64) float64 {
	switch {
	case miles <= 0.25:
		return 1.0
	case miles <= 0.5:
		return 0.75
	case miles <= 1.0:
		return 0.5
	case miles <= 1.5:
		return 0.25
	case miles <= 2.0:
		return 0.1
	default:
		return 0
	}
}

func walkLabel(score float64) string {
	switch {
	case score >= 90:
		return "Walker's Paradise"
	case score >= 70:
		return "Very Walkable"
	case score >= 50:
		return "Somewhat Walkable"
	case score >= 25:
		return "Mostly Car-Dependent"
	default:
		return "Car-Dependent"
	}
}

func transitLabel(score float64) string {
	switch {
	case score >= 90:
		return "Excellent Transit"
	case score >= 70:
		return "Good Transit"
	case score >= 50:
		return "Some Transit"
	case score >= 25:
		return "Minimal Transit"
	default:
		return "No Nearby Transit"
	}
}

func bikeLabel(score float64) string {
	switch {
	case score >= 90:
		return "Biker's Paradise"
	case score >= 70:
		return "Very Bikeable"
	case score >= 50:
		return "Bikeable"
	default:
		return "Not Very Bikeable"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
