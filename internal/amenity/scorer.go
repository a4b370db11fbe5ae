// Package amenity derives category sub-scores, the food-desert flag, and
// the nearest-POI-per-category map from the fetched POI set.
package amenity

import (
	"math"

	"github.com/sells-group/livability-cli/internal/model"
)

// scoringRadiusMiles bounds which POIs count toward amenity scores.
const scoringRadiusMiles = 1.0

// Per-category count multipliers: score = min(100, count x multiplier).
const (
	groceryMultiplier       = 25.0 // grocery
	diningMultiplier        = 10.0 // restaurants
	healthcareMultiplier    = 20.0 // healthcare + pharmacy
	entertainmentMultiplier = 15.0 // park + gym
	shoppingMultiplier      = 20.0 // grocery + bank
)

// Category weights for the overall amenity score; the sum is 1.0.
const (
	weightGrocery       = 0.25
	weightDining        = 0.20
	weightHealthcare    = 0.25
	weightEntertainment = 0.15
	weightShopping      = 0.15
)

// Score computes the amenity profile from the full POI set. Only POIs
// within the scoring radius count.
func Score(pois []model.PointOfInterest) model.AmenityProfile {
	counts := make(map[model.Category]int)
	nearest := make(map[model.Category]model.PointOfInterest)
	total := 0

	for _, p := range pois {
		if existing, ok := nearest[p.Category]; !ok || p.DistanceMiles < existing.DistanceMiles {
			nearest[p.Category] = p
		}
		if p.DistanceMiles > scoringRadiusMiles {
			continue
		}
		counts[p.Category]++
		total++
	}

	grocery := counts[model.CategoryGrocery]
	restaurants := counts[model.CategoryRestaurant]
	healthcare := counts[model.CategoryHealthcare] + counts[model.CategoryPharmacy]
	parks := counts[model.CategoryPark]
	gyms := counts[model.CategoryGym]
	banks := counts[model.CategoryBank]

	categories := model.AmenityCategoryScores{
		Grocery:       countScore(grocery, groceryMultiplier),
		Dining:        countScore(restaurants, diningMultiplier),
		Healthcare:    countScore(healthcare, healthcareMultiplier),
		Entertainment: countScore(parks+gyms, entertainmentMultiplier),
		Shopping:      countScore(grocery+banks, shoppingMultiplier),
	}

	overall := categories.Grocery*weightGrocery +
		categories.Dining*weightDining +
		categories.Healthcare*weightHealthcare +
		categories.Entertainment*weightEntertainment +
		categories.Shopping*weightShopping

	return model.AmenityProfile{
		Score:      math.Round(overall),
		Categories: categories,
		Highlights: model.AmenityHighlights{
			TotalPOIs:   total,
			Grocery:     grocery,
			Restaurants: restaurants,
			Healthcare:  healthcare,
			Parks:       parks,
			Gyms:        gyms,
		},
		IsFoodDesert: grocery == 0,
		Nearest:      nearest,
	}
}

func countScore(count int, multiplier float64) float64 {
	return math.Min(100, float64(count)*multiplier)
}
