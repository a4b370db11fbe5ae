package vibe

import (
	"fmt"

	"github.com/sells-group/livability-cli/internal/model"
)

const (
	minPros = 3
	minCons = 2
	maxPros = 5
	maxCons = 5

	narrativeRadiusMiles = 1.0
)

var summaryTemplates = map[model.Label]string{
	model.LabelFoodDesert:      "A food desert: no grocery options within walking distance, so day-to-day errands require a car or transit trip.",
	model.LabelUrbanOasis:      "An urban oasis: safe, highly walkable, and dense with amenities. Most daily needs are a short walk away.",
	model.LabelNeedsAttention:  "An area that needs attention: several livability factors fall below comfortable thresholds here.",
	model.LabelTransitHub:      "A transit hub: strong transit connections compensate for limited walkability to daily destinations.",
	model.LabelHiddenGem:       "A hidden gem: very safe with respectable walkability that the headline numbers undersell.",
	model.LabelSuburbanComfort: "Classic suburban comfort: safe and amenity-served, with errands that mostly assume a short drive.",
	model.LabelCarCountry:      "Car country: safe and serviced, but nearly everything here is reached by driving.",
	model.LabelUpAndComing:     "An up-and-coming area: solid fundamentals across the board with room to grow.",
	model.LabelBalanced:        "A balanced area: no single factor dominates, with a mix of strengths and trade-offs.",
}

var fillerPros = []string{
	"Coordinate resolves to a recognized jurisdiction with published data",
	"No disqualifying livability factor was detected",
	"Result assembled from multiple independent data sources",
}

var fillerCons = []string{
	"Limited nearby data may understate some scores",
	"Some amenity categories are thin within walking distance",
}

// ruleNarrative builds the deterministic summary, pros, and cons for a label.
// The LLM narrator may later replace its output but never its computation.
func ruleNarrative(label model.Label, safety model.SafetyProfile, mobility model.MobilityProfile, amenity model.AmenityProfile, pois []model.PointOfInterest) (string, []string, []string) {
	summary, ok := summaryTemplates[label]
	if !ok {
		summary = summaryTemplates[model.LabelBalanced]
	}

	counts := categoryCounts(pois)
	pros := buildPros(safety, mobility, amenity, counts)
	cons := buildCons(safety, mobility, amenity, counts)
	return summary, pros, cons
}

func categoryCounts(pois []model.PointOfInterest) map[model.Category]int {
	counts := make(map[model.Category]int, len(pois))
	for _, p := range pois {
		if p.DistanceMiles <= narrativeRadiusMiles {
			counts[p.Category]++
		}
	}
	return counts
}

func buildPros(safety model.SafetyProfile, mobility model.MobilityProfile, amenity model.AmenityProfile, counts map[model.Category]int) []string {
	var pros []string

	switch safety.RiskTier {
	case "very_low":
		pros = append(pros, fmt.Sprintf("Crime rates well below the national baseline (grade %s)", safety.Grade))
	case "low":
		pros = append(pros, fmt.Sprintf("Crime rates below the national baseline (grade %s)", safety.Grade))
	}
	if mobility.WalkScore >= 70 {
		pros = append(pros, "Most daily errands can be done on foot")
	}
	if mobility.TransitScore >= 60 {
		pros = append(pros, "Well connected by public transit")
	}
	if n := counts[model.CategoryGrocery]; n >= 2 {
		pros = append(pros, withExample(fmt.Sprintf("%d grocery options within a mile", n), amenity, model.CategoryGrocery))
	}
	if n := counts[model.CategoryRestaurant]; n >= 5 {
		pros = append(pros, withExample(fmt.Sprintf("%d restaurants within a mile", n), amenity, model.CategoryRestaurant))
	}
	if n := counts[model.CategoryCafe]; n >= 2 {
		pros = append(pros, fmt.Sprintf("%d cafes nearby", n))
	}
	if n := counts[model.CategoryHealthcare] + counts[model.CategoryPharmacy]; n >= 2 {
		pros = append(pros, withExample(fmt.Sprintf("%d healthcare providers within a mile", n), amenity, model.CategoryHealthcare))
	}
	if n := counts[model.CategoryPark]; n >= 1 {
		pros = append(pros, withExample(fmt.Sprintf("%d parks within walking distance", n), amenity, model.CategoryPark))
	}
	if n := counts[model.CategoryGym]; n >= 1 {
		pros = append(pros, fmt.Sprintf("%d gyms within a mile", n))
	}
	if n := counts[model.CategoryBank]; n >= 2 {
		pros = append(pros, fmt.Sprintf("%d banks within a mile", n))
	}
	if n := counts[model.CategoryBar]; n >= 3 {
		pros = append(pros, fmt.Sprintf("Active nightlife with %d bars nearby", n))
	}

	return pad(clip(pros, maxPros), fillerPros, minPros)
}

func buildCons(safety model.SafetyProfile, mobility model.MobilityProfile, amenity model.AmenityProfile, counts map[model.Category]int) []string {
	var cons []string

	switch safety.RiskTier {
	case "very_high":
		cons = append(cons, fmt.Sprintf("Crime rates well above the national baseline (grade %s)", safety.Grade))
	case "high":
		cons = append(cons, fmt.Sprintf("Crime rates above the national baseline (grade %s)", safety.Grade))
	}
	if !safety.HasData {
		cons = append(cons, "No published crime data for this jurisdiction; safety scored at a neutral default")
	}
	if mobility.WalkScore < 40 {
		cons = append(cons, "Most errands here require a car")
	}
	if mobility.TransitScore < 30 {
		cons = append(cons, "Sparse public transit coverage")
	}
	if amenity.IsFoodDesert {
		cons = append(cons, "No grocery store within a mile")
	} else if counts[model.CategoryGrocery] == 1 {
		cons = append(cons, "Only one grocery option within a mile")
	}
	if counts[model.CategoryHealthcare]+counts[model.CategoryPharmacy] == 0 {
		cons = append(cons, "No healthcare providers or pharmacies within a mile")
	}
	if counts[model.CategoryRestaurant] < 2 {
		cons = append(cons, "Few dining options within walking distance")
	}
	if counts[model.CategoryPark] == 0 {
		cons = append(cons, "No parks within walking distance")
	}

	return pad(clip(cons, maxCons), fillerCons, minCons)
}

// withExample appends the name of the nearest POI in the category when known.
func withExample(s string, amenity model.AmenityProfile, cat model.Category) string {
	if p, ok := amenity.Nearest[cat]; ok && p.Name != "" {
		return fmt.Sprintf("%s (e.g. %s)", s, p.Name)
	}
	return s
}

func clip(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func pad(items, filler []string, min int) []string {
	for _, f := range filler {
		if len(items) >= min {
			break
		}
		items = append(items, f)
	}
	return items
}
