package vibe

import "github.com/sells-group/livability-cli/internal/model"

// Partial-credit threshold: a thin POI set still carries some signal.
const richPOICount = 10

// confidence rates data completeness across four independent signals and
// maps the resulting quality ratio to a tier.
func confidence(safety model.SafetyProfile, mobility model.MobilityProfile, poiCount int) string {
	var quality float64
	// Every signal is computed on every run (the safety lookup, both
	// mobility scorers, and the POI count always execute), so the divisor
	// stays fixed at 4 rather than shrinking when a source returns nothing.
	signals := 4

	if safety.HasData {
		quality++
	}
	if mobility.WalkScore > 0 {
		quality++
	}
	if mobility.TransitScore > 0 {
		quality++
	}
	switch {
	case poiCount >= richPOICount:
		quality++
	case poiCount > 0:
		quality += 0.5
	}

	ratio := quality / float64(signals)
	switch {
	case ratio >= 0.8:
		return model.ConfidenceHigh
	case ratio >= 0.5:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
