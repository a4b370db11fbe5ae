// Package vibe combines the safety, mobility, and amenity profiles into the
// composite livability result: score, label, confidence, and narrative.
package vibe

import "github.com/sells-group/livability-cli/internal/model"

// DefaultWeights returns the fixed default weight vector.
func DefaultWeights() model.Weights {
	return model.Weights{
		Safety:      0.35,
		Walkability: 0.25,
		Transit:     0.15,
		Amenities:   0.25,
	}
}

// Normalize overlays caller-supplied overrides field-by-field onto the base
// vector and renormalizes so the four components sum to exactly 1. Zero and
// negative override fields are treated as unsupplied.
func Normalize(base model.Weights, override *model.Weights) model.Weights {
	w := base
	if override != nil {
		if override.Safety > 0 {
			w.Safety = override.Safety
		}
		if override.Walkability > 0 {
			w.Walkability = override.Walkability
		}
		if override.Transit > 0 {
			w.Transit = override.Transit
		}
		if override.Amenities > 0 {
			w.Amenities = override.Amenities
		}
	}

	sum := w.Safety + w.Walkability + w.Transit + w.Amenities
	if sum <= 0 {
		return Normalize(DefaultWeights(), nil)
	}
	return model.Weights{
		Safety:      w.Safety / sum,
		Walkability: w.Walkability / sum,
		Transit:     w.Transit / sum,
		Amenities:   w.Amenities / sum,
	}
}
