package vibe

import (
	"context"
	"math"

	"github.com/sells-group/livability-cli/internal/model"
)

// Input carries everything the composite scorer consumes. All profiles are
// fully resolved before Score runs; the scorer itself does no I/O except the
// optional narrator call.
type Input struct {
	Place    model.Place
	Safety   model.SafetyProfile
	Mobility model.MobilityProfile
	Amenity  model.AmenityProfile
	POIs     []model.PointOfInterest

	Intent    model.Intent
	Overrides *model.Weights
}

// Scorer computes the composite vibe from the sub-profiles.
type Scorer struct {
	defaults model.Weights
	narrator Narrator // nil disables personalized narratives
}

// NewScorer builds a composite scorer. A nil narrator is valid and keeps
// every narrative rule-based.
func NewScorer(defaults model.Weights, narrator Narrator) *Scorer {
	return &Scorer{defaults: defaults, narrator: narrator}
}

// Score assembles the composite result. It never returns an error: narrator
// failures fall back to the rule-based narrative.
func (s *Scorer) Score(ctx context.Context, in Input) model.Vibe {
	weights := Normalize(s.defaults, in.Overrides)

	breakdown := model.Breakdown{
		Safety:      in.Safety.Score,
		Walkability: in.Mobility.WalkScore,
		Transit:     in.Mobility.TransitScore,
		Amenities:   in.Amenity.Score,
	}

	composite := weights.Safety*breakdown.Safety +
		weights.Walkability*breakdown.Walkability +
		weights.Transit*breakdown.Transit +
		weights.Amenities*breakdown.Amenities

	label := Classify(breakdown, in.Amenity.IsFoodDesert)
	summary, pros, cons := ruleNarrative(label, in.Safety, in.Mobility, in.Amenity, in.POIs)

	if s.narrator != nil && in.Intent != "" && in.Intent != model.IntentBalanced && in.Place.ZIP != "" {
		digest := BuildDigest(in.Place, in.Safety, in.Mobility, in.Amenity, in.POIs)
		generated, err := s.narrator.Generate(ctx, in.Intent, digest)
		switch {
		case err != nil:
			logNarratorSkip(err)
		case acceptNarrative(generated):
			pros = clip(generated.Pros, maxPros)
			cons = clip(generated.Cons, maxCons)
			if generated.Summary != "" {
				summary = generated.Summary
			}
		}
	}

	return model.Vibe{
		Score:      int(math.Round(composite)),
		Label:      label,
		Confidence: confidence(in.Safety, in.Mobility, len(in.POIs)),
		Weights:    weights,
		Breakdown:  breakdown,
		Summary:    summary,
		Pros:       pros,
		Cons:       cons,
	}
}
