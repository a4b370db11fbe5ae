// Package poi fetches points of interest through a fallback cascade:
// a quota-metered primary provider, then a mirrored free provider.
package poi

import (
	"context"

	"github.com/sells-group/livability-cli/internal/model"
)

// Outcome distinguishes the three states a provider can report. Only
// OutcomeUnavailable triggers fallback; an empty result from a configured
// provider is authoritative and trusted.
type Outcome int

const (
	// OutcomeUnavailable means the provider could not be consulted at all:
	// not configured, quota exhausted, or hard failure.
	OutcomeUnavailable Outcome = iota
	// OutcomeEmpty means the provider ran the query and found nothing.
	OutcomeEmpty
	// OutcomeData means the provider returned at least one record.
	OutcomeData
)

// String implements fmt.Stringer for log fields.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeData:
		return "data"
	default:
		return "unavailable"
	}
}

// Result is a provider's tagged response.
type Result struct {
	Outcome Outcome
	POIs    []model.PointOfInterest
}

// Provider is a single POI backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, center model.Coordinate, radiusMiles float64) (Result, error)
}

// dedupe keeps the first occurrence per provider-native identifier.
func dedupe(pois []model.PointOfInterest) []model.PointOfInterest {
	seen := make(map[string]struct{}, len(pois))
	out := pois[:0]
	for _, p := range pois {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
