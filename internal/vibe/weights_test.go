package vibe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/livability-cli/internal/model"
)

func TestNormalizeSumsToOne(t *testing.T) {
	tests := []struct {
		name     string
		override *model.Weights
	}{
		{"nil override", nil},
		{"empty override", &model.Weights{}},
		{"single field", &model.Weights{Safety: 0.9}},
		{"two fields", &model.Weights{Walkability: 0.5, Transit: 0.5}},
		{"all fields", &model.Weights{Safety: 1, Walkability: 2, Transit: 3, Amenities: 4}},
		{"negative fields skipped", &model.Weights{Safety: -5, Transit: 0.4}},
		{"tiny values", &model.Weights{Safety: 1e-9, Walkability: 1e-9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Normalize(DefaultWeights(), tt.override)
			sum := w.Safety + w.Walkability + w.Transit + w.Amenities
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestNormalizeOverlaysFields(t *testing.T) {
	// Safety overridden to dominate; the other three keep their defaults
	// before renormalization, so their relative proportions survive.
	w := Normalize(DefaultWeights(), &model.Weights{Safety: 6.5})
	assert.Greater(t, w.Safety, 0.9)
	assert.Greater(t, w.Amenities, w.Transit)
}

func TestNormalizeAllNonPositiveFallsBack(t *testing.T) {
	w := Normalize(model.Weights{}, &model.Weights{Safety: -1})
	def := Normalize(DefaultWeights(), nil)
	assert.Equal(t, def, w)
}
