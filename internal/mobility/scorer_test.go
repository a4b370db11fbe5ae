package mobility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/livability-cli/internal/model"
)

func deterministic() *Scorer {
	return NewScorer(false)
}

func poisAt(category model.Category, distances ...float64) []model.PointOfInterest {
	out := make([]model.PointOfInterest, len(distances))
	for i, d := range distances {
		out[i] = model.PointOfInterest{ID: string(category) + string(rune('a'+i)), Category: category, DistanceMiles: d}
	}
	return out
}

func TestDistanceDecay_Bands(t *testing.T) {
	tests := []struct {
		miles float64
		want  float64
	}{
		{0.1, 1.0}, {0.25, 1.0}, {0.3, 0.75}, {0.5, 0.75},
		{0.75, 0.5}, {1.0, 0.5}, {1.2, 0.25}, {1.5, 0.25},
		{1.8, 0.1}, {2.0, 0.1}, {2.5, 0}, {10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, distanceDecay(tt.miles), "%.2f miles", tt.miles)
	}
}

func TestWalkScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, deterministic().WalkScore(nil))
}

func TestWalkScore_CategoryCap(t *testing.T) {
	s := deterministic()

	// Twenty nearby restaurants cap at the same contribution as three.
	few := s.WalkScore(poisAt(model.CategoryRestaurant, 0.1, 0.1, 0.1))
	many := s.WalkScore(poisAt(model.CategoryRestaurant,
		0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1,
		0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1))
	assert.Equal(t, few, many)
}

func TestWalkScore_MoreCategoriesScoreHigher(t *testing.T) {
	s := deterministic()

	single := s.WalkScore(poisAt(model.CategoryGrocery, 0.2))
	var mixed []model.PointOfInterest
	mixed = append(mixed, poisAt(model.CategoryGrocery, 0.2)...)
	mixed = append(mixed, poisAt(model.CategoryRestaurant, 0.2)...)
	mixed = append(mixed, poisAt(model.CategoryPark, 0.2)...)
	assert.Greater(t, s.WalkScore(mixed), single)
}

func TestWalkScore_Bounded(t *testing.T) {
	var dense []model.PointOfInterest
	for cat := range categoryWeights {
		for i := 0; i < 30; i++ {
			dense = append(dense, model.PointOfInterest{Category: cat, DistanceMiles: 0.1})
		}
	}
	score := deterministic().WalkScore(dense)
	assert.LessOrEqual(t, score, 100.0)
	assert.Greater(t, score, 90.0)
}

func TestTransitScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, deterministic().TransitScore(nil))
}

func TestTransitScore_RailBeatsBus(t *testing.T) {
	s := deterministic()
	bus := s.TransitScore([]model.TransitStop{{Type: "bus", DistanceMiles: 0.2}})
	rail := s.TransitScore([]model.TransitStop{{Type: "rail", DistanceMiles: 0.2}})
	assert.Greater(t, rail, bus)
}

func TestTransitScore_VarietyBonus(t *testing.T) {
	s := deterministic()
	sameType := s.TransitScore([]model.TransitStop{
		{Type: "bus", DistanceMiles: 0.2},
		{Type: "bus", DistanceMiles: 0.2},
	})
	mixed := s.TransitScore([]model.TransitStop{
		{Type: "bus", DistanceMiles: 0.2},
		{Type: "rail", DistanceMiles: 0.2},
	})
	assert.Greater(t, mixed, sameType)
}

func TestStaticTransitScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, deterministic().StaticTransitScore(nil))
}

func TestStaticTransitScore_PointBudget(t *testing.T) {
	s := deterministic()

	// One bus stop at 0.2 miles: 40 proximity + 3 density, no rail, one type.
	score := s.StaticTransitScore([]model.TransitStop{{Type: "bus", DistanceMiles: 0.2}})
	assert.Equal(t, 43.0, score)

	// Adding rail at 0.4 miles: +30 rail points, +3 density, +10 variety.
	score = s.StaticTransitScore([]model.TransitStop{
		{Type: "bus", DistanceMiles: 0.2},
		{Type: "rail", DistanceMiles: 0.4},
	})
	assert.Equal(t, 86.0, score)
}

func TestStaticTransitScore_DensityCap(t *testing.T) {
	s := deterministic()
	var stops []model.TransitStop
	for i := 0; i < 25; i++ {
		stops = append(stops, model.TransitStop{Type: "bus", DistanceMiles: 0.2})
	}
	// 40 proximity + 30 density cap, single type, no rail.
	assert.Equal(t, 70.0, s.StaticTransitScore(stops))
}

func TestBikeScore_DeterministicBlend(t *testing.T) {
	s := deterministic()
	assert.Equal(t, 70.0, s.BikeScore(100, 0))
	assert.Equal(t, 30.0, s.BikeScore(0, 100))
	assert.Equal(t, 100.0, s.BikeScore(100, 100))
	assert.Equal(t, 0.0, s.BikeScore(0, 0))
}

func TestBikeScore_NoiseClamped(t *testing.T) {
	s := NewScorer(false).WithNoise(func() float64 { return 50 })
	assert.Equal(t, 100.0, s.BikeScore(90, 90))

	s = NewScorer(false).WithNoise(func() float64 { return -50 })
	assert.Equal(t, 0.0, s.BikeScore(10, 10))
}

func TestProfile_StaticPathUsesPointBudget(t *testing.T) {
	s := deterministic()
	stops := []model.TransitStop{{Type: "bus", DistanceMiles: 0.2}}

	live := s.Profile(nil, stops, false)
	static := s.Profile(nil, stops, true)
	assert.False(t, live.FromStaticTransit)
	assert.True(t, static.FromStaticTransit)
	assert.NotEqual(t, live.TransitScore, static.TransitScore)
	// Bike is derived, so it shifts with the transit recomputation.
	assert.NotEqual(t, live.BikeScore, static.BikeScore)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Walker's Paradise", walkLabel(95))
	assert.Equal(t, "Car-Dependent", walkLabel(10))
	assert.Equal(t, "Excellent Transit", transitLabel(92))
	assert.Equal(t, "No Nearby Transit", transitLabel(5))
	assert.Equal(t, "Biker's Paradise", bikeLabel(95))
}
