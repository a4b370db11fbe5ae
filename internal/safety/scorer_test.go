package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/livability-cli/internal/model"
)

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadDataset()
	require.NoError(t, err)
	return ds
}

func TestLoadDataset(t *testing.T) {
	ds := testDataset(t)
	assert.NotEmpty(t, ds.Source)
	assert.Greater(t, ds.National.Violent, 0.0)
	assert.NotEmpty(t, ds.Jurisdictions)
}

func TestLookup_Normalization(t *testing.T) {
	ds := testDataset(t)

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact", "richmond", true},
		{"mixed case", "Richmond", true},
		{"city suffix", "Richmond city", true},
		{"city of prefix", "City of Richmond", true},
		{"county suffix", "Henrico County", true},
		{"unknown", "nowhere", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ds.Lookup(tt.query)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestMetricScore_ZeroRate(t *testing.T) {
	assert.Equal(t, 100.0, metricScore(0, 100))
	assert.Equal(t, 100.0, metricScore(-1, 100))
}

func TestMetricScore_AtBaseline(t *testing.T) {
	assert.Equal(t, 50.0, metricScore(66.1, 66.1))
}

func TestMetricScore_Clamped(t *testing.T) {
	// Triple the national rate clamps at the floor.
	assert.Equal(t, 0.0, metricScore(500, 100))
	assert.GreaterOrEqual(t, metricScore(10, 100), 0.0)
	assert.LessOrEqual(t, metricScore(10, 100), 100.0)
}

func TestScore_BaselineJurisdictionIsExactlyFifty(t *testing.T) {
	ds := testDataset(t)
	ds.Jurisdictions["baseline"] = ds.National

	p := NewScorer(ds).Score("baseline")
	assert.Equal(t, 50.0, p.Score)
	assert.Equal(t, 50.0, p.Metrics.Murder)
	assert.Equal(t, 50.0, p.Metrics.Robbery)
	assert.Equal(t, 50.0, p.Metrics.Assault)
	assert.Equal(t, 50.0, p.Metrics.Burglary)
	assert.Equal(t, 50.0, p.Metrics.Theft)
	assert.Equal(t, 50.0, p.Metrics.VehicleTheft)
	assert.InDelta(t, 0.0, p.VsNational, 1e-9)
	assert.True(t, p.HasData)
}

func TestScore_AllZeroRatesIsExactlyHundred(t *testing.T) {
	ds := testDataset(t)
	ds.Jurisdictions["utopia"] = model.CrimeRates{}

	p := NewScorer(ds).Score("utopia")
	assert.Equal(t, 100.0, p.Score)
	assert.Equal(t, 100.0, p.Metrics.Murder)
	assert.Equal(t, 100.0, p.Metrics.VehicleTheft)
	assert.Equal(t, "A+", p.Grade)
	assert.Equal(t, "very_low", p.RiskTier)
}

func TestScore_UnknownJurisdictionDefault(t *testing.T) {
	ds := testDataset(t)

	p := NewScorer(ds).Score("atlantis")
	assert.Equal(t, 50.0, p.Score)
	assert.Equal(t, "C", p.Grade)
	assert.Equal(t, 50.0, p.Metrics.Murder)
	assert.Equal(t, 0.0, p.VsNational)
	assert.False(t, p.HasData)
}

func TestScore_HighCrimeJurisdiction(t *testing.T) {
	ds := testDataset(t)

	richmond := NewScorer(ds).Score("richmond")
	fairfax := NewScorer(ds).Score("fairfax")
	assert.Less(t, richmond.Score, fairfax.Score)
	assert.Greater(t, richmond.VsNational, 0.0)
	assert.Less(t, fairfax.VsNational, 0.0)
}

func TestGrade_Thresholds(t *testing.T) {
	tests := []struct {
		score float64
		grade string
	}{
		{100, "A+"}, {95, "A+"}, {94.9, "A"}, {90, "A"}, {85, "A-"},
		{80, "B+"}, {75, "B"}, {70, "B-"}, {60, "C+"}, {50, "C"},
		{40, "C-"}, {30, "D"}, {29.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.grade, Grade(tt.score), "score %.1f", tt.score)
	}
}

func TestRiskTier_Thresholds(t *testing.T) {
	tests := []struct {
		score float64
		tier  string
	}{
		{90, "very_low"}, {80, "very_low"}, {79.9, "low"}, {65, "low"},
		{50, "moderate"}, {45, "moderate"}, {35, "high"}, {10, "very_high"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, RiskTier(tt.score), "score %.1f", tt.score)
	}
}
