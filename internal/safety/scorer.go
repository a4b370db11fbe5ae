// Package safety converts jurisdiction crime rates into a normalized
// safety profile with a letter grade and risk tier.
package safety

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/model"
)

// Subtype weights for the overall score. Violent-crime measures are
// weighted heavier than property measures; the sum is 1.0.
const (
	weightMurder       = 0.20
	weightRobbery      = 0.15
	weightAssault      = 0.15
	weightBurglary     = 0.15
	weightLarceny      = 0.10
	weightVehicleTheft = 0.10
	weightViolent      = 0.10
	weightProperty     = 0.05
)

// Scorer computes safety profiles from the static crime-rate table.
type Scorer struct {
	data *Dataset
	now  func() time.Time
}

// NewScorer creates a Scorer over the given dataset.
func NewScorer(data *Dataset) *Scorer {
	return &Scorer{data: data, now: time.Now}
}

// WithNow sets a fixed clock for testing.
func (s *Scorer) WithNow(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Score builds the safety profile for a jurisdiction. An unknown
// jurisdiction yields the fixed neutral profile, not an error.
func (s *Scorer) Score(jurisdiction string) model.SafetyProfile {
	rates, ok := s.data.Lookup(jurisdiction)
	if !ok {
		zap.L().Debug("safety: jurisdiction not in crime table",
			zap.String("jurisdiction", jurisdiction),
		)
		return s.defaultProfile()
	}

	nat := s.data.National
	metrics := model.CrimeScores{
		Murder:       metricScore(rates.Murder, nat.Murder),
		Robbery:      metricScore(rates.Robbery, nat.Robbery),
		Assault:      metricScore(rates.Assault, nat.Assault),
		Burglary:     metricScore(rates.Burglary, nat.Burglary),
		Theft:        metricScore(rates.Larceny, nat.Larceny),
		VehicleTheft: metricScore(rates.VehicleTheft, nat.VehicleTheft),
	}

	overall := metrics.Murder*weightMurder +
		metrics.Robbery*weightRobbery +
		metrics.Assault*weightAssault +
		metrics.Burglary*weightBurglary +
		metrics.Theft*weightLarceny +
		metrics.VehicleTheft*weightVehicleTheft +
		metricScore(rates.Violent, nat.Violent)*weightViolent +
		metricScore(rates.Property, nat.Property)*weightProperty

	overall = clamp(overall, 0, 100)

	return model.SafetyProfile{
		Score:        overall,
		Grade:        Grade(overall),
		RiskTier:     RiskTier(overall),
		Trend:        "stable",
		VsNational:   vsNational(rates, nat),
		ViolentRate:  rates.Violent,
		PropertyRate: rates.Property,
		Metrics:      metrics,
		Source:       s.data.Source,
		HasData:      true,
		ComputedAt:   s.now(),
	}
}

// metricScore maps a local rate against the national baseline. A rate of
// zero scores exactly 100; a rate equal to the baseline scores exactly 50.
func metricScore(local, national float64) float64 {
	if local <= 0 {
		return 100
	}
	if national <= 0 {
		return 50
	}
	return clamp(100-(local/national)*50, 0, 100)
}

// vsNational is the percent delta of total crime volume against the baseline.
func vsNational(local, national model.CrimeRates) float64 {
	natTotal := national.Violent + national.Property
	if natTotal <= 0 {
		return 0
	}
	return ((local.Violent+local.Property)/natTotal - 1) * 100
}

// defaultProfile is the designed unknown-jurisdiction fallback: neutral 50s
// across the board.
func (s *Scorer) defaultProfile() model.SafetyProfile {
	return model.SafetyProfile{
		Score:    50,
		Grade:    "C",
		RiskTier: RiskTier(50),
		Trend:    "stable",
		Metrics: model.CrimeScores{
			Murder:       50,
			Robbery:      50,
			Assault:      50,
			Burglary:     50,
			Theft:        50,
			VehicleTheft: 50,
		},
		Source:     s.data.Source,
		HasData:    false,
		ComputedAt: s.now(),
	}
}

// Grade maps a 0-100 score onto the 11-point letter scale.
func Grade(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 50:
		return "C"
	case score >= 40:
		return "C-"
	case score >= 30:
		return "D"
	default:
		return "F"
	}
}

// RiskTier maps a 0-100 score onto the 5-point risk scale.
func RiskTier(score float64) string {
	switch {
	case score >= 80:
		return "very_low"
	case score >= 65:
		return "low"
	case score >= 45:
		return "moderate"
	case score >= 30:
		return "high"
	default:
		return "very_high"
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
