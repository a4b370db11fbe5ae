package model

import "time"

// CrimeRates holds incident counts per 100,000 residents for the eight
// crime measures the safety scorer weighs: six subtypes plus the violent
// and property aggregates.
type CrimeRates struct {
	Murder       float64 `json:"murder" yaml:"murder"`
	Robbery      float64 `json:"robbery" yaml:"robbery"`
	Assault      float64 `json:"assault" yaml:"assault"`
	Burglary     float64 `json:"burglary" yaml:"burglary"`
	Larceny      float64 `json:"larceny" yaml:"larceny"`
	VehicleTheft float64 `json:"vehicle_theft" yaml:"vehicle_theft"`
	Violent      float64 `json:"violent" yaml:"violent"`
	Property     float64 `json:"property" yaml:"property"`
}

// CrimeScores holds the normalized 0-100 sub-scores surfaced per subtype.
type CrimeScores struct {
	Murder       float64 `json:"murder"`
	Robbery      float64 `json:"robbery"`
	Assault      float64 `json:"assault"`
	Burglary     float64 `json:"burglary"`
	Theft        float64 `json:"theft"`
	VehicleTheft float64 `json:"vehicle_theft"`
}

// SafetyProfile is the safety scorer's output for one jurisdiction.
type SafetyProfile struct {
	Score        float64     `json:"score"`
	Grade        string      `json:"grade"`     // A+ through F
	RiskTier     string      `json:"risk_tier"` // very_low .. very_high
	Trend        string      `json:"trend"`
	VsNational   float64     `json:"vs_national"` // percent delta vs the baseline
	ViolentRate  float64     `json:"violent_rate"`
	PropertyRate float64     `json:"property_rate"`
	Metrics      CrimeScores `json:"metrics"`
	Source       string      `json:"source"`
	HasData      bool        `json:"has_data"`
	ComputedAt   time.Time   `json:"computed_at"`
}
