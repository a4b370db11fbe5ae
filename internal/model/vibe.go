package model

import "time"

// Label is the categorical classification of a composite result.
type Label string

// Composite labels, highest classification priority first.
const (
	LabelFoodDesert      Label = "food_desert"
	LabelUrbanOasis      Label = "urban_oasis"
	LabelNeedsAttention  Label = "needs_attention"
	LabelTransitHub      Label = "transit_hub"
	LabelHiddenGem       Label = "hidden_gem"
	LabelSuburbanComfort Label = "suburban_comfort"
	LabelCarCountry      Label = "car_country"
	LabelUpAndComing     Label = "up_and_coming"
	LabelBalanced        Label = "balanced"
)

// Confidence tiers for data completeness.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Intent personalizes the narrative. IntentBalanced is the neutral default;
// any other intent disables result caching.
type Intent string

const (
	IntentBalanced  Intent = "balanced"
	IntentFamily    Intent = "family"
	IntentNightlife Intent = "nightlife"
	IntentQuiet     Intent = "quiet"
	IntentCommuter  Intent = "commuter"
)

// Valid reports whether the intent is one of the known values.
func (i Intent) Valid() bool {
	switch i {
	case IntentBalanced, IntentFamily, IntentNightlife, IntentQuiet, IntentCommuter:
		return true
	}
	return false
}

// Weights is the composite weight vector. After normalization the four
// components sum to exactly 1.
type Weights struct {
	Safety      float64 `json:"safety"`
	Walkability float64 `json:"walkability"`
	Transit     float64 `json:"transit"`
	Amenities   float64 `json:"amenities"`
}

// Breakdown holds the four sub-scores feeding the composite.
type Breakdown struct {
	Safety      float64 `json:"safety"`
	Walkability float64 `json:"walkability"`
	Transit     float64 `json:"transit"`
	Amenities   float64 `json:"amenities"`
}

// Vibe is the composite livability result.
type Vibe struct {
	Score      int       `json:"score"`
	Label      Label     `json:"label"`
	Confidence string    `json:"confidence"`
	Weights    Weights   `json:"weights"`
	Breakdown  Breakdown `json:"breakdown"`
	Summary    string    `json:"summary"`
	Pros       []string  `json:"pros"`
	Cons       []string  `json:"cons"`
}

// Place is the reverse-geocoded location for a query coordinate.
type Place struct {
	ZIP          string `json:"zip"`
	Jurisdiction string `json:"jurisdiction"`
	State        string `json:"state"`
}

// AnalysisResult is the externally visible result envelope.
type AnalysisResult struct {
	RequestID   string          `json:"request_id"`
	Coord       Coordinate      `json:"coord"`
	Place       Place           `json:"place"`
	Safety      SafetyProfile   `json:"safety"`
	Mobility    MobilityProfile `json:"mobility"`
	Amenities   AmenityProfile  `json:"amenities"`
	Vibe        Vibe            `json:"vibe"`
	POICount    int             `json:"poi_count"`
	Cached      bool            `json:"cached"`
	GeneratedAt time.Time       `json:"generated_at"`
}
