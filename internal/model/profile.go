package model

// MobilityProfile holds the walk/transit/bike sub-scores. BikeScore is
// derived from the other two, never fetched.
type MobilityProfile struct {
	WalkScore    float64 `json:"walk_score"`
	WalkLabel    string  `json:"walk_label"`
	TransitScore float64 `json:"transit_score"`
	TransitLabel string  `json:"transit_label"`
	BikeScore    float64 `json:"bike_score"`
	BikeLabel    string  `json:"bike_label"`

	// FromStaticTransit records that the transit score came from the
	// embedded stop table rather than the live provider.
	FromStaticTransit bool `json:"from_static_transit,omitempty"`
}

// AmenityCategoryScores holds the five category sub-scores.
type AmenityCategoryScores struct {
	Grocery       float64 `json:"grocery"`
	Dining        float64 `json:"dining"`
	Healthcare    float64 `json:"healthcare"`
	Entertainment float64 `json:"entertainment"`
	Shopping      float64 `json:"shopping"`
}

// AmenityHighlights holds headline POI counts within the scoring radius.
type AmenityHighlights struct {
	TotalPOIs   int `json:"total_pois"`
	Grocery     int `json:"grocery"`
	Restaurants int `json:"restaurants"`
	Healthcare  int `json:"healthcare"` // healthcare + pharmacy
	Parks       int `json:"parks"`
	Gyms        int `json:"gyms"`
}

// AmenityProfile is the amenity scorer's output.
type AmenityProfile struct {
	Score        float64                      `json:"score"`
	Categories   AmenityCategoryScores        `json:"categories"`
	Highlights   AmenityHighlights            `json:"highlights"`
	IsFoodDesert bool                         `json:"is_food_desert"`
	Nearest      map[Category]PointOfInterest `json:"nearest_by_category,omitempty"`
}
