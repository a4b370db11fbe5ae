// Package model defines the shared data types for the livability pipeline.
package model

// Coordinate is a WGS84 point in decimal degrees. Zero is a valid value on
// both axes, so only the range is validated.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Category classifies a point of interest.
type Category string

// POI categories. Providers map their native taxonomies onto this set;
// anything unrecognized becomes CategoryOther.
const (
	CategoryGrocery       Category = "grocery"
	CategoryRestaurant    Category = "restaurant"
	CategoryCafe          Category = "cafe"
	CategoryPharmacy      Category = "pharmacy"
	CategoryHealthcare    Category = "healthcare"
	CategoryGym           Category = "gym"
	CategoryBank          Category = "bank"
	CategorySchool        Category = "school"
	CategoryPark          Category = "park"
	CategoryBar           Category = "bar"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryGasStation    Category = "gas_station"
	CategoryTransit       Category = "transit"
	CategoryOther         Category = "other"
)

// PointOfInterest is a named place near the query coordinate. Instances are
// created by the provider cascade and are immutable from then on.
type PointOfInterest struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      Category   `json:"category"`
	Subcategory   string     `json:"subcategory,omitempty"`
	Coord         Coordinate `json:"coord"`
	DistanceMiles float64    `json:"distance_miles"`
	Rating        float64    `json:"rating,omitempty"`
	PriceLevel    int        `json:"price_level,omitempty"`
}

// TransitStop is a transit boarding location near the query coordinate.
type TransitStop struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"` // bus, rail, subway, station, tram, ferry
	Agency        string     `json:"agency,omitempty"`
	Coord         Coordinate `json:"coord"`
	Routes        []string   `json:"routes,omitempty"`
	DistanceMiles float64    `json:"distance_miles"`
}

// IsRail reports whether the stop type gets the rail bonus in transit scoring.
func (s TransitStop) IsRail() bool {
	switch s.Type {
	case "rail", "subway", "station", "tram":
		return true
	}
	return false
}
