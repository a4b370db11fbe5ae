package amenity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/livability-cli/internal/model"
)

func poi(id string, cat model.Category, dist float64) model.PointOfInterest {
	return model.PointOfInterest{ID: id, Name: id, Category: cat, DistanceMiles: dist}
}

func TestScore_Empty(t *testing.T) {
	p := Score(nil)
	assert.Equal(t, 0.0, p.Score)
	assert.True(t, p.IsFoodDesert)
	assert.Zero(t, p.Highlights.TotalPOIs)
}

func TestScore_FoodDesertIffNoGrocery(t *testing.T) {
	withGrocery := Score([]model.PointOfInterest{
		poi("g1", model.CategoryGrocery, 0.4),
		poi("r1", model.CategoryRestaurant, 0.2),
	})
	assert.False(t, withGrocery.IsFoodDesert)

	noGrocery := Score([]model.PointOfInterest{
		poi("r1", model.CategoryRestaurant, 0.2),
		poi("c1", model.CategoryCafe, 0.3),
	})
	assert.True(t, noGrocery.IsFoodDesert)

	// A grocery beyond the scoring radius does not count.
	farGrocery := Score([]model.PointOfInterest{
		poi("g1", model.CategoryGrocery, 1.5),
	})
	assert.True(t, farGrocery.IsFoodDesert)
}

func TestScore_CategoryMultipliers(t *testing.T) {
	p := Score([]model.PointOfInterest{
		poi("g1", model.CategoryGrocery, 0.2),
		poi("g2", model.CategoryGrocery, 0.5),
		poi("r1", model.CategoryRestaurant, 0.3),
		poi("h1", model.CategoryHealthcare, 0.4),
		poi("ph1", model.CategoryPharmacy, 0.6),
		poi("pk1", model.CategoryPark, 0.1),
		poi("b1", model.CategoryBank, 0.7),
	})

	assert.Equal(t, 50.0, p.Categories.Grocery)       // 2 x 25
	assert.Equal(t, 10.0, p.Categories.Dining)        // 1 x 10
	assert.Equal(t, 40.0, p.Categories.Healthcare)    // (1+1) x 20
	assert.Equal(t, 15.0, p.Categories.Entertainment) // 1 park x 15
	assert.Equal(t, 60.0, p.Categories.Shopping)      // (2+1) x 20
}

func TestScore_SubScoresCappedAtHundred(t *testing.T) {
	var pois []model.PointOfInterest
	for i := 0; i < 10; i++ {
		pois = append(pois, poi(string(rune('a'+i)), model.CategoryGrocery, 0.2))
	}
	p := Score(pois)
	assert.Equal(t, 100.0, p.Categories.Grocery)
}

func TestScore_WeightedOverall(t *testing.T) {
	p := Score([]model.PointOfInterest{
		poi("g1", model.CategoryGrocery, 0.2),
		poi("r1", model.CategoryRestaurant, 0.3),
	})
	// grocery 25*.25 + dining 10*.20 + shopping 20*.15 = 6.25+2+3 = 11.25
	assert.Equal(t, 11.0, p.Score)
}

func TestScore_NearestKeepsMinimumDistance(t *testing.T) {
	p := Score([]model.PointOfInterest{
		poi("far", model.CategoryGrocery, 0.9),
		poi("near", model.CategoryGrocery, 0.2),
		poi("farther", model.CategoryGrocery, 1.8),
	})
	assert.Equal(t, "near", p.Nearest[model.CategoryGrocery].ID)
}

func TestScore_NearestIncludesBeyondRadius(t *testing.T) {
	// The nearest map tracks the closest POI seen even past the scoring
	// radius, so the narrative can name it.
	p := Score([]model.PointOfInterest{
		poi("g1", model.CategoryGrocery, 1.7),
	})
	assert.Equal(t, "g1", p.Nearest[model.CategoryGrocery].ID)
	assert.True(t, p.IsFoodDesert)
}

func TestScore_HighlightCounters(t *testing.T) {
	p := Score([]model.PointOfInterest{
		poi("g1", model.CategoryGrocery, 0.2),
		poi("r1", model.CategoryRestaurant, 0.3),
		poi("r2", model.CategoryRestaurant, 0.9),
		poi("h1", model.CategoryHealthcare, 0.5),
		poi("ph1", model.CategoryPharmacy, 0.5),
		poi("pk1", model.CategoryPark, 0.5),
		poi("gym1", model.CategoryGym, 0.5),
		poi("out", model.CategoryRestaurant, 1.4),
	})
	assert.Equal(t, 7, p.Highlights.TotalPOIs)
	assert.Equal(t, 1, p.Highlights.Grocery)
	assert.Equal(t, 2, p.Highlights.Restaurants)
	assert.Equal(t, 2, p.Highlights.Healthcare)
	assert.Equal(t, 1, p.Highlights.Parks)
	assert.Equal(t, 1, p.Highlights.Gyms)
}
