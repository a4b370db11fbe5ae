package poi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/livability-cli/internal/model"
	"github.com/sells-group/livability-cli/internal/resilience"
)

const overpassBody = `{
	"elements": [
		{"type": "node", "id": 1, "lat": 37.5410, "lon": -77.4365,
		 "tags": {"name": "Corner Market", "shop": "supermarket"}},
		{"type": "node", "id": 2, "lat": 37.5402, "lon": -77.4350,
		 "tags": {"name": "Joe's", "amenity": "restaurant"}},
		{"type": "node", "id": 3, "lat": 37.5420, "lon": -77.4380,
		 "tags": {"amenity": "cafe"}}
	]
}`

func TestMirrorProvider_FirstMirrorServes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.Form.Get("data"), "out:json")
		w.Write([]byte(overpassBody)) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewMirrorProvider([]string{srv.URL}, 5*time.Second)
	res, err := p.Search(context.Background(), testCenter, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeData, res.Outcome)
	// The unnamed cafe is dropped.
	assert.Len(t, res.POIs, 2)
	assert.Equal(t, model.CategoryGrocery, res.POIs[0].Category)
	assert.Equal(t, model.CategoryRestaurant, res.POIs[1].Category)
}

func TestMirrorProvider_ServerErrorAdvancesToNextMirror(t *testing.T) {
	var firstHits atomic.Int32
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstHits.Add(1)
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(overpassBody)) //nolint:errcheck
	}))
	defer second.Close()

	p := NewMirrorProvider([]string{first.URL, second.URL}, 5*time.Second)
	res, err := p.Search(context.Background(), testCenter, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeData, res.Outcome)
	assert.Equal(t, int32(1), firstHits.Load())
}

func TestMirrorProvider_TimeoutAdvancesToNextMirror(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer slow.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(overpassBody)) //nolint:errcheck
	}))
	defer second.Close()

	p := NewMirrorProvider([]string{slow.URL, second.URL}, 50*time.Millisecond)
	res, err := p.Search(context.Background(), testCenter, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeData, res.Outcome)
}

func TestMirrorProvider_ClientErrorAborts(t *testing.T) {
	var secondHits atomic.Int32
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondHits.Add(1)
		w.Write([]byte(overpassBody)) //nolint:errcheck
	}))
	defer second.Close()

	p := NewMirrorProvider([]string{first.URL, second.URL}, 5*time.Second)
	_, err := p.Search(context.Background(), testCenter, 2)
	assert.True(t, resilience.IsPermanent(err))
	assert.Zero(t, secondHits.Load(), "4xx must not try further mirrors")
}

func TestMirrorProvider_AllMirrorsFailSoftEmpty(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	p := NewMirrorProvider([]string{down.URL, down.URL}, 5*time.Second)
	res, err := p.Search(context.Background(), testCenter, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEmpty, res.Outcome)
	assert.Empty(t, res.POIs)
}

func TestCategorizeTags(t *testing.T) {
	tests := []struct {
		tags     map[string]string
		category model.Category
	}{
		{map[string]string{"shop": "supermarket"}, model.CategoryGrocery},
		{map[string]string{"shop": "mall"}, model.CategoryShopping},
		{map[string]string{"amenity": "fast_food"}, model.CategoryRestaurant},
		{map[string]string{"amenity": "pharmacy"}, model.CategoryPharmacy},
		{map[string]string{"amenity": "clinic"}, model.CategoryHealthcare},
		{map[string]string{"amenity": "pub"}, model.CategoryBar},
		{map[string]string{"amenity": "fuel"}, model.CategoryGasStation},
		{map[string]string{"amenity": "cinema"}, model.CategoryEntertainment},
		{map[string]string{"leisure": "park"}, model.CategoryPark},
		{map[string]string{"leisure": "fitness_centre"}, model.CategoryGym},
	}
	for _, tt := range tests {
		got, _ := categorizeTags(tt.tags)
		assert.Equal(t, tt.category, got, "tags %v", tt.tags)
	}
}
