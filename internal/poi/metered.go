package poi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/geo"
	"github.com/sells-group/livability-cli/internal/model"
	"github.com/sells-group/livability-cli/internal/resilience"
)

// queryGroups are the fixed text queries issued per analysis request, one
// metered call each.
var queryGroups = []struct {
	Term     string
	Category model.Category
}{
	{"grocery store", model.CategoryGrocery},
	{"restaurant", model.CategoryRestaurant},
	{"cafe", model.CategoryCafe},
	{"pharmacy", model.CategoryPharmacy},
	{"gym", model.CategoryGym},
	{"park", model.CategoryPark},
	{"bank", model.CategoryBank},
	{"bar", model.CategoryBar},
}

// CallsPerRequest is the number of metered calls one full analysis consumes.
func CallsPerRequest() int { return len(queryGroups) }

// MeteredProvider is the primary places-search backend. It self-reports
// Unavailable when unconfigured or when the daily budget cannot cover a
// full request, without issuing any call.
type MeteredProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	ledger     *QuotaLedger
	retry      resilience.RetryConfig
}

// NewMeteredProvider creates the primary provider. An empty API key leaves
// it permanently unavailable, which is a supported configuration.
func NewMeteredProvider(baseURL, apiKey string, timeout time.Duration, ledger *QuotaLedger) *MeteredProvider {
	return &MeteredProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		ledger:     ledger,
		retry:      resilience.DefaultRetryConfig(),
	}
}

// Name implements Provider.
func (p *MeteredProvider) Name() string { return "places" }

// Configured reports whether the provider has credentials.
func (p *MeteredProvider) Configured() bool { return p.apiKey != "" }

// Search implements Provider. It issues one call per query group, merges
// the results, and dedupes by provider ID keeping the first occurrence.
func (p *MeteredProvider) Search(ctx context.Context, center model.Coordinate, radiusMiles float64) (Result, error) {
	if !p.Configured() {
		return Result{Outcome: OutcomeUnavailable}, nil
	}
	// Reservation counts query groups, not HTTP attempts: with the default
	// retry policy (MaxAttempts 2) a transient-heavy request can issue up to
	// twice the reserved call count against the upstream quota.
	if !p.ledger.TryReserve(CallsPerRequest()) {
		zap.L().Info("poi: daily budget exhausted, skipping metered provider",
			zap.Int("remaining", p.ledger.Remaining()),
		)
		return Result{Outcome: OutcomeUnavailable}, nil
	}

	var merged []model.PointOfInterest
	failures := 0
	for _, g := range queryGroups {
		records, err := resilience.DoVal(ctx, p.retry, func(ctx context.Context) ([]model.PointOfInterest, error) {
			return p.searchGroup(ctx, center, radiusMiles, g.Term, g.Category)
		})
		if err != nil {
			failures++
			zap.L().Warn("poi: metered query group failed",
				zap.String("term", g.Term),
				zap.Error(err),
			)
			continue
		}
		merged = append(merged, records...)
	}

	// Every group failing means the provider was effectively unreachable;
	// let the cascade fall back rather than trusting a hollow empty.
	if failures == len(queryGroups) {
		return Result{Outcome: OutcomeUnavailable}, nil
	}

	merged = dedupe(merged)
	if len(merged) == 0 {
		return Result{Outcome: OutcomeEmpty}, nil
	}
	return Result{Outcome: OutcomeData, POIs: merged}, nil
}

// placesRequest is the text-search request body.
type placesRequest struct {
	TextQuery    string `json:"textQuery"`
	LocationBias struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationBias"`
}

// placesResponse is the text-search response body.
type placesResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		PrimaryType string  `json:"primaryType"`
		Rating      float64 `json:"rating"`
	} `json:"places"`
}

func (p *MeteredProvider) searchGroup(ctx context.Context, center model.Coordinate, radiusMiles float64, term string, category model.Category) ([]model.PointOfInterest, error) {
	var body placesRequest
	body.TextQuery = term
	body.LocationBias.Circle.Center.Latitude = center.Lat
	body.LocationBias.Circle.Center.Longitude = center.Lng
	body.LocationBias.Circle.Radius = geo.MilesToMeters(radiusMiles)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, eris.Wrap(err, "poi: marshal places request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/places:searchText", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "poi: build places request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", p.apiKey)
	req.Header.Set("X-Goog-FieldMask", "places.id,places.displayName,places.location,places.primaryType,places.rating")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "poi: places request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.ClassifyHTTPStatus(
			eris.Errorf("poi: places returned status %d", resp.StatusCode),
			resp.StatusCode,
		)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "poi: read places response")
	}

	var parsed placesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, eris.Wrap(err, "poi: parse places response")
	}

	out := make([]model.PointOfInterest, 0, len(parsed.Places))
	for _, rec := range parsed.Places {
		if rec.ID == "" || rec.DisplayName.Text == "" {
			continue
		}
		coord := model.Coordinate{Lat: rec.Location.Latitude, Lng: rec.Location.Longitude}
		dist := geo.DistanceMiles(center, coord)
		if dist > radiusMiles {
			continue
		}
		out = append(out, model.PointOfInterest{
			ID:            fmt.Sprintf("places/%s", rec.ID),
			Name:          rec.DisplayName.Text,
			Category:      category,
			Subcategory:   rec.PrimaryType,
			Coord:         coord,
			DistanceMiles: dist,
			Rating:        rec.Rating,
		})
	}
	return out, nil
}
