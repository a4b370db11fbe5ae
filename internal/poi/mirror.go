package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/geo"
	"github.com/sells-group/livability-cli/internal/model"
	"github.com/sells-group/livability-cli/internal/resilience"
)

// MirrorProvider is the unmetered fallback backend. It runs one Overpass
// query against an ordered mirror list: a client-side rejection aborts the
// cascade, a server error or timeout advances to the next mirror, and all
// mirrors failing degrades to an empty result.
type MirrorProvider struct {
	httpClient *http.Client
	mirrors    []string
}

// NewMirrorProvider creates the fallback provider over the given mirrors.
func NewMirrorProvider(mirrors []string, timeout time.Duration) *MirrorProvider {
	return &MirrorProvider{
		httpClient: &http.Client{Timeout: timeout},
		mirrors:    mirrors,
	}
}

// Name implements Provider.
func (p *MirrorProvider) Name() string { return "overpass" }

// Search implements Provider.
func (p *MirrorProvider) Search(ctx context.Context, center model.Coordinate, radiusMiles float64) (Result, error) {
	query := buildQuery(center, geo.MilesToMeters(radiusMiles))

	for _, mirror := range p.mirrors {
		pois, err := p.queryMirror(ctx, mirror, center, radiusMiles, query)
		if err == nil {
			if len(pois) == 0 {
				return Result{Outcome: OutcomeEmpty}, nil
			}
			return Result{Outcome: OutcomeData, POIs: pois}, nil
		}
		if resilience.IsPermanent(err) {
			// The query itself is rejected; other mirrors would reject it too.
			return Result{Outcome: OutcomeEmpty}, err
		}
		zap.L().Warn("poi: mirror failed, advancing",
			zap.String("mirror", mirror),
			zap.Error(err),
		)
	}

	zap.L().Warn("poi: all mirrors failed", zap.Int("mirrors", len(p.mirrors)))
	return Result{Outcome: OutcomeEmpty}, nil
}

// buildQuery renders the Overpass QL covering every scored amenity tag.
func buildQuery(center model.Coordinate, radiusMeters float64) string {
	around := fmt.Sprintf("around:%.0f,%.6f,%.6f", radiusMeters, center.Lat, center.Lng)
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["shop"~"supermarket|convenience|greengrocer|mall|department_store"](%[1]s);
  node["amenity"~"restaurant|cafe|fast_food|pharmacy|clinic|doctors|hospital|bar|pub|bank|fuel|school|cinema|theatre"](%[1]s);
  node["leisure"~"park|fitness_centre|sports_centre"](%[1]s);
);
out body 500;`, around)
}

// overpassResponse is the Overpass JSON envelope.
type overpassResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func (p *MirrorProvider) queryMirror(ctx context.Context, mirror string, center model.Coordinate, radiusMiles float64, query string) ([]model.PointOfInterest, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "poi: build overpass request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "poi: overpass request"), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.ClassifyHTTPStatus(
			eris.Errorf("poi: overpass %s returned status %d", mirror, resp.StatusCode),
			resp.StatusCode,
		)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "poi: read overpass response"), 0)
	}

	var parsed overpassResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "poi: parse overpass response"), 0)
	}

	var out []model.PointOfInterest
	for _, el := range parsed.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		category, subcategory := categorizeTags(el.Tags)
		if category == "" {
			continue
		}
		coord := model.Coordinate{Lat: el.Lat, Lng: el.Lon}
		dist := geo.DistanceMiles(center, coord)
		if dist > radiusMiles {
			continue
		}
		out = append(out, model.PointOfInterest{
			ID:            fmt.Sprintf("%s/%d", el.Type, el.ID),
			Name:          name,
			Category:      category,
			Subcategory:   subcategory,
			Coord:         coord,
			DistanceMiles: dist,
		})
	}
	return dedupe(out), nil
}

// categorizeTags maps OSM tags onto the closed category enum.
func categorizeTags(tags map[string]string) (model.Category, string) {
	if shop := tags["shop"]; shop != "" {
		switch shop {
		case "supermarket", "convenience", "greengrocer":
			return model.CategoryGrocery, shop
		case "mall", "department_store":
			return model.CategoryShopping, shop
		default:
			return model.CategoryShopping, shop
		}
	}
	if amenity := tags["amenity"]; amenity != "" {
		switch amenity {
		case "restaurant", "fast_food":
			return model.CategoryRestaurant, amenity
		case "cafe":
			return model.CategoryCafe, amenity
		case "pharmacy":
			return model.CategoryPharmacy, amenity
		case "clinic", "doctors", "hospital":
			return model.CategoryHealthcare, amenity
		case "bar", "pub":
			return model.CategoryBar, amenity
		case "bank":
			return model.CategoryBank, amenity
		case "fuel":
			return model.CategoryGasStation, amenity
		case "school":
			return model.CategorySchool, amenity
		case "cinema", "theatre":
			return model.CategoryEntertainment, amenity
		default:
			return model.CategoryOther, amenity
		}
	}
	if leisure := tags["leisure"]; leisure != "" {
		switch leisure {
		case "park":
			return model.CategoryPark, leisure
		case "fitness_centre", "sports_centre":
			return model.CategoryGym, leisure
		default:
			return model.CategoryOther, leisure
		}
	}
	return "", ""
}
