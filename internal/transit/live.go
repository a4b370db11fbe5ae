// Package transit fetches transit stops from a live provider with a static
// pre-compiled fallback dataset.
package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/livability-cli/internal/geo"
	"github.com/sells-group/livability-cli/internal/model"
)

// LiveProvider is a live stops-near backend.
type LiveProvider interface {
	Name() string
	StopsNear(ctx context.Context, center model.Coordinate, radiusMiles float64) ([]model.TransitStop, error)
}

// HTTPProvider implements LiveProvider against a transit feed API.
type HTTPProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPProvider creates a live transit client. An empty base URL leaves it
// permanently failing, which routes every request to the static dataset.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Name implements LiveProvider.
func (p *HTTPProvider) Name() string { return "transit-live" }

// stopsResponse is the stops-near JSON envelope.
type stopsResponse struct {
	Stops []struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Type   string   `json:"type"`
		Agency string   `json:"agency"`
		Lat    float64  `json:"lat"`
		Lng    float64  `json:"lng"`
		Routes []string `json:"routes"`
	} `json:"stops"`
}

// StopsNear implements LiveProvider.
func (p *HTTPProvider) StopsNear(ctx context.Context, center model.Coordinate, radiusMiles float64) ([]model.TransitStop, error) {
	if p.baseURL == "" {
		return nil, eris.New("transit: live provider not configured")
	}

	params := url.Values{
		"lat":    {fmt.Sprintf("%f", center.Lat)},
		"lng":    {fmt.Sprintf("%f", center.Lng)},
		"radius": {fmt.Sprintf("%.0f", geo.MilesToMeters(radiusMiles))},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/stops?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "transit: build request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "transit: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("transit: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "transit: read response")
	}

	var parsed stopsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, eris.Wrap(err, "transit: parse response")
	}

	out := make([]model.TransitStop, 0, len(parsed.Stops))
	for _, s := range parsed.Stops {
		coord := model.Coordinate{Lat: s.Lat, Lng: s.Lng}
		dist := geo.DistanceMiles(center, coord)
		if dist > radiusMiles {
			continue
		}
		out = append(out, model.TransitStop{
			ID:            s.ID,
			Name:          s.Name,
			Type:          s.Type,
			Agency:        s.Agency,
			Coord:         coord,
			Routes:        s.Routes,
			DistanceMiles: dist,
		})
	}
	return out, nil
}
