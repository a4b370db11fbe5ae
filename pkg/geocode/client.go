// Package geocode is a client for the Census reverse geocoding service.
// The pipeline consumes it as an opaque coordinate-to-place collaborator.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	benchmark = "Public_AR_Current"
	vintage   = "Current_Current"
)

// ErrNoMatch is returned when the coordinate resolves to no known place.
var ErrNoMatch = eris.New("geocode: no match for coordinate")

// Place is the address breakdown for a coordinate.
type Place struct {
	ZIP          string `json:"zip"`
	Jurisdiction string `json:"jurisdiction"`
	State        string `json:"state"`
}

// Client resolves a coordinate to a place.
type Client interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error)
}

// HTTPClient implements Client against the Census geographies endpoint.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewHTTPClient creates a rate-limited reverse geocoding client.
func NewHTTPClient(baseURL string, timeout time.Duration, ratePerSec float64) *HTTPClient {
	if ratePerSec <= 0 {
		ratePerSec = 2
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), 1),
	}
}

// geographiesResponse is the JSON response from the coordinates endpoint.
type geographiesResponse struct {
	Result struct {
		Geographies map[string][]geography `json:"geographies"`
	} `json:"result"`
}

type geography struct {
	Name  string `json:"NAME"`
	ZCTA5 string `json:"ZCTA5"`
}

// ReverseGeocode implements Client.
func (c *HTTPClient) ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"x":         {fmt.Sprintf("%f", lng)},
		"y":         {fmt.Sprintf("%f", lat)},
		"benchmark": {benchmark},
		"vintage":   {vintage},
		"format":    {"json"},
	}

	reqURL := c.baseURL + "/geographies/coordinates?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	var parsed geographiesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}

	place := placeFromGeographies(parsed.Result.Geographies)
	if place == nil {
		return nil, ErrNoMatch
	}
	return place, nil
}

// placeFromGeographies assembles a Place from the layered geography lists.
// An incorporated place name wins over the county name for the jurisdiction.
func placeFromGeographies(layers map[string][]geography) *Place {
	p := &Place{}

	if zctas := layers["ZIP Code Tabulation Areas"]; len(zctas) > 0 {
		p.ZIP = zctas[0].ZCTA5
	}
	if states := layers["States"]; len(states) > 0 {
		p.State = states[0].Name
	}
	if places := layers["Incorporated Places"]; len(places) > 0 {
		p.Jurisdiction = places[0].Name
	} else if counties := layers["Counties"]; len(counties) > 0 {
		p.Jurisdiction = counties[0].Name
	}

	if p.ZIP == "" || p.State == "" {
		return nil
	}
	return p
}
