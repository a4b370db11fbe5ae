package transit

import (
	_ "embed"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/livability-cli/internal/geo"
	"github.com/sells-group/livability-cli/internal/model"
)

//go:embed stops.yaml
var stopsYAML []byte

// StaticDataset is the pre-compiled stop table used when the live provider
// returns nothing. Loaded once at process start.
type StaticDataset struct {
	stops []staticStop
}

type staticStop struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Agency string   `yaml:"agency"`
	Lat    float64  `yaml:"lat"`
	Lng    float64  `yaml:"lng"`
	Routes []string `yaml:"routes"`
}

// LoadStaticDataset parses the embedded stop table.
func LoadStaticDataset() (*StaticDataset, error) {
	var raw struct {
		Stops []staticStop `yaml:"stops"`
	}
	if err := yaml.Unmarshal(stopsYAML, &raw); err != nil {
		return nil, eris.Wrap(err, "transit: parse static stops")
	}
	if len(raw.Stops) == 0 {
		return nil, eris.New("transit: static stop table is empty")
	}
	return &StaticDataset{stops: raw.Stops}, nil
}

// StopsWithin returns the static stops inside the radius, nearest first,
// with straight-line distances from the query point.
func (d *StaticDataset) StopsWithin(center model.Coordinate, radiusMiles float64) []model.TransitStop {
	var out []model.TransitStop
	for _, s := range d.stops {
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
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceMiles < out[j].DistanceMiles })
	return out
}
