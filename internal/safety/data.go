package safety

import (
	_ "embed"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/livability-cli/internal/model"
)

//go:embed crimerates.yaml
var crimeRatesYAML []byte

// Dataset holds the static crime-rate table loaded at process start.
// Rates are annual counts per 100,000 residents.
type Dataset struct {
	Source        string                      `yaml:"source"`
	National      model.CrimeRates            `yaml:"national"`
	Jurisdictions map[string]model.CrimeRates `yaml:"jurisdictions"`
}

// LoadDataset parses the embedded crime-rate table.
func LoadDataset() (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(crimeRatesYAML, &ds); err != nil {
		return nil, eris.Wrap(err, "safety: parse crime rates")
	}
	if len(ds.Jurisdictions) == 0 {
		return nil, eris.New("safety: crime rate table is empty")
	}
	return &ds, nil
}

// Lookup returns the crime rates for a jurisdiction, matching
// case-insensitively and ignoring common suffixes ("City of X", "X city",
// "X County"). The second return is false when the jurisdiction is unknown.
func (ds *Dataset) Lookup(jurisdiction string) (model.CrimeRates, bool) {
	key := normalizeJurisdiction(jurisdiction)
	if key == "" {
		return model.CrimeRates{}, false
	}
	rates, ok := ds.Jurisdictions[key]
	return rates, ok
}

func normalizeJurisdiction(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "city of ")
	s = strings.TrimSuffix(s, " city")
	s = strings.TrimSuffix(s, " county")
	return strings.TrimSpace(s)
}
