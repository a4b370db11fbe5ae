package vibe

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/livability-cli/internal/model"
	"github.com/sells-group/livability-cli/pkg/anthropic"
)

// Narrative is the structured replacement a narrator may produce for the
// rule-based summary/pros/cons.
type Narrative struct {
	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
	Summary string   `json:"summary"`
}

// Narrator generates an intent-personalized narrative from a digest of the
// computed profiles. Implementations return an error for any transport,
// quota, or format failure; callers treat every error as "no replacement".
type Narrator interface {
	Generate(ctx context.Context, intent model.Intent, digest string) (*Narrative, error)
}

var intentInstructions = map[model.Intent]string{
	model.IntentFamily:    "The reader is choosing a place to raise a family. Weigh safety, schools, parks, and healthcare most heavily.",
	model.IntentNightlife: "The reader prioritizes nightlife and social life. Weigh bars, restaurants, and late-night transit most heavily.",
	model.IntentQuiet:     "The reader wants a quiet, low-activity area. Treat density of bars and entertainment as a drawback, not a perk.",
	model.IntentCommuter:  "The reader commutes daily without a car. Weigh transit access and reliability most heavily.",
}

const narratorSystem = `You write short, factual neighborhood assessments for a livability report.
Respond with a single JSON object: {"pros": [...], "cons": [...], "summary": "..."}.
Pros and cons are short bullet phrases grounded only in the data provided. Do not invent places or statistics.
Return 3-5 pros, 2-4 cons, and a one or two sentence summary. No text outside the JSON object.`

const (
	narratorMaxTokens   = 1024
	digestMaxPOIs       = 100
	digestNamesPerCat   = 3
	narratorTemperature = 0.3
)

// AnthropicNarrator generates narratives with the Claude API.
type AnthropicNarrator struct {
	client anthropic.Client
	model  string
}

// NewAnthropicNarrator returns a narrator backed by the given client.
func NewAnthropicNarrator(client anthropic.Client, modelName string) *AnthropicNarrator {
	return &AnthropicNarrator{client: client, model: modelName}
}

// Generate asks the model for a replacement narrative. The returned
// narrative is shape-validated by the caller, not here.
func (n *AnthropicNarrator) Generate(ctx context.Context, intent model.Intent, digest string) (*Narrative, error) {
	instruction, ok := intentInstructions[intent]
	if !ok {
		instruction = "Give a balanced overall assessment."
	}

	temp := narratorTemperature
	resp, err := n.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       n.model,
		MaxTokens:   narratorMaxTokens,
		System:      narratorSystem,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: instruction + "\n\n" + digest},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "vibe: narrator request")
	}
	resp.Usage.LogUsage(n.model, "narrative")

	var out Narrative
	if err := json.Unmarshal([]byte(extractJSON(resp.Text())), &out); err != nil {
		return nil, eris.Wrap(err, "vibe: parse narrator response")
	}
	return &out, nil
}

// extractJSON trims any prose the model wrapped around the JSON object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

// BuildDigest renders the computed profiles and the nearest POIs as the
// structured text handed to the narrator.
func BuildDigest(place model.Place, safety model.SafetyProfile, mobility model.MobilityProfile, amenity model.AmenityProfile, pois []model.PointOfInterest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Location: %s, %s (ZIP %s)\n", place.Jurisdiction, place.State, place.ZIP)
	fmt.Fprintf(&b, "Safety: score %.0f (grade %s, risk %s, %+.0f%% vs national)\n",
		safety.Score, safety.Grade, safety.RiskTier, safety.VsNational)
	fmt.Fprintf(&b, "Walkability: %.0f (%s)\n", mobility.WalkScore, mobility.WalkLabel)
	fmt.Fprintf(&b, "Transit: %.0f (%s)\n", mobility.TransitScore, mobility.TransitLabel)
	fmt.Fprintf(&b, "Bike: %.0f (%s)\n", mobility.BikeScore, mobility.BikeLabel)
	fmt.Fprintf(&b, "Amenities: %.0f across %d places\n", amenity.Score, amenity.Highlights.TotalPOIs)
	if amenity.IsFoodDesert {
		b.WriteString("Note: no grocery store within a mile (food desert)\n")
	}

	sorted := make([]model.PointOfInterest, len(pois))
	copy(sorted, pois)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DistanceMiles < sorted[j].DistanceMiles
	})
	if len(sorted) > digestMaxPOIs {
		sorted = sorted[:digestMaxPOIs]
	}

	byCat := make(map[model.Category][]model.PointOfInterest)
	for _, p := range sorted {
		byCat[p.Category] = append(byCat[p.Category], p)
	}

	cats := make([]string, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)

	b.WriteString("Nearby places by category:\n")
	for _, c := range cats {
		group := byCat[model.Category(c)]
		names := make([]string, 0, digestNamesPerCat)
		for _, p := range group {
			if len(names) == digestNamesPerCat {
				break
			}
			if p.Name != "" {
				names = append(names, p.Name)
			}
		}
		fmt.Fprintf(&b, "- %s: %d", c, len(group))
		if len(names) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(names, ", "))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// acceptNarrative reports whether a narrator response is usable.
func acceptNarrative(n *Narrative) bool {
	if n == nil {
		return false
	}
	return len(n.Pros) >= 2 && len(n.Cons) >= 1
}

func logNarratorSkip(err error) {
	zap.L().Warn("narrator failed, keeping rule-based narrative", zap.Error(err))
}
