package vibe

import (
	"sort"

	"github.com/sells-group/livability-cli/internal/model"
)

// Label classification is a priority-ordered rule list: highest priority
// first, first match wins, with a guaranteed terminal catch-all. Each rule
// carries a distinct priority constant so the order is total. The threshold
// constants are empirically chosen and tunable, not derived.
type rule struct {
	priority int
	label    model.Label
	match    func(b model.Breakdown, foodDesert bool) bool
}

var rules = []rule{
	{100, model.LabelFoodDesert, func(b model.Breakdown, foodDesert bool) bool {
		return foodDesert
	}},
	{90, model.LabelUrbanOasis, func(b model.Breakdown, _ bool) bool {
		return b.Walkability >= 85 && b.Safety >= 75 && b.Amenities >= 80
	}},
	{85, model.LabelNeedsAttention, func(b model.Breakdown, _ bool) bool {
		low := 0
		for _, v := range []float64{b.Safety, b.Walkability, b.Transit, b.Amenities} {
			if v < 40 {
				low++
			}
		}
		return low >= 2
	}},
	{70, model.LabelTransitHub, func(b model.Breakdown, _ bool) bool {
		return b.Transit >= 80 && b.Walkability < 70
	}},
	{65, model.LabelHiddenGem, func(b model.Breakdown, _ bool) bool {
		return b.Safety >= 85 && b.Walkability >= 50 && b.Walkability < 75
	}},
	{60, model.LabelSuburbanComfort, func(b model.Breakdown, _ bool) bool {
		return b.Safety >= 70 && b.Walkability >= 30 && b.Walkability < 70 && b.Amenities >= 50
	}},
	{55, model.LabelCarCountry, func(b model.Breakdown, _ bool) bool {
		return b.Walkability < 40 && b.Safety >= 60 && b.Amenities >= 40
	}},
	{50, model.LabelUpAndComing, func(b model.Breakdown, _ bool) bool {
		avg := (b.Safety + b.Walkability + b.Transit + b.Amenities) / 4
		return avg >= 50 && avg < 70 && b.Safety >= 55
	}},
	{0, model.LabelBalanced, func(model.Breakdown, bool) bool {
		return true
	}},
}

func init() {
	// Evaluation depends on priority order, not declaration order.
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].priority > rules[j].priority
	})
}

// Classify returns the label for a breakdown. It is a pure function of its
// inputs and always matches at least the terminal rule.
func Classify(b model.Breakdown, foodDesert bool) model.Label {
	for _, r := range rules {
		if r.match(b, foodDesert) {
			return r.label
		}
	}
	return model.LabelBalanced
}
