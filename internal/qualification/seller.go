package qualification

import (
	"github.com/garcia-realty/leadflow/internal/leads"
	"github.com/garcia-realty/leadflow/internal/signals"
)

// Outcome is what a qualifier decides for one lead.
type Outcome struct {
	Temperature Temperature
	Qualified   bool
	Scores      map[string]float64
	Actions     []TagAction
}

// SellerQualifier scores seller leads on the four preference fields
// gathered across the conversation: motivation, timeline, property
// condition, and price expectation.
type SellerQualifier struct{}

func NewSellerQualifier() *SellerQualifier {
	return &SellerQualifier{}
}

// Qualify counts the populated preference fields from the whole
// history. All four fields make a hot, qualified seller; three make a
// warm one.
func (q *SellerQualifier) Qualify(history leads.History, _ signals.Analysis) Outcome {
	prefs := history.MergedSellerPreferences()
	populated := 0
	if prefs != nil {
		populated = prefs.PopulatedFields()
	}

	out := Outcome{
		Temperature: TemperatureCold,
		Scores: map[string]float64{
			"preference_fields": float64(populated),
		},
	}

	switch {
	case populated >= 4:
		out.Temperature = TemperatureHot
		out.Qualified = true
		out.Actions = []TagAction{addTag(TagHotSeller), addTag(TagSellerQualified)}
	case populated == 3:
		out.Temperature = TemperatureWarm
		out.Actions = []TagAction{addTag(TagWarmSeller)}
	default:
		out.Actions = []TagAction{addTag(TagColdSeller)}
	}
	return out
}
