package qualification

import (
	"github.com/garcia-realty/leadflow/internal/leads"
	"github.com/garcia-realty/leadflow/internal/signals"
)

// BuyerQualifier scores buyer leads on financial readiness and buying
// motivation, each on a 0-100 scale. The maximum value seen across the
// conversation counts; scores only ratchet upward.
type BuyerQualifier struct{}

func NewBuyerQualifier() *BuyerQualifier {
	return &BuyerQualifier{}
}

// Qualify bands the lead: both scores at 70 or above is hot, an
// average of 50 or above is warm, anything else cold. Qualified means
// both scores reached 50.
func (q *BuyerQualifier) Qualify(history leads.History, _ signals.Analysis) Outcome {
	financial, motivation := history.MaxBuyerScores()
	avg := (financial + motivation) / 2

	out := Outcome{
		Temperature: TemperatureCold,
		Qualified:   financial >= 50 && motivation >= 50,
		Scores: map[string]float64{
			"financial_readiness": financial,
			"buying_motivation":   motivation,
		},
	}

	switch {
	case financial >= 70 && motivation >= 70:
		out.Temperature = TemperatureHot
		out.Actions = []TagAction{addTag(TagHotBuyer)}
	case avg >= 50:
		out.Temperature = TemperatureWarm
		out.Actions = []TagAction{addTag(TagWarmBuyer)}
	default:
		out.Actions = []TagAction{addTag(TagColdBuyer)}
	}
	if out.Qualified {
		out.Actions = append(out.Actions, addTag(TagBuyerQualified))
	}
	return out
}
