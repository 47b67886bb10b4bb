package qualification

import (
	"strings"

	"github.com/garcia-realty/leadflow/internal/leads"
	"github.com/garcia-realty/leadflow/internal/signals"
)

// GeneralQualifier handles leads that are neither seller nor buyer.
// There is no structured data to score, so it leans on behavioral
// signals and message substance.
type GeneralQualifier struct{}

func NewGeneralQualifier() *GeneralQualifier {
	return &GeneralQualifier{}
}

// Qualify marks the lead warm when urgency is high or the message is
// substantial (more than 30 words), cold otherwise. General leads are
// never qualified outright.
func (q *GeneralQualifier) Qualify(message string, _ leads.History, analysis signals.Analysis) Outcome {
	words := len(strings.Fields(message))

	out := Outcome{
		Temperature: TemperatureCold,
		Scores: map[string]float64{
			"urgency":    analysis.UrgencyScore,
			"word_count": float64(words),
		},
	}

	if analysis.UrgencyScore >= 0.7 || words > 30 {
		out.Temperature = TemperatureWarm
		out.Actions = []TagAction{addTag(TagWarmLead)}
	} else {
		out.Actions = []TagAction{addTag(TagColdLead)}
	}
	return out
}
