package signals

// TriggerCategory classifies a behavioral trigger.
type TriggerCategory string

const (
	TriggerHedging          TriggerCategory = "hedging"
	TriggerCommitment       TriggerCategory = "commitment"
	TriggerUrgencyShift     TriggerCategory = "urgency_shift"
	TriggerObjection        TriggerCategory = "objection"
	TriggerStall            TriggerCategory = "stall"
	TriggerPriceSensitivity TriggerCategory = "price_sensitivity"
	TriggerLatencyAnomaly   TriggerCategory = "latency_anomaly"
	TriggerEngagementDrop   TriggerCategory = "engagement_drop"
)

// DriftDirection is the trend classification of the engagement
// trajectory for the current message.
type DriftDirection string

const (
	DriftWarming DriftDirection = "warming"
	DriftCooling DriftDirection = "cooling"
	DriftStable  DriftDirection = "stable"
)

// Technique is the negotiation technique recommended to the downstream
// response layer. Empty means no recommendation.
type Technique string

const (
	TechniqueNone               Technique = ""
	TechniqueDirectChallenge    Technique = "direct_challenge"
	TechniqueTacticalEmpathy    Technique = "tactical_empathy"
	TechniqueLabeling           Technique = "labeling"
	TechniqueAnchoring          Technique = "anchoring"
	TechniqueCalibratedQuestion Technique = "calibrated_question"
)

// Trigger is one detected behavioral signal.
type Trigger struct {
	Category          TriggerCategory `json:"category"`
	Confidence        float64         `json:"confidence"`
	Description       string          `json:"description"`
	RecommendedAction string          `json:"recommended_action"`
	RawSignal         map[string]any  `json:"raw_signal,omitempty"`
}

// Analysis is the normalized behavioral record for one inbound message.
// It is computed once per pipeline invocation and never mutated after
// creation.
type Analysis struct {
	Triggers             []Trigger      `json:"triggers,omitempty"`
	CompositeScore       float64        `json:"composite_score"`
	DriftDirection       DriftDirection `json:"drift_direction"`
	HedgingScore         float64        `json:"hedging_score"`
	UrgencyScore         float64        `json:"urgency_score"`
	CommitmentScore      float64        `json:"commitment_score"`
	RecommendedTechnique Technique      `json:"recommended_technique,omitempty"`
	LatencyFactor        float64        `json:"latency_factor"`
}

// Zero returns the all-zero analysis used when no signal data is
// available (empty message, missing collaborator, or extraction fault).
func Zero() Analysis {
	return Analysis{DriftDirection: DriftStable}
}

// HasTrigger reports whether a trigger of the given category is present.
func (a Analysis) HasTrigger(category TriggerCategory) bool {
	for _, trig := range a.Triggers {
		if trig.Category == category {
			return true
		}
	}
	return false
}
