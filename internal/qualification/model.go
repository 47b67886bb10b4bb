package qualification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garcia-realty/leadflow/internal/leads"
	"github.com/garcia-realty/leadflow/internal/signals"
)

// LeadType is the routing classification for an inbound contact.
type LeadType string

const (
	LeadTypeSeller  LeadType = "seller"
	LeadTypeBuyer   LeadType = "buyer"
	LeadTypeGeneral LeadType = "general"
)

// Temperature is the qualification outcome band.
type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureWarm Temperature = "warm"
	TemperatureCold Temperature = "cold"
)

// Stage is a pipeline phase. Stages advance strictly forward, one step
// at a time; StageError is terminal and reachable from anywhere.
type Stage string

const (
	StageClassifying Stage = "classifying"
	StageAnalyzing   Stage = "analyzing"
	StageCompliance  Stage = "compliance"
	StageQualifying  Stage = "qualifying"
	StageScoring     Stage = "scoring"
	StageComplete    Stage = "complete"
	StageError       Stage = "error"
)

var stageOrder = map[Stage]int{
	StageClassifying: 0,
	StageAnalyzing:   1,
	StageCompliance:  2,
	StageQualifying:  3,
	StageScoring:     4,
	StageComplete:    5,
}

// Tags consulted and produced by the pipeline.
const (
	TagSellerQualified = "seller-qualified"
	TagBuyerQualified  = "buyer-qualified"
	TagHotSeller       = "hot-seller"
	TagWarmSeller      = "warm-seller"
	TagColdSeller      = "cold-seller"
	TagHotBuyer        = "hot-buyer"
	TagWarmBuyer       = "warm-buyer"
	TagColdBuyer       = "cold-buyer"
	TagWarmLead        = "warm-lead"
	TagColdLead        = "cold-lead"
	TagTCPAOptOut      = "tcpa-opt-out"
)

// PipelineState tracks the stage of one run.
type PipelineState struct {
	Stage Stage
}

func newPipelineState() *PipelineState {
	return &PipelineState{Stage: StageClassifying}
}

// advance moves to next, rejecting skips and backward moves. StageError
// is always reachable.
func (s *PipelineState) advance(next Stage) error {
	if next == StageError {
		s.Stage = next
		return nil
	}
	cur, ok := stageOrder[s.Stage]
	if !ok {
		return fmt.Errorf("%w: cannot leave %s", ErrInvalidTransition, s.Stage)
	}
	want, ok := stageOrder[next]
	if !ok {
		return fmt.Errorf("%w: unknown stage %s", ErrInvalidTransition, next)
	}
	if want != cur+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Stage, next)
	}
	s.Stage = next
	return nil
}

// Request is one inbound message to run through the pipeline.
type Request struct {
	ContactID         string            `json:"contact_id"`
	LocationID        string            `json:"location_id"`
	Message           string            `json:"message"`
	Tags              []string          `json:"tags,omitempty"`
	ContactInfo       map[string]string `json:"contact_info,omitempty"`
	History           leads.History     `json:"history,omitempty"`
	ResponseLatencyMS float64           `json:"response_latency_ms,omitempty"`
}

// TagAction is an instruction for the CRM integration layer.
type TagAction struct {
	Type string `json:"type"`
	Tag  string `json:"tag"`
}

func addTag(tag string) TagAction {
	return TagAction{Type: "add_tag", Tag: tag}
}

// Result is the pipeline output for one request.
type Result struct {
	ID                 uuid.UUID          `json:"id"`
	Success            bool               `json:"success"`
	ContactID          string             `json:"contact_id"`
	LocationID         string             `json:"location_id"`
	LeadType           LeadType           `json:"lead_type"`
	Temperature        Temperature        `json:"temperature"`
	IsQualified        bool               `json:"is_qualified"`
	BehavioralSignals  signals.Analysis   `json:"behavioral_signals"`
	QualificationStage Stage              `json:"qualification_stage"`
	Scores             map[string]float64 `json:"scores,omitempty"`
	Actions            []TagAction        `json:"actions,omitempty"`
	Error              string             `json:"error,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}
