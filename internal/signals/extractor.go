package signals

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/garcia-realty/leadflow/internal/leads"
	"github.com/garcia-realty/leadflow/pkg/logging"
)

var extractorTracer = otel.Tracer("leadflow/signal-extractor")

const (
	// expectedLatencyMS is the response gap treated as "normal"; the
	// latency sigmoid is centered on it.
	expectedLatencyMS = 60000.0

	// latencyAnomalyThreshold is the factor at or above which a
	// latency_anomaly trigger is emitted.
	latencyAnomalyThreshold = 0.7

	// engagementDropThreshold is the word-count drop beyond which an
	// engagement_drop trigger is emitted.
	engagementDropThreshold = 0.5

	// engagementWindow is how many recent customer turns feed the
	// engagement baseline.
	engagementWindow = 5

	// negationShift is the share of a one-sided hedging/commitment
	// score that a negation marker moves to the opposite side. A
	// heuristic, not exact cancellation; anywhere in the 0.5-0.7 band
	// behaves acceptably.
	negationShift = 0.6
)

// Extractor derives a behavioral Analysis from one inbound message plus
// optional history and response latency. It is pure and deterministic:
// identical inputs always produce identical output, malformed input
// never panics, and an empty message yields the zero analysis.
type Extractor struct {
	profile *PatternProfile
	logger  *logging.Logger
}

// NewExtractor creates an extractor with the given profile. A nil
// profile selects the default pattern banks.
func NewExtractor(profile *PatternProfile, logger *logging.Logger) *Extractor {
	if profile == nil {
		profile = DefaultProfile()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{profile: profile, logger: logger}
}

// Analyze computes the behavioral analysis for message. latencyMS <= 0
// means no latency measurement was supplied. The only error returned is
// a context cancellation; extraction itself cannot fail.
func (e *Extractor) Analyze(ctx context.Context, message, contactID string, history leads.History, latencyMS float64) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Zero(), err
	}

	ctx, span := extractorTracer.Start(ctx, "signals.Analyze")
	defer span.End()
	_ = ctx

	message = strings.TrimSpace(message)
	if message == "" {
		return Zero(), nil
	}

	hedgingHits := matchBank(e.profile.Hedging, message)
	commitmentHits := matchBank(e.profile.Commitment, message)
	urgencyHits := matchBank(e.profile.Urgency, message)
	objectionHits := matchBank(e.profile.Objection, message)
	stallHits := matchBank(e.profile.Stall, message)
	priceHits := matchBank(e.profile.PriceSensitivity, message)
	negationHits := matchBank(e.profile.Negation, message)

	hedging := bankScore(hedgingHits)
	commitment := bankScore(commitmentHits)
	urgency := bankScore(urgencyHits)

	// A negation marker with hits on only one polarity side moves most
	// of that side's weight to the other side.
	if len(negationHits) > 0 {
		switch {
		case hedging > 0 && commitment == 0:
			commitment = clamp01(hedging * negationShift)
			hedging = clamp01(hedging * (1 - negationShift))
		case commitment > 0 && hedging == 0:
			hedging = clamp01(commitment * negationShift)
			commitment = clamp01(commitment * (1 - negationShift))
		}
	}

	latencyFactor := 0.0
	if latencyMS > 0 {
		ratio := latencyMS / expectedLatencyMS
		latencyFactor = 1.0 / (1.0 + math.Exp(-3.0*(ratio-1.0)))
	}

	wordCount := len(strings.Fields(message))
	engagementDrop := engagementDropScore(wordCount, history)

	composite := 0.30*commitment +
		0.25*urgency +
		0.20*(1-hedging) +
		0.15*(1-latencyFactor) +
		0.10*math.Min(float64(wordCount)/50.0, 1.0)
	composite = clamp01(composite)

	analysis := Analysis{
		CompositeScore:  composite,
		HedgingScore:    hedging,
		UrgencyScore:    urgency,
		CommitmentScore: commitment,
		LatencyFactor:   latencyFactor,
		DriftDirection:  driftDirection(hedging, commitment, urgency),
	}

	analysis.Triggers = e.buildTriggers(
		hedging, commitment, urgency, latencyFactor, engagementDrop,
		hedgingHits, commitmentHits, urgencyHits, objectionHits, stallHits, priceHits,
	)
	analysis.RecommendedTechnique = recommendTechnique(analysis, len(stallHits) > 0, len(objectionHits) > 0)

	span.SetAttributes(
		attribute.String("contact_id", contactID),
		attribute.Float64("composite_score", analysis.CompositeScore),
		attribute.String("drift", string(analysis.DriftDirection)),
		attribute.Int("trigger_count", len(analysis.Triggers)),
	)
	e.logger.Debug("behavioral analysis computed",
		"contact_id", contactID,
		"composite", analysis.CompositeScore,
		"drift", analysis.DriftDirection,
		"triggers", len(analysis.Triggers),
	)

	return analysis, nil
}

// bankScore aggregates matched pattern confidences: the mean, boosted
// for repeated hits with diminishing returns, clamped to 1.
func bankScore(hits []signalPattern) float64 {
	if len(hits) == 0 {
		return 0
	}
	sum := 0.0
	for _, hit := range hits {
		sum += hit.confidence
	}
	mean := sum / float64(len(hits))
	score := mean * (1 + math.Log1p(float64(len(hits)-1))*0.3)
	return clamp01(score)
}

// engagementDropScore compares the current message length against the
// mean length of the most recent turns. Zero when there is no baseline.
func engagementDropScore(wordCount int, history leads.History) float64 {
	recent := history.LastTurns(engagementWindow)
	if len(recent) == 0 {
		return 0
	}
	total := 0
	for _, turn := range recent {
		total += len(strings.Fields(turn.Text))
	}
	avg := float64(total) / float64(len(recent))
	if avg <= 0 {
		return 0
	}
	return math.Max(0, 1-float64(wordCount)/avg)
}

func driftDirection(hedging, commitment, urgency float64) DriftDirection {
	positive := commitment + urgency
	switch {
	case positive > hedging+0.3:
		return DriftWarming
	case hedging > positive+0.3:
		return DriftCooling
	default:
		return DriftStable
	}
}

// recommendTechnique applies the strict technique priority ladder.
func recommendTechnique(a Analysis, stallPresent, objectionPresent bool) Technique {
	switch {
	case stallPresent:
		return TechniqueDirectChallenge
	case objectionPresent:
		return TechniqueTacticalEmpathy
	case a.HedgingScore >= 0.5:
		return TechniqueLabeling
	case a.CommitmentScore >= 0.6:
		return TechniqueAnchoring
	case a.UrgencyScore >= 0.5:
		return TechniqueCalibratedQuestion
	default:
		return TechniqueNone
	}
}

func (e *Extractor) buildTriggers(
	hedging, commitment, urgency, latencyFactor, engagementDrop float64,
	hedgingHits, commitmentHits, urgencyHits, objectionHits, stallHits, priceHits []signalPattern,
) []Trigger {
	var triggers []Trigger

	appendBank := func(category TriggerCategory, score float64, hits []signalPattern, action string) {
		if len(hits) == 0 {
			return
		}
		keywords := make([]string, 0, len(hits))
		for _, hit := range hits {
			keywords = append(keywords, hit.keyword)
		}
		triggers = append(triggers, Trigger{
			Category:          category,
			Confidence:        score,
			Description:       fmt.Sprintf("%s language detected: %s", category, strings.Join(keywords, ", ")),
			RecommendedAction: action,
			RawSignal: map[string]any{
				"matched_keywords": keywords,
				"hit_count":        len(hits),
			},
		})
	}

	appendBank(TriggerHedging, hedging, hedgingHits, "Label the hesitation before pushing forward")
	appendBank(TriggerCommitment, commitment, commitmentHits, "Anchor next steps while intent is high")
	appendBank(TriggerUrgencyShift, urgency, urgencyHits, "Tighten follow-up cadence")
	appendBank(TriggerObjection, bankScore(objectionHits), objectionHits, "Acknowledge the concern before redirecting")
	appendBank(TriggerStall, bankScore(stallHits), stallHits, "Challenge the delay and restate the cost of waiting")
	appendBank(TriggerPriceSensitivity, bankScore(priceHits), priceHits, "Reframe around value and net proceeds")

	if latencyFactor >= latencyAnomalyThreshold {
		triggers = append(triggers, Trigger{
			Category:          TriggerLatencyAnomaly,
			Confidence:        latencyFactor,
			Description:       fmt.Sprintf("Response latency factor %.2f exceeds normal range", latencyFactor),
			RecommendedAction: "Flag for manual follow-up; response gap is unusual",
			RawSignal:         map[string]any{"latency_factor": latencyFactor},
		})
	}
	if engagementDrop > engagementDropThreshold {
		triggers = append(triggers, Trigger{
			Category:          TriggerEngagementDrop,
			Confidence:        engagementDrop,
			Description:       fmt.Sprintf("Message length dropped %.0f%% versus recent turns", engagementDrop*100),
			RecommendedAction: "Shorten replies and ask one direct question",
			RawSignal:         map[string]any{"drop": engagementDrop},
		})
	}

	return triggers
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
