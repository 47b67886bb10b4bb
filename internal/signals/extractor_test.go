package signals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garcia-realty/leadflow/internal/leads"
)

func newTestExtractor() *Extractor {
	return NewExtractor(nil, nil)
}

func TestAnalyzeEmptyMessage(t *testing.T) {
	e := newTestExtractor()

	for _, msg := range []string{"", "   ", "\n\t"} {
		got, err := e.Analyze(context.Background(), msg, "contact-1", nil, 0)
		require.NoError(t, err)
		assert.Equal(t, Zero(), got)
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	e := newTestExtractor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Analyze(ctx, "ready to sell", "contact-1", nil, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := newTestExtractor()
	msg := "I'm not sure, maybe we should wait until this weekend"

	first, err := e.Analyze(context.Background(), msg, "contact-1", nil, 45000)
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), msg, "contact-1", nil, 45000)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeScoresInRange(t *testing.T) {
	e := newTestExtractor()
	messages := []string{
		"Let's do it, I'm ready to sell asap, definitely, when can we sign the paperwork",
		"not sure maybe i guess kind of we'll see let me think hesitant depends on",
		"hello",
		"The commission is too expensive and I'm worried about closing costs",
	}

	for _, msg := range messages {
		got, err := e.Analyze(context.Background(), msg, "contact-1", nil, 500000)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, got.CompositeScore, 0.0, msg)
		assert.LessOrEqual(t, got.CompositeScore, 1.0, msg)
		assert.GreaterOrEqual(t, got.HedgingScore, 0.0, msg)
		assert.LessOrEqual(t, got.HedgingScore, 1.0, msg)
		assert.GreaterOrEqual(t, got.CommitmentScore, 0.0, msg)
		assert.LessOrEqual(t, got.CommitmentScore, 1.0, msg)
		assert.GreaterOrEqual(t, got.UrgencyScore, 0.0, msg)
		assert.LessOrEqual(t, got.UrgencyScore, 1.0, msg)
		for _, trig := range got.Triggers {
			assert.GreaterOrEqual(t, trig.Confidence, 0.0, msg)
			assert.LessOrEqual(t, trig.Confidence, 1.0, msg)
		}
	}
}

func TestAnalyzeStallScenario(t *testing.T) {
	e := newTestExtractor()

	got, err := e.Analyze(context.Background(), "Let me think about it and get back to you", "contact-1", nil, 0)
	require.NoError(t, err)

	assert.True(t, got.HasTrigger(TriggerStall))
	assert.Equal(t, TechniqueDirectChallenge, got.RecommendedTechnique)
}

func TestAnalyzeTechniquePriority(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name    string
		message string
		want    Technique
	}{
		{
			name:    "stall outranks everything",
			message: "I'll think about it, but honestly I'm ready to sign the contract",
			want:    TechniqueDirectChallenge,
		},
		{
			name:    "objection without stall",
			message: "Your commission is too expensive",
			want:    TechniqueTacticalEmpathy,
		},
		{
			name:    "heavy hedging",
			message: "Maybe, I'm not sure about this",
			want:    TechniqueLabeling,
		},
		{
			name:    "strong commitment",
			message: "Let's do it, sign me up",
			want:    TechniqueAnchoring,
		},
		{
			name:    "urgency only",
			message: "This is urgent, the bank set a deadline",
			want:    TechniqueCalibratedQuestion,
		},
		{
			name:    "neutral message",
			message: "The house has three bedrooms and a garage",
			want:    TechniqueNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Analyze(context.Background(), tc.message, "contact-1", nil, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.RecommendedTechnique)
		})
	}
}

func TestAnalyzeNegationShiftsPolarity(t *testing.T) {
	e := newTestExtractor()

	// Commitment-only hit plus an explicit negation marker: most of the
	// commitment weight moves to hedging.
	got, err := e.Analyze(context.Background(), "Never mind, I'm ready some other time", "contact-1", nil, 0)
	require.NoError(t, err)

	assert.Greater(t, got.HedgingScore, got.CommitmentScore)
	assert.Greater(t, got.CommitmentScore, 0.0)
}

func TestAnalyzeNegationRequiresOneSidedMatch(t *testing.T) {
	e := newTestExtractor()

	// Both sides matched; negation must leave the scores alone.
	withNegation, err := e.Analyze(context.Background(), "Never mind, maybe, but I'm ready", "c", nil, 0)
	require.NoError(t, err)
	without, err := e.Analyze(context.Background(), "Maybe, but I'm ready", "c", nil, 0)
	require.NoError(t, err)

	assert.Equal(t, without.HedgingScore, withNegation.HedgingScore)
	assert.Equal(t, without.CommitmentScore, withNegation.CommitmentScore)
}

func TestAnalyzeLatency(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name        string
		latencyMS   float64
		wantAnomaly bool
	}{
		{name: "no latency supplied", latencyMS: 0, wantAnomaly: false},
		{name: "quick reply", latencyMS: 10000, wantAnomaly: false},
		{name: "very slow reply", latencyMS: 300000, wantAnomaly: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Analyze(context.Background(), "sounds good", "contact-1", nil, tc.latencyMS)
			require.NoError(t, err)

			assert.Equal(t, tc.wantAnomaly, got.HasTrigger(TriggerLatencyAnomaly))
			if tc.latencyMS == 0 {
				assert.Zero(t, got.LatencyFactor)
			}
		})
	}
}

func TestAnalyzeEngagementDrop(t *testing.T) {
	e := newTestExtractor()
	long := "I have been considering selling the property for a while and wanted to understand the full process end to end"
	history := leads.History{
		{Role: leads.RoleCustomer, Text: long},
		{Role: leads.RoleAgent, Text: "Happy to walk you through it"},
		{Role: leads.RoleCustomer, Text: long},
	}

	got, err := e.Analyze(context.Background(), "ok", "contact-1", history, 0)
	require.NoError(t, err)
	assert.True(t, got.HasTrigger(TriggerEngagementDrop))

	// Similar length to the baseline, no drop.
	got, err = e.Analyze(context.Background(), long, "contact-1", history, 0)
	require.NoError(t, err)
	assert.False(t, got.HasTrigger(TriggerEngagementDrop))

	// No history means no baseline.
	got, err = e.Analyze(context.Background(), "ok", "contact-1", nil, 0)
	require.NoError(t, err)
	assert.False(t, got.HasTrigger(TriggerEngagementDrop))

	// Short agent turns count toward the baseline too, pulling the
	// average down enough that a medium reply is not a drop.
	mixed := leads.History{
		{Role: leads.RoleCustomer, Text: long},
		{Role: leads.RoleAgent, Text: "Got it"},
		{Role: leads.RoleAgent, Text: "One moment"},
		{Role: leads.RoleAgent, Text: "Still there?"},
		{Role: leads.RoleAgent, Text: "Any update?"},
	}
	got, err = e.Analyze(context.Background(), "The roof was replaced two years ago", "contact-1", mixed, 0)
	require.NoError(t, err)
	assert.False(t, got.HasTrigger(TriggerEngagementDrop))
}

func TestAnalyzeDrift(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name    string
		message string
		want    DriftDirection
	}{
		{name: "warming", message: "I'm ready to sell asap", want: DriftWarming},
		{name: "cooling", message: "I'm not sure, maybe, we'll see", want: DriftCooling},
		{name: "stable", message: "The lot is half an acre", want: DriftStable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Analyze(context.Background(), tc.message, "contact-1", nil, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.DriftDirection)
		})
	}
}

func TestBankScore(t *testing.T) {
	assert.Zero(t, bankScore(nil))

	single := []signalPattern{{confidence: 0.8}}
	assert.InDelta(t, 0.8, bankScore(single), 1e-9)

	// Repeat hits boost the mean but stay clamped to 1.
	double := []signalPattern{{confidence: 0.8}, {confidence: 0.8}}
	assert.Greater(t, bankScore(double), 0.8)
	assert.LessOrEqual(t, bankScore(double), 1.0)

	many := []signalPattern{
		{confidence: 0.9}, {confidence: 0.9}, {confidence: 0.9},
		{confidence: 0.9}, {confidence: 0.9}, {confidence: 0.9},
	}
	assert.Equal(t, 1.0, bankScore(many))
}
