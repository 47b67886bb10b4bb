package qualification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/garcia-realty/leadflow/internal/leads"
	"github.com/garcia-realty/leadflow/internal/observability/metrics"
	"github.com/garcia-realty/leadflow/internal/signals"
	"github.com/garcia-realty/leadflow/pkg/logging"
)

var pipelineTracer = otel.Tracer("leadflow/qualification-pipeline")

// compositeHotThreshold ratchets a warm lead to hot when the behavioral
// composite is this strong. Ratchet only: a hot lead never cools from a
// weak composite.
const compositeHotThreshold = 0.8

// SignalAnalyzer extracts behavioral signals from one message.
type SignalAnalyzer interface {
	Analyze(ctx context.Context, message, contactID string, history leads.History, latencyMS float64) (signals.Analysis, error)
}

// Engine runs the qualification pipeline: classify, analyze signals,
// compliance check, qualify, score, persist.
type Engine struct {
	classifier *Classifier
	gate       *ComplianceGate
	analyzer   SignalAnalyzer
	seller     *SellerQualifier
	buyer      *BuyerQualifier
	general    *GeneralQualifier
	repo       Repository
	cache      *ResultCache
	metrics    *metrics.PipelineMetrics
	logger     *logging.Logger
}

// EngineConfig wires an Engine. Repo, Cache, and Metrics are optional;
// a nil Analyzer gets the default extractor.
type EngineConfig struct {
	Classifier *Classifier
	Gate       *ComplianceGate
	Analyzer   SignalAnalyzer
	Repo       Repository
	Cache      *ResultCache
	Metrics    *metrics.PipelineMetrics
	Logger     *logging.Logger
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Classifier == nil {
		cfg.Classifier = NewClassifier(nil, nil)
	}
	if cfg.Gate == nil {
		cfg.Gate = NewComplianceGate(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = signals.NewExtractor(nil, cfg.Logger)
	}
	return &Engine{
		classifier: cfg.Classifier,
		gate:       cfg.Gate,
		analyzer:   cfg.Analyzer,
		seller:     NewSellerQualifier(),
		buyer:      NewBuyerQualifier(),
		general:    NewGeneralQualifier(),
		repo:       cfg.Repo,
		cache:      cfg.Cache,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// Gate exposes the engine's compliance gate for callers that
// short-circuit deactivated contacts before invoking Process.
func (e *Engine) Gate() *ComplianceGate {
	return e.gate
}

// Process runs one request through the pipeline. It never returns an
// error and never panics: any fault is absorbed into a failure result
// so one bad message cannot take a webhook handler down with it.
func (e *Engine) Process(ctx context.Context, req Request) (res Result) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("pipeline panic recovered",
				"contact_id", req.ContactID,
				"panic", fmt.Sprintf("%v", r),
			)
			res = e.failedResult(req, fmt.Sprintf("pipeline panic: %v", r))
		}
		status := "success"
		if !res.Success {
			status = "failure"
		}
		e.metrics.ObserveRun(string(res.LeadType), string(res.Temperature), status)
	}()

	ctx, span := pipelineTracer.Start(ctx, "qualification.Process")
	defer span.End()

	state := newPipelineState()
	res = Result{
		ID:         uuid.New(),
		ContactID:  req.ContactID,
		LocationID: req.LocationID,
		CreatedAt:  started,
		Scores:     map[string]float64{},
	}

	tags := leads.NewTagSet(req.Tags)

	// Classify.
	stageStart := time.Now()
	leadType := e.classifier.Classify(tags, req.Message)
	e.metrics.ObserveStage(string(state.Stage), time.Since(stageStart).Seconds())

	// Analyze. Extraction faults degrade to zero signals; the lead is
	// still classified and qualified on structured data.
	if err := state.advance(StageAnalyzing); err != nil {
		return e.failedResult(req, err.Error())
	}
	stageStart = time.Now()
	analysis, err := e.analyzer.Analyze(ctx, req.Message, req.ContactID, req.History, req.ResponseLatencyMS)
	if err != nil {
		e.logger.Warn("signal extraction failed, continuing with zero signals",
			"contact_id", req.ContactID, "error", err)
		e.metrics.ObserveSignalFailure()
		analysis = signals.Zero()
	}
	e.metrics.ObserveStage(string(state.Stage), time.Since(stageStart).Seconds())

	// Compliance. Observational: a deactivated contact still gets a
	// full result; suppression happens at the delivery layer.
	if err := state.advance(StageCompliance); err != nil {
		return e.failedResult(req, err.Error())
	}
	check := e.gate.Check(tags)
	if check.Deactivated {
		e.logger.Info("contact carries deactivation tags",
			"contact_id", req.ContactID, "tags", check.MatchedTags)
	}

	// Qualify.
	if err := state.advance(StageQualifying); err != nil {
		return e.failedResult(req, err.Error())
	}
	stageStart = time.Now()
	var outcome Outcome
	switch leadType {
	case LeadTypeSeller:
		outcome = e.seller.Qualify(req.History, analysis)
	case LeadTypeBuyer:
		outcome = e.buyer.Qualify(req.History, analysis)
	default:
		outcome = e.general.Qualify(req.Message, req.History, analysis)
	}
	e.metrics.ObserveStage(string(state.Stage), time.Since(stageStart).Seconds())

	// Score. A strong composite ratchets warm up to hot.
	if err := state.advance(StageScoring); err != nil {
		return e.failedResult(req, err.Error())
	}
	if outcome.Temperature == TemperatureWarm && analysis.CompositeScore >= compositeHotThreshold {
		outcome.Temperature = TemperatureHot
		outcome.Actions = promoteWarmActions(leadType, outcome.Actions)
	}

	if err := state.advance(StageComplete); err != nil {
		return e.failedResult(req, err.Error())
	}

	res.Success = true
	res.LeadType = leadType
	res.Temperature = outcome.Temperature
	res.IsQualified = outcome.Qualified
	res.BehavioralSignals = analysis
	res.QualificationStage = state.Stage
	res.Actions = outcome.Actions
	for k, v := range outcome.Scores {
		res.Scores[k] = v
	}
	res.Scores["composite"] = analysis.CompositeScore

	span.SetAttributes(
		attribute.String("lead_type", string(res.LeadType)),
		attribute.String("temperature", string(res.Temperature)),
		attribute.Bool("qualified", res.IsQualified),
	)

	e.persist(ctx, res)

	e.logger.Info("qualification complete",
		"contact_id", req.ContactID,
		"lead_type", res.LeadType,
		"temperature", res.Temperature,
		"qualified", res.IsQualified,
		"composite", analysis.CompositeScore,
	)
	return res
}

// promoteWarmActions swaps the warm tag for its hot counterpart when
// the composite ratchet fires.
func promoteWarmActions(leadType LeadType, actions []TagAction) []TagAction {
	warmToHot := map[string]string{
		TagWarmSeller: TagHotSeller,
		TagWarmBuyer:  TagHotBuyer,
	}
	if leadType == LeadTypeGeneral {
		// General leads have no hot band; the temperature still
		// ratchets but the tag stays.
		return actions
	}
	out := make([]TagAction, len(actions))
	for i, a := range actions {
		if hot, ok := warmToHot[a.Tag]; ok && a.Type == "add_tag" {
			a.Tag = hot
		}
		out[i] = a
	}
	return out
}

// persist best-effort stores and caches the result. Storage faults are
// logged, never surfaced.
func (e *Engine) persist(ctx context.Context, res Result) {
	if e.repo != nil {
		if err := e.repo.Save(ctx, res); err != nil {
			e.logger.Error("result save failed", "contact_id", res.ContactID, "error", err)
		}
	}
	if e.cache != nil {
		if err := e.cache.Set(ctx, res); err != nil {
			e.logger.Warn("result cache write failed", "contact_id", res.ContactID, "error", err)
		}
	}
}

// failedResult is the safe fallback: success=false, general/cold, error
// stage, no actions.
func (e *Engine) failedResult(req Request, msg string) Result {
	return Result{
		ID:                 uuid.New(),
		Success:            false,
		ContactID:          req.ContactID,
		LocationID:         req.LocationID,
		LeadType:           LeadTypeGeneral,
		Temperature:        TemperatureCold,
		IsQualified:        false,
		BehavioralSignals:  signals.Zero(),
		QualificationStage: StageError,
		Error:              msg,
		CreatedAt:          time.Now(),
	}
}
