package qualification

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/garcia-realty/leadflow/internal/compliance"
	"github.com/garcia-realty/leadflow/internal/leads"
	"github.com/garcia-realty/leadflow/internal/observability/metrics"
	"github.com/garcia-realty/leadflow/internal/tenancy"
	"github.com/garcia-realty/leadflow/pkg/logging"
)

// Handler handles HTTP requests for qualification.
type Handler struct {
	engine  *Engine
	optOut  *compliance.OptOutDetector
	audit   *compliance.AuditService
	repo    Repository
	cache   *ResultCache
	metrics *metrics.PipelineMetrics
	logger  *logging.Logger
}

// HandlerConfig wires a Handler. Audit, Repo, Cache, and Metrics are
// optional.
type HandlerConfig struct {
	Engine  *Engine
	Audit   *compliance.AuditService
	Repo    Repository
	Cache   *ResultCache
	Metrics *metrics.PipelineMetrics
	Logger  *logging.Logger
}

// NewHandler creates a new qualification handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Engine == nil {
		cfg.Engine = NewEngine(EngineConfig{Logger: cfg.Logger})
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Handler{
		engine:  cfg.Engine,
		optOut:  compliance.NewOptOutDetector(),
		audit:   cfg.Audit,
		repo:    cfg.Repo,
		cache:   cfg.Cache,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// QualifyResponse wraps the pipeline result with the short-circuit
// flags the webhook integration acts on.
type QualifyResponse struct {
	Processed bool        `json:"processed"`
	OptOut    bool        `json:"opt_out"`
	Result    *Result     `json:"result,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Actions   []TagAction `json:"actions,omitempty"`
}

// Qualify handles POST /v1/qualify requests. TCPA opt-outs and
// deactivated contacts short-circuit before the pipeline runs.
func (h *Handler) Qualify(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if locationID, ok := tenancy.LocationIDFromContext(r.Context()); ok && req.LocationID == "" {
		req.LocationID = locationID
	}
	if strings.TrimSpace(req.ContactID) == "" {
		http.Error(w, "contact_id is required", http.StatusBadRequest)
		return
	}

	if h.optOut.IsOptOut(req.Message) {
		h.metrics.ObserveOptOut()
		if err := h.audit.LogOptOut(r.Context(), req.LocationID, req.ContactID, strings.TrimSpace(req.Message)); err != nil {
			h.logger.Error("failed to audit opt-out", "contact_id", req.ContactID, "error", err)
		}
		h.logger.Info("opt-out received", "contact_id", req.ContactID)
		writeJSON(w, http.StatusOK, QualifyResponse{
			Processed: false,
			OptOut:    true,
			Reason:    "contact revoked texting consent",
			Actions:   []TagAction{addTag(TagTCPAOptOut)},
		})
		return
	}

	if check := h.engine.Gate().Check(leads.NewTagSet(req.Tags)); check.Deactivated {
		if err := h.audit.LogDeactivationObserved(r.Context(), req.LocationID, req.ContactID, check.MatchedTags); err != nil {
			h.logger.Error("failed to audit deactivation", "contact_id", req.ContactID, "error", err)
		}
		h.logger.Info("skipping deactivated contact",
			"contact_id", req.ContactID, "tags", check.MatchedTags)
		writeJSON(w, http.StatusOK, QualifyResponse{
			Processed: false,
			Reason:    "contact carries deactivation tags",
		})
		return
	}

	res := h.engine.Process(r.Context(), req)
	writeJSON(w, http.StatusOK, QualifyResponse{
		Processed: true,
		Result:    &res,
		Actions:   res.Actions,
	})
}

// GetLatest handles GET /v1/contacts/{contactID}/qualification
// requests, serving from the cache when possible.
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")
	if contactID == "" {
		http.Error(w, "missing contact_id", http.StatusBadRequest)
		return
	}
	locationID, _ := tenancy.LocationIDFromContext(r.Context())

	if h.cache != nil {
		cached, err := h.cache.Get(r.Context(), locationID, contactID)
		if err != nil {
			h.logger.Warn("result cache read failed", "contact_id", contactID, "error", err)
		} else if cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	if h.repo == nil {
		http.Error(w, "qualification result not found", http.StatusNotFound)
		return
	}
	res, err := h.repo.LatestByContact(r.Context(), locationID, contactID)
	if err != nil {
		if errors.Is(err, ErrResultNotFound) {
			http.Error(w, "qualification result not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load result", "contact_id", contactID, "error", err)
		http.Error(w, "failed to load qualification result", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
