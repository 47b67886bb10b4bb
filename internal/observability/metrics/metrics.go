package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters/histograms for qualification runs.
type PipelineMetrics struct {
	runsTotal      *prometheus.CounterVec
	stageLatency   *prometheus.HistogramVec
	signalFailures prometheus.Counter
	optOutTotal    prometheus.Counter
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadflow",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total qualification pipeline runs",
		}, []string{"lead_type", "temperature", "status"}),
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadflow",
			Subsystem: "pipeline",
			Name:      "stage_latency_seconds",
			Help:      "Latency of individual pipeline stages",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		signalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadflow",
			Subsystem: "pipeline",
			Name:      "signal_failures_total",
			Help:      "Signal extraction failures absorbed by the pipeline",
		}),
		optOutTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadflow",
			Subsystem: "compliance",
			Name:      "optout_total",
			Help:      "Inbound messages recognized as TCPA opt-outs",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.runsTotal, m.stageLatency, m.signalFailures, m.optOutTotal)
	return m
}

func (m *PipelineMetrics) ObserveRun(leadType, temperature, status string) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(leadType, temperature, status).Inc()
}

func (m *PipelineMetrics) ObserveStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.stageLatency.WithLabelValues(stage).Observe(seconds)
}

func (m *PipelineMetrics) ObserveSignalFailure() {
	if m == nil {
		return
	}
	m.signalFailures.Inc()
}

func (m *PipelineMetrics) ObserveOptOut() {
	if m == nil {
		return
	}
	m.optOutTotal.Inc()
}
