package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters for the conversation pipeline and
// the model fallback ladder.
type PipelineMetrics struct {
	processedTotal    *prometheus.CounterVec
	escalationsTotal  prometheus.Counter
	generatorAttempts *prometheus.CounterVec
	generatorFallback prometheus.Counter
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		processedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "misstera",
			Subsystem: "pipeline",
			Name:      "messages_processed_total",
			Help:      "Total chat messages processed, by intent and platform",
		}, []string{"intent", "platform"}),
		escalationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "misstera",
			Subsystem: "pipeline",
			Name:      "escalations_total",
			Help:      "Total conversations flagged for human handoff",
		}),
		generatorAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "misstera",
			Subsystem: "generator",
			Name:      "model_attempts_total",
			Help:      "Completion attempts per model, by outcome",
		}, []string{"model", "outcome"}),
		generatorFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "misstera",
			Subsystem: "generator",
			Name:      "fallback_total",
			Help:      "Responses served from the static fallback after ladder exhaustion",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.processedTotal, m.escalationsTotal, m.generatorAttempts, m.generatorFallback)
	return m
}

func (m *PipelineMetrics) ObserveProcessed(intent, platform string, escalated bool) {
	if m == nil {
		return
	}
	m.processedTotal.WithLabelValues(intent, platform).Inc()
	if escalated {
		m.escalationsTotal.Inc()
	}
}

func (m *PipelineMetrics) ObserveModelAttempt(model, outcome string) {
	if m == nil {
		return
	}
	m.generatorAttempts.WithLabelValues(model, outcome).Inc()
}

func (m *PipelineMetrics) ObserveFallback() {
	if m == nil {
		return
	}
	m.generatorFallback.Inc()
}
