package metrics

import "github.com/prometheus/client_golang/prometheus"

// CompletionMetrics exposes counters/histograms for chat-completion calls.
type CompletionMetrics struct {
	requestsTotal *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	tokensTotal   *prometheus.CounterVec
}

func NewCompletionMetrics(reg prometheus.Registerer) *CompletionMetrics {
	m := &CompletionMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatcomplete",
			Subsystem: "openai",
			Name:      "requests_total",
			Help:      "Total chat-completion calls by model and outcome",
		}, []string{"model", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chatcomplete",
			Subsystem: "openai",
			Name:      "request_latency_seconds",
			Help:      "Latency of chat-completion calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"model"}),
		tokensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatcomplete",
			Subsystem: "openai",
			Name:      "tokens_total",
			Help:      "Tokens reported by the completion API",
		}, []string{"model", "direction"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.latency, m.tokensTotal)
	return m
}

func (m *CompletionMetrics) ObserveRequest(model, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(model, outcome).Inc()
	m.latency.WithLabelValues(model).Observe(seconds)
}

func (m *CompletionMetrics) ObserveTokens(model string, prompt, completion int) {
	if m == nil {
		return
	}
	m.tokensTotal.WithLabelValues(model, "prompt").Add(float64(prompt))
	m.tokensTotal.WithLabelValues(model, "completion").Add(float64(completion))
}
