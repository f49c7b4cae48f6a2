package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCompletionMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCompletionMetrics(reg)
	m.ObserveRequest("gpt-3.5-turbo", "ok", 0.42)
	m.ObserveRequest("gpt-3.5-turbo", "transport", 0.01)
	m.ObserveTokens("gpt-3.5-turbo", 10, 1)
}

func TestCompletionMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCompletionMetrics(reg)
	m.ObserveRequest("gpt-4o-mini", "decode", 0.1)
}

func TestCompletionMetricsNilSafe(t *testing.T) {
	var m *CompletionMetrics
	m.ObserveRequest("model", "ok", 0.1)
	m.ObserveTokens("model", 1, 1)
}
