package openai

import (
	"context"
	"errors"
	"time"

	"github.com/wrenb/chatcomplete/internal/observability/metrics"
)

// InstrumentedClient wraps a ChatCompleter and records per-call metrics.
// The wrapped client stays free of observability concerns.
type InstrumentedClient struct {
	inner   ChatCompleter
	model   string
	metrics *metrics.CompletionMetrics
}

// NewInstrumentedClient decorates inner. The model string is only a metric
// label; it does not change what the inner client sends.
func NewInstrumentedClient(inner ChatCompleter, model string, m *metrics.CompletionMetrics) *InstrumentedClient {
	if model == "" {
		model = DefaultModel
	}
	return &InstrumentedClient{
		inner:   inner,
		model:   model,
		metrics: m,
	}
}

// CompleteChat forwards to the wrapped client and observes the outcome.
func (c *InstrumentedClient) CompleteChat(ctx context.Context, conv Conversation) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := c.inner.CompleteChat(ctx, conv)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		c.metrics.ObserveRequest(c.model, outcomeLabel(err), elapsed)
		return nil, err
	}
	c.metrics.ObserveRequest(c.model, "ok", elapsed)
	c.metrics.ObserveTokens(c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return resp, nil
}

func outcomeLabel(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return string(apiErr.Kind)
	}
	return "error"
}
