package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultTimeout = 30 * time.Second

	completionsPath = "/v1/chat/completions"
)

var tracer = otel.Tracer("chatcomplete.internal.openai")

// ChatCompleter is the one operation this package exposes. Decorators such
// as InstrumentedClient wrap it.
type ChatCompleter interface {
	CompleteChat(ctx context.Context, conv Conversation) (*CompletionResponse, error)
}

// Config describes how to reach the completion endpoint.
type Config struct {
	// APIKey is presented as a bearer token. Its shape is not validated.
	APIKey string
	// BaseURL overrides the production endpoint, mainly for tests.
	BaseURL string
	// Model overrides DefaultModel.
	Model string
	// Timeout bounds the whole exchange. Zero means defaultTimeout.
	Timeout time.Duration
}

// Client issues chat-completion requests over a single reusable HTTP
// client. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient builds a client. It never contacts the network.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// CompleteChat exchanges the conversation for a completion. Exactly one
// outbound request per call; failures come back as *APIError with the
// transport or decode kind set, never retried and never logged here.
func (c *Client) CompleteChat(ctx context.Context, conv Conversation) (*CompletionResponse, error) {
	ctx, span := tracer.Start(ctx, "openai.complete_chat")
	defer span.End()

	requestID := uuid.NewString()
	span.SetAttributes(
		attribute.String("openai.request_id", requestID),
		attribute.String("openai.model", c.model),
		attribute.Int("openai.messages", len(conv)),
	)

	payload := CompletionRequest{Model: c.model, Messages: conv}
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		return nil, decodeErr(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, transportErr(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, transportErr(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(data)))
		span.RecordError(err)
		return nil, transportErr(err)
	}

	var out CompletionResponse
	if err := json.Unmarshal(data, &out); err != nil {
		span.RecordError(err)
		return nil, decodeErr(err)
	}
	span.SetAttributes(
		attribute.Int("openai.choices", len(out.Choices)),
		attribute.Int("openai.total_tokens", out.Usage.TotalTokens),
	)
	return &out, nil
}
