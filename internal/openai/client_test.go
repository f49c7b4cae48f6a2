package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const successBody = `{"id":"cmpl-1","object":"chat.completion","created":1700000000,"choices":[{"index":0,"message":{"role":"assistant","content":"A"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":1,"total_tokens":11}}`

func TestClientCompleteChat(t *testing.T) {
	var seenPath, seenAuth, seenContentType string
	var seenBody CompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		seenAuth = r.Header.Get("Authorization")
		seenContentType = r.Header.Get("Content-Type")
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing request id header")
		}
		if err := json.NewDecoder(r.Body).Decode(&seenBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(successBody))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	conv := Conversation{
		{Role: RoleSystem, Content: "be terse"},
		{Role: RoleUser, Content: "say A"},
	}

	resp, err := client.CompleteChat(context.Background(), conv)
	if err != nil {
		t.Fatalf("complete chat failed: %v", err)
	}
	if seenPath != "/v1/chat/completions" {
		t.Fatalf("unexpected path %s", seenPath)
	}
	if seenAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", seenAuth)
	}
	if seenContentType != "application/json" {
		t.Fatalf("unexpected content type %q", seenContentType)
	}
	if seenBody.Model != DefaultModel {
		t.Fatalf("expected default model on the wire, got %q", seenBody.Model)
	}
	if len(seenBody.Messages) != 2 || seenBody.Messages[0].Role != RoleSystem || seenBody.Messages[1].Content != "say A" {
		t.Fatalf("conversation order not preserved: %+v", seenBody.Messages)
	}
	if resp.ID != "cmpl-1" || len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "A" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Usage.TotalTokens != 11 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
}

func TestClientModelOverride(t *testing.T) {
	var seenBody CompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&seenBody)
		_, _ = w.Write([]byte(successBody))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "gpt-4o-mini"})
	if _, err := client.CompleteChat(context.Background(), Conversation{{Role: RoleUser, Content: "hi"}}); err != nil {
		t.Fatalf("complete chat failed: %v", err)
	}
	if seenBody.Model != "gpt-4o-mini" {
		t.Fatalf("expected configured model on the wire, got %q", seenBody.Model)
	}
}

func TestClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.CompleteChat(context.Background(), Conversation{{Role: RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Kind != ErrorKindTransport {
		t.Fatalf("expected transport kind, got %s", apiErr.Kind)
	}
}

func TestClientNon2xxIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL})
	_, err := client.CompleteChat(context.Background(), Conversation{{Role: RoleUser, Content: "hi"}})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != ErrorKindTransport {
		t.Fatalf("expected transport kind for non-2xx, got %s", apiErr.Kind)
	}
}

func TestClientDecodeFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway</html>"},
		{"missing fields", `{"id":"x"}`},
		{"unknown finish reason", `{"id":"x","object":"chat.completion","created":1,"choices":[{"index":0,"message":{"role":"assistant","content":"A"},"finish_reason":"halt"}],"usage":{"prompt_tokens":0,"completion_tokens":0,"total_tokens":0}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
			_, err := client.CompleteChat(context.Background(), Conversation{{Role: RoleUser, Content: "hi"}})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Kind != ErrorKindDecode {
				t.Fatalf("expected decode kind, got %s", apiErr.Kind)
			}
		})
	}
}

func TestClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if client.baseURL != defaultBaseURL {
		t.Fatalf("expected default base URL, got %s", client.baseURL)
	}
	if client.model != DefaultModel {
		t.Fatalf("expected default model, got %s", client.model)
	}
	if client.http.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.http.Timeout)
	}
}
