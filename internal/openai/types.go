package openai

import (
	"encoding/json"
	"fmt"
)

// DefaultModel is the model targeted when the caller does not pick one.
const DefaultModel = "gpt-3.5-turbo"

// Role identifies who authored a dialogue turn. The wire tokens form a
// closed set; anything else fails to decode.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Role(s).valid() {
		return fmt.Errorf("openai: unknown role %q", s)
	}
	*r = Role(s)
	return nil
}

// FinishReason reports why generation stopped for a choice.
type FinishReason string

const (
	// FinishReasonStop means the model concluded on its own.
	FinishReasonStop FinishReason = "stop"
	// FinishReasonLength means the completion hit the token budget.
	FinishReasonLength FinishReason = "length"
)

func (f *FinishReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch FinishReason(s) {
	case FinishReasonStop, FinishReasonLength:
		*f = FinishReason(s)
		return nil
	}
	return fmt.Errorf("openai: unknown finish reason %q", s)
}

// Message is a single dialogue turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type wire struct {
		Role    *Role   `json:"role"`
		Content *string `json:"content"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Role == nil {
		return fmt.Errorf("openai: message missing role")
	}
	if w.Content == nil {
		return fmt.Errorf("openai: message missing content")
	}
	m.Role = *w.Role
	m.Content = *w.Content
	return nil
}

// Conversation is the chronological dialogue history. Order is significant
// and preserved through encode/decode; repeated roles are fine.
type Conversation []Message

// CompletionRequest is the wire shape sent to the completion endpoint.
type CompletionRequest struct {
	Model    string       `json:"model"`
	Messages Conversation `json:"messages"`
}

// NewCompletionRequest wraps a conversation with the default model.
func NewCompletionRequest(conv Conversation) CompletionRequest {
	return CompletionRequest{Model: DefaultModel, Messages: conv}
}

// Choice is one candidate completion.
type Choice struct {
	Index        int          `json:"index"`
	Message      Message      `json:"message"`
	FinishReason FinishReason `json:"finish_reason"`
}

func (c *Choice) UnmarshalJSON(data []byte) error {
	type wire struct {
		Index        *int          `json:"index"`
		Message      *Message      `json:"message"`
		FinishReason *FinishReason `json:"finish_reason"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Index == nil {
		return fmt.Errorf("openai: choice missing index")
	}
	if w.Message == nil {
		return fmt.Errorf("openai: choice missing message")
	}
	if w.FinishReason == nil {
		return fmt.Errorf("openai: choice missing finish_reason")
	}
	c.Index = *w.Index
	c.Message = *w.Message
	c.FinishReason = *w.FinishReason
	return nil
}

// Usage is the token accounting reported by the service. TotalTokens is
// whatever the service said; this layer does not check the sum.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (u *Usage) UnmarshalJSON(data []byte) error {
	type wire struct {
		PromptTokens     *int `json:"prompt_tokens"`
		CompletionTokens *int `json:"completion_tokens"`
		TotalTokens      *int `json:"total_tokens"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.PromptTokens == nil || w.CompletionTokens == nil || w.TotalTokens == nil {
		return fmt.Errorf("openai: usage missing token counts")
	}
	u.PromptTokens = *w.PromptTokens
	u.CompletionTokens = *w.CompletionTokens
	u.TotalTokens = *w.TotalTokens
	return nil
}

// CompletionResponse is the decoded reply to a CompletionRequest.
type CompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// UnmarshalJSON rejects payloads missing any required field. An empty
// choices array still decodes; callers that need the first choice check
// for ErrNoChoices themselves.
func (r *CompletionResponse) UnmarshalJSON(data []byte) error {
	type wire struct {
		ID      *string   `json:"id"`
		Object  *string   `json:"object"`
		Created *int64    `json:"created"`
		Choices *[]Choice `json:"choices"`
		Usage   *Usage    `json:"usage"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.ID == nil:
		return fmt.Errorf("openai: completion response missing id")
	case w.Object == nil:
		return fmt.Errorf("openai: completion response missing object")
	case w.Created == nil:
		return fmt.Errorf("openai: completion response missing created")
	case w.Choices == nil:
		return fmt.Errorf("openai: completion response missing choices")
	case w.Usage == nil:
		return fmt.Errorf("openai: completion response missing usage")
	}
	r.ID = *w.ID
	r.Object = *w.Object
	r.Created = *w.Created
	r.Choices = *w.Choices
	r.Usage = *w.Usage
	return nil
}
