package openai

import (
	"errors"
	"fmt"
)

// ErrorKind separates connectivity problems from protocol-shape problems.
type ErrorKind string

const (
	// ErrorKindTransport covers everything up to and including receiving
	// the response bytes: DNS, TLS, dropped connections, non-2xx statuses.
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindDecode covers a received body that does not match the
	// completion response shape.
	ErrorKindDecode ErrorKind = "decode"
)

// APIError is the single failure type returned by CompleteChat.
type APIError struct {
	Kind ErrorKind
	Err  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai: %s error: %v", e.Kind, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

func transportErr(err error) *APIError {
	return &APIError{Kind: ErrorKindTransport, Err: err}
}

func decodeErr(err error) *APIError {
	return &APIError{Kind: ErrorKindDecode, Err: err}
}

// ErrNoChoices is returned by FirstChoice when a well-formed response
// carries zero choices. The decoder deliberately lets such responses
// through; callers that index into choices use this check instead.
var ErrNoChoices = errors.New("openai: completion returned no choices")

// FirstChoice returns the first candidate completion.
func (r *CompletionResponse) FirstChoice() (*Choice, error) {
	if len(r.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return &r.Choices[0], nil
}
