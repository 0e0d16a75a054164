// Package completion defines the interface for the external text-completion
// service that writes feedback prose, extracts keywords and translates text.
//
// coachd ships one backend, an OpenAI-compatible client, which also serves
// OpenRouter and Ollama through a custom base URL. When no credential is
// configured no Completer is constructed at all and callers run their local
// rules instead.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreachable covers transport failures and non-2xx responses.
	ErrUnreachable = errors.New("completion service unreachable")

	// ErrMalformed means the service answered but the content could not be used.
	ErrMalformed = errors.New("completion service returned a malformed response")
)

// Request is a single chat-style completion request.
type Request struct {
	// System is the system instruction.
	System string

	// Prompt is the user message.
	Prompt string

	// Model overrides the backend's default model.
	Model string

	// Temperature is always sent, so zero asks for deterministic output.
	Temperature float64

	// MaxTokens caps the completion length; zero uses the backend default.
	MaxTokens int
}

// Completer is the interface for text-completion backends.
type Completer interface {
	// Name returns the backend identifier (e.g., "openai").
	Name() string

	// Complete returns the trimmed text of the first choice. Errors wrap
	// ErrUnreachable or ErrMalformed.
	Complete(ctx context.Context, req Request) (string, error)

	// Close releases any resources held by the backend.
	Close() error
}

// StripFences removes a surrounding Markdown code fence, if any.
func StripFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the info string ("json") on the opening fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseStringArray decodes content as a JSON array of strings, tolerating a
// Markdown code fence around it. Blank entries are dropped.
func ParseStringArray(content string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(StripFences(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of strings: %.200s", ErrMalformed, content)
	}
	out := raw[:0]
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
