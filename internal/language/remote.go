package language

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/observe"
)

// Remote is a Backend that delegates to the completion service.
type Remote struct {
	completer completion.Completer
	catalog   *Catalog
	metrics   *observe.Metrics
}

// NewRemote creates a completion-backed Backend. A nil metrics records
// nothing.
func NewRemote(c completion.Completer, catalog *Catalog, m *observe.Metrics) *Remote {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if m == nil {
		m = observe.Discard()
	}
	return &Remote{completer: c, catalog: catalog, metrics: m}
}

// Name returns the completer name.
func (r *Remote) Name() string { return r.completer.Name() }

// Detect asks the service for an ISO 639-1 code and resolves it against the
// catalog. Answers outside the catalog wrap completion.ErrMalformed.
func (r *Remote) Detect(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := r.completer.Complete(ctx, completion.Request{
		System:      "You identify the language of text. Reply with the ISO 639-1 code only.",
		Prompt:      text,
		Temperature: 0,
		MaxTokens:   8,
	})
	r.metrics.RecordCompletion(ctx, "detect", time.Since(start).Seconds(), err)
	if err != nil {
		return "", fmt.Errorf("detecting language: %w", err)
	}
	answer := strings.Trim(completion.StripFences(out), " .\"'`\n")
	code, ok := r.catalog.Resolve(answer)
	if !ok {
		return "", fmt.Errorf("detecting language: %w: unsupported code %q", completion.ErrMalformed, answer)
	}
	return code, nil
}

// Translate asks the service for a translation and returns it trimmed.
func (r *Remote) Translate(ctx context.Context, text, source, target string) (string, error) {
	from := "the source language"
	if source != "" {
		from = r.catalog.Name(source)
	}
	start := time.Now()
	out, err := r.completer.Complete(ctx, completion.Request{
		System: "You are a professional translator. Return only the translated text, " +
			"with no quotes, notes or explanations.",
		Prompt:      fmt.Sprintf("Translate the following text from %s to %s:\n\n%s", from, r.catalog.Name(target), text),
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	r.metrics.RecordCompletion(ctx, "translate", time.Since(start).Seconds(), err)
	if err != nil {
		return "", fmt.Errorf("translating to %s: %w", target, err)
	}
	out = completion.StripFences(out)
	if out == "" {
		return "", fmt.Errorf("translating to %s: %w: empty translation", target, completion.ErrMalformed)
	}
	return out, nil
}
