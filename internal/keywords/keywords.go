// Package keywords extracts salient technical terms from an answer.
//
// Dictionary mode matches the answer against the lexicon's per-language and
// per-role tables. Service mode asks the completion service for a JSON array;
// any service or parse error is logged and replaced by the dictionary result,
// so Extract never fails.
package keywords

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/lexicon"
	"github.com/nadzzz/coachd/internal/observe"
)

// MaxKeywords caps every extracted keyword set.
const MaxKeywords = 5

// Extractor extracts keywords in dictionary or service mode.
type Extractor struct {
	lex       *lexicon.Lexicon
	completer completion.Completer // nil selects dictionary mode
	model     string
	metrics   *observe.Metrics
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCompleter enables service mode. model may be empty to use the
// completer's default.
func WithCompleter(c completion.Completer, model string) Option {
	return func(e *Extractor) {
		e.completer = c
		e.model = model
	}
}

// WithMetrics records service calls and fallbacks.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Extractor) { e.metrics = m }
}

// New creates an Extractor. A nil lexicon selects the embedded default.
func New(lex *lexicon.Lexicon, opts ...Option) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	e := &Extractor{lex: lex, metrics: observe.Discard()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract returns at most MaxKeywords terms for text. lang is a base language
// code and displayName its human-readable name used in the service prompt.
func (e *Extractor) Extract(ctx context.Context, text, role, lang, displayName string) []string {
	if e.completer == nil {
		return e.Dictionary(text, role, lang)
	}

	start := time.Now()
	out, err := e.completer.Complete(ctx, completion.Request{
		System:      fmt.Sprintf("You are an expert at extracting technical keywords from multilingual interview responses in %s.", displayName),
		Prompt:      buildPrompt(text, role, displayName),
		Model:       e.model,
		Temperature: 0.3,
		MaxTokens:   200,
	})
	e.metrics.RecordCompletion(ctx, "keywords", time.Since(start).Seconds(), err)

	var kws []string
	if err == nil {
		kws, err = completion.ParseStringArray(out)
	}
	if err != nil {
		slog.Warn("keyword service failed, using dictionary", "language", lang, "error", err)
		e.metrics.KeywordFallbacks.Add(ctx, 1)
		return e.Dictionary(text, role, lang)
	}
	return dedupe(kws, MaxKeywords)
}

// Dictionary returns the dictionary-mode keyword set. Technical terms come
// first in dictionary order, then role terms; duplicates are dropped.
func (e *Extractor) Dictionary(text, role, lang string) []string {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return []string{}
	}
	joined := strings.Join(tokens, " ")

	var found []string
	for _, term := range e.lex.Technical(lang) {
		if matches(term, tokens, joined) {
			found = append(found, term)
		}
	}
	for _, term := range e.lex.RoleTerms(lang, role) {
		if matches(term, tokens, joined) {
			found = append(found, term)
		}
	}
	return dedupe(found, MaxKeywords)
}

// matches reports whether term occurs in the answer. Single-word terms match
// as a substring of any token, which also covers scripts without clean word
// boundaries. Multi-word terms match against the whitespace-normalized text.
func matches(term string, tokens []string, joined string) bool {
	term = strings.ToLower(term)
	if strings.ContainsRune(term, ' ') {
		return strings.Contains(joined, term)
	}
	for _, tok := range tokens {
		if strings.Contains(tok, term) {
			return true
		}
	}
	return false
}

func dedupe(in []string, limit int) []string {
	out := make([]string, 0, min(len(in), limit))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if len(out) == limit {
			break
		}
		if key := strings.ToLower(s); !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}

func buildPrompt(text, role, language string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Extract the most relevant technical keywords and concepts from this %s interview response for a %s position:\n\n", language, role)
	fmt.Fprintf(&sb, "%q\n\n", text)
	sb.WriteString("Return only the top 5 most important keywords as a JSON array of strings. Focus on:\n")
	sb.WriteString("- Technical skills and technologies\n")
	sb.WriteString("- Programming languages and frameworks\n")
	sb.WriteString("- Tools and methodologies\n")
	fmt.Fprintf(&sb, "- Industry-specific terms in %s\n", language)
	sb.WriteString("\nExample: [\"react\", \"javascript\", \"api\", \"database\", \"testing\"]\n")
	return sb.String()
}
