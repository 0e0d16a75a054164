// Package interview plans and reviews whole interviews: it generates question
// sets, picks follow-up questions from a candidate's answer and assesses a
// finished interview.
//
// Follow-ups are always chosen by deterministic local rules. Question sets
// and interview summaries come from the completion service when one is
// configured; if the service fails or answers with something unusable, the
// local tables are used instead and the result reports local mode.
//
// Local tables are written in English. When a caller asks for another
// language the English text is passed through a Translator; if any
// translation fails the English text is returned and the result says so.
package interview

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/keywords"
	"github.com/nadzzz/coachd/internal/lexicon"
	"github.com/nadzzz/coachd/internal/message"
	"github.com/nadzzz/coachd/internal/observe"
	"github.com/nadzzz/coachd/internal/textstats"
)

// sourceLanguage is the language the local tables are written in.
const sourceLanguage = "en"

// Translator renders text in another language. *language.Service satisfies
// it.
type Translator interface {
	Translate(ctx context.Context, text, target, source string) (*message.TranslateResult, error)
}

// Coach generates questions, follow-ups and interview summaries. It is safe
// for concurrent use.
type Coach struct {
	bank       *Bank
	lex        *lexicon.Lexicon
	stats      *textstats.Extractor
	keywords   *keywords.Extractor
	completer  completion.Completer // nil selects local mode
	translator Translator
	metrics    *observe.Metrics

	mu  sync.Mutex
	rng *rand.Rand // nil uses the global source
}

// Option configures a Coach.
type Option func(*Coach)

// WithCompleter enables service mode for question sets and summaries.
func WithCompleter(c completion.Completer) Option {
	return func(co *Coach) { co.completer = c }
}

// WithTranslator localizes English table text.
func WithTranslator(t Translator) Option {
	return func(co *Coach) { co.translator = t }
}

// WithRand sets the source used to shuffle local question sets.
func WithRand(r *rand.Rand) Option {
	return func(co *Coach) { co.rng = r }
}

// WithMetrics records service calls and fallbacks.
func WithMetrics(m *observe.Metrics) Option {
	return func(co *Coach) { co.metrics = m }
}

// New creates a Coach. A nil lexicon selects the embedded default.
func New(lex *lexicon.Lexicon, opts ...Option) *Coach {
	if lex == nil {
		lex = lexicon.Default()
	}
	c := &Coach{
		bank:     DefaultBank(),
		lex:      lex,
		stats:    textstats.New(lex),
		keywords: keywords.New(lex),
		metrics:  observe.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// localize translates the English texts into lang in place. It reports false
// and leaves every text untouched when a translation fails or no translator
// is configured.
func (c *Coach) localize(ctx context.Context, lang string, groups ...[]string) bool {
	if lang == sourceLanguage {
		return true
	}
	if c.translator == nil {
		return false
	}
	out := make([][]string, len(groups))
	for i, texts := range groups {
		out[i] = make([]string, len(texts))
		for j, text := range texts {
			res, err := c.translator.Translate(ctx, text, lang, sourceLanguage)
			if err != nil {
				slog.Warn("localization failed, keeping English", "language", lang, "error", err)
				return false
			}
			out[i][j] = res.TranslatedText
		}
	}
	for i := range groups {
		copy(groups[i], out[i])
	}
	return true
}

func (c *Coach) shuffle(in []string) []string {
	out := append([]string(nil), in...)
	if c.rng == nil {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// fillRole substitutes the {role} placeholder.
func fillRole(text, role string) string {
	if role = strings.TrimSpace(role); role == "" {
		role = "technical"
	}
	return strings.ReplaceAll(text, "{role}", role)
}
