package engine

import (
	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/completion/openai"
	"github.com/nadzzz/coachd/internal/config"
	"github.com/nadzzz/coachd/internal/feedback"
	"github.com/nadzzz/coachd/internal/interview"
	"github.com/nadzzz/coachd/internal/keywords"
	"github.com/nadzzz/coachd/internal/language"
	"github.com/nadzzz/coachd/internal/lexicon"
	"github.com/nadzzz/coachd/internal/observe"
	"github.com/nadzzz/coachd/internal/textstats"
)

// Build wires an Engine for cfg. When the completion service is not enabled
// no client is constructed, so every stage runs locally and no network call
// can be made. The returned Completer is nil in that case; otherwise the
// caller owns it and must Close it.
func Build(cfg config.CompletionConfig, m *observe.Metrics) (*Engine, completion.Completer) {
	if m == nil {
		m = observe.Discard()
	}
	lex := lexicon.Default()

	var (
		c       completion.Completer
		backend language.Backend = language.NewLocal(lex)
		kwOpts                   = []keywords.Option{keywords.WithMetrics(m)}
		fbOpts                   = []feedback.Option{feedback.WithMetrics(m)}
		coOpts                   = []interview.Option{interview.WithMetrics(m)}
	)
	if cfg.Enabled() {
		c = openai.New(cfg)
		backend = language.NewRemote(c, nil, m)
		kwOpts = append(kwOpts, keywords.WithCompleter(c, cfg.KeywordModel))
		fbOpts = append(fbOpts, feedback.WithCompleter(c))
		coOpts = append(coOpts, interview.WithCompleter(c))
	}

	langs := language.NewService(backend, language.WithMetrics(m))
	coOpts = append(coOpts, interview.WithTranslator(langs))

	e := New(
		textstats.New(lex),
		keywords.New(lex, kwOpts...),
		feedback.New(lex, fbOpts...),
		langs,
		m,
		WithCoach(interview.New(lex, coOpts...)),
	)
	return e, c
}
