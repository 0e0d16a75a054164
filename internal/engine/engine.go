// Package engine implements the boundary operations behind every transport.
//
// Analyze runs an answer through the statistics, keyword and feedback stages.
// Questions, FollowUp and Summarize front the interview coach. Translate,
// Detect and Languages front the language service. Every error that leaves
// the engine is a *message.Failure, and panics inside a stage are recovered
// into an internal failure.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/emotion"
	"github.com/nadzzz/coachd/internal/feedback"
	"github.com/nadzzz/coachd/internal/interview"
	"github.com/nadzzz/coachd/internal/keywords"
	"github.com/nadzzz/coachd/internal/language"
	"github.com/nadzzz/coachd/internal/message"
	"github.com/nadzzz/coachd/internal/observe"
	"github.com/nadzzz/coachd/internal/textstats"
)

// DefaultLanguage is used when a request names no language or one outside
// the catalog.
const DefaultLanguage = "en"

// MaxInterviewAnswers bounds the answers accepted by Summarize.
const MaxInterviewAnswers = 50

// Engine is the central analysis and translation engine.
type Engine struct {
	stats       *textstats.Extractor
	keywords    *keywords.Extractor
	synthesizer *feedback.Synthesizer
	languages   *language.Service
	coach       *interview.Coach
	metrics     *observe.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithCoach replaces the local interview coach.
func WithCoach(c *interview.Coach) Option {
	return func(e *Engine) { e.coach = c }
}

// New creates an Engine from its stages. A nil metrics records nothing.
// Without WithCoach the engine uses a local coach that localizes through
// langs.
func New(stats *textstats.Extractor, kw *keywords.Extractor, synth *feedback.Synthesizer,
	langs *language.Service, m *observe.Metrics, opts ...Option) *Engine {
	if m == nil {
		m = observe.Discard()
	}
	e := &Engine{
		stats:       stats,
		keywords:    kw,
		synthesizer: synth,
		languages:   langs,
		metrics:     m,
	}
	for _, o := range opts {
		o(e)
	}
	if e.coach == nil {
		e.coach = interview.New(nil, interview.WithTranslator(langs), interview.WithMetrics(m))
	}
	return e
}

// Mode reports whether feedback is written by the service or locally.
func (e *Engine) Mode() message.Mode { return e.synthesizer.Mode() }

// Analyze scores one answer and writes feedback for it.
func (e *Engine) Analyze(ctx context.Context, req *message.AnalyzeRequest) (res *message.AnalysisResult, err error) {
	start := time.Now()
	defer e.guard(ctx, "analyze", &err)

	if req == nil {
		return nil, message.Validation("request body is required")
	}

	lang := e.resolveLanguage(req.Language)
	langName := e.languages.Catalog().Name(lang)
	logger := slog.With("operation", "analyze", "language", lang, "role", req.Role)

	stats := e.stats.Extract(req.Transcript)
	kws := supplied(req.Keywords)
	if len(kws) == 0 {
		kws = e.keywords.Extract(ctx, req.Transcript, req.Role, lang, langName)
	}
	logger.Debug("answer measured", "words", stats.WordCount, "keywords", len(kws))

	res, err = e.synthesizer.Synthesize(ctx, feedback.Input{
		Transcript:   req.Transcript,
		Question:     req.Question,
		Role:         req.Role,
		Language:     lang,
		LanguageName: langName,
		Keywords:     kws,
		Emotion:      emotion.Adapt(req.Emotion),
		Stats:        stats,
	})
	if err != nil {
		logger.Error("feedback synthesis failed", "error", err)
		return nil, err
	}
	if res.Keywords == nil {
		res.Keywords = []string{}
	}

	elapsed := time.Since(start)
	e.metrics.RecordAnalysis(ctx, string(res.Mode), lang, elapsed.Seconds())
	logger.Info("analysis complete", "score", res.Score, "mode", res.Mode, "duration", elapsed)
	return res, nil
}

// Translate renders text in the target language.
func (e *Engine) Translate(ctx context.Context, req *message.TranslateRequest) (res *message.TranslateResult, err error) {
	defer e.guard(ctx, "translate", &err)

	if req == nil {
		return nil, message.Validation("request body is required")
	}
	res, err = e.languages.Translate(ctx, req.Text, req.TargetLanguage, req.SourceLanguage)
	if err != nil {
		slog.Warn("translation failed", "target", req.TargetLanguage, "error", err)
		return nil, err
	}
	return res, nil
}

// Detect identifies the catalog language of a text.
func (e *Engine) Detect(ctx context.Context, req *message.DetectRequest) (res *message.DetectResult, err error) {
	defer e.guard(ctx, "detect", &err)

	if req == nil {
		return nil, message.Validation("request body is required")
	}
	code, err := e.languages.Detect(ctx, req.Text)
	if err != nil {
		slog.Debug("detection failed", "error", err)
		return nil, err
	}
	return &message.DetectResult{Language: code, Name: e.languages.Catalog().Name(code)}, nil
}

// Questions generates an interview question set.
func (e *Engine) Questions(ctx context.Context, req *message.QuestionsRequest) (res *message.QuestionsResult, err error) {
	defer e.guard(ctx, "questions", &err)

	if req == nil {
		return nil, message.Validation("request body is required")
	}
	if req.Level != "" && !req.Level.Valid() {
		return nil, message.Validation(fmt.Sprintf("unknown level %q, expected junior, mid or senior", req.Level))
	}
	if req.Count < 0 {
		return nil, message.Validation("count must not be negative")
	}

	lang := e.resolveLanguage(req.Language)
	res = e.coach.Questions(ctx, interview.QuestionsInput{
		Role:         req.Role,
		Goal:         req.Goal,
		Level:        req.Level,
		Count:        req.Count,
		Language:     lang,
		LanguageName: e.languages.Catalog().Name(lang),
	})
	slog.Info("questions generated", "role", req.Role, "count", len(res.Questions), "language", res.Language, "mode", res.Mode)
	return res, nil
}

// FollowUp picks the next question from the candidate's last answer.
func (e *Engine) FollowUp(ctx context.Context, req *message.FollowUpRequest) (res *message.FollowUpResult, err error) {
	defer e.guard(ctx, "followup", &err)

	if req == nil {
		return nil, message.Validation("request body is required")
	}
	if req.Level != "" && !req.Level.Valid() {
		return nil, message.Validation(fmt.Sprintf("unknown level %q, expected junior, mid or senior", req.Level))
	}
	if req.QuestionIndex < 0 {
		return nil, message.Validation("questionIndex must not be negative")
	}

	res = e.coach.FollowUp(ctx, interview.FollowUpInput{
		Role:          req.Role,
		Answer:        req.Answer,
		QuestionIndex: req.QuestionIndex,
		Level:         req.Level,
		Language:      e.resolveLanguage(req.Language),
	})
	slog.Debug("follow-up chosen", "role", req.Role, "index", req.QuestionIndex, "difficulty", res.Difficulty)
	return res, nil
}

// Summarize assesses a finished interview.
func (e *Engine) Summarize(ctx context.Context, req *message.InterviewRequest) (res *message.InterviewSummary, err error) {
	defer e.guard(ctx, "summarize", &err)

	if req == nil {
		return nil, message.Validation("request body is required")
	}
	switch n := len(req.Answers); {
	case n == 0:
		return nil, message.Validation("at least one answer is required")
	case n > MaxInterviewAnswers:
		return nil, message.Validation(fmt.Sprintf("at most %d answers are accepted", MaxInterviewAnswers))
	}

	lang := e.resolveLanguage(req.Language)
	res = e.coach.Summarize(ctx, interview.SummaryInput{
		Answers:      req.Answers,
		Role:         req.Role,
		Experience:   req.Experience,
		Language:     lang,
		LanguageName: e.languages.Catalog().Name(lang),
	})
	slog.Info("interview summarized", "role", req.Role, "answers", len(req.Answers), "score", res.OverallScore, "mode", res.Mode)
	return res, nil
}

// Languages returns the catalog grouped by category. A non-empty query keeps
// only languages whose code, name or native name contains it.
func (e *Engine) Languages(query string) *message.LanguagesResult {
	cat := e.languages.Catalog()
	if strings.TrimSpace(query) == "" {
		return &message.LanguagesResult{Groups: cat.ByCategory()}
	}
	return &message.LanguagesResult{Groups: language.Group(cat.Search(query))}
}

func (e *Engine) resolveLanguage(id string) string {
	if strings.TrimSpace(id) == "" {
		return DefaultLanguage
	}
	code, ok := e.languages.Resolve(id)
	if !ok {
		slog.Debug("unknown language, using default", "language", id, "default", DefaultLanguage)
		return DefaultLanguage
	}
	return code
}

// guard recovers panics and converts *errp into a *message.Failure.
func (e *Engine) guard(ctx context.Context, op string, errp *error) {
	if r := recover(); r != nil {
		slog.Error("recovered panic", "operation", op, "panic", r)
		*errp = &message.Failure{
			Kind:    message.FailureInternal,
			Message: "internal error",
			Detail:  fmt.Sprint(r),
		}
	}
	if *errp == nil {
		return
	}
	f := ToFailure(*errp)
	e.metrics.RecordFailure(ctx, op, string(f.Kind))
	*errp = f
}

// ToFailure classifies err. A *message.Failure anywhere in the chain is
// returned as is.
func ToFailure(err error) *message.Failure {
	var f *message.Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case errors.Is(err, language.ErrInvalid):
		return &message.Failure{Kind: message.FailureValidation, Message: err.Error()}
	case errors.Is(err, language.ErrUndetectable):
		return &message.Failure{Kind: message.FailureValidation, Message: "the language of the text could not be detected"}
	case errors.Is(err, completion.ErrUnreachable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return &message.Failure{
			Kind:    message.FailureServiceUnreachable,
			Message: "the completion service could not be reached",
			Detail:  err.Error(),
		}
	case errors.Is(err, completion.ErrMalformed):
		return &message.Failure{
			Kind:    message.FailureMalformedResponse,
			Message: "the completion service returned an unusable response",
			Detail:  err.Error(),
		}
	default:
		return &message.Failure{Kind: message.FailureInternal, Message: "internal error", Detail: err.Error()}
	}
}

// supplied trims, deduplicates and caps caller-provided keywords.
func supplied(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		out = append(out, k)
		if len(out) == keywords.MaxKeywords {
			break
		}
	}
	return out
}
