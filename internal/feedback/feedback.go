// Package feedback turns answer statistics, keywords and the emotion signal
// into a bounded score and natural-language feedback.
//
// The score is always computed locally. The prose comes from the completion
// service when one is configured (service mode) and from localized clause
// templates otherwise (local mode). A service failure is returned to the
// caller; there is no silent fallback to local prose once service mode is on.
package feedback

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/emotion"
	"github.com/nadzzz/coachd/internal/lexicon"
	"github.com/nadzzz/coachd/internal/message"
	"github.com/nadzzz/coachd/internal/observe"
	"github.com/nadzzz/coachd/internal/textstats"
)

// Score band and adjustments.
const (
	BaseMin = 70
	BaseMax = 95

	shortAnswerWords = 50
	longAnswerWords  = 200
	shortPenalty     = 10
	longBonus        = 5
	examplesBonus    = 10
)

// Clause thresholds.
const (
	briefWords          = 30
	detailedWords       = 100
	lowConfidence       = 0.5
	highConfidence      = 0.7
	lowEyeContact       = 0.4
	goodEyeContact      = 0.7
	highEngagement      = 0.7
	minClarity          = 40
	clarityPerFiller    = 5
	baseRelevance       = 60
	relevancePerKeyword = 8
	relevanceExamples   = 10
)

// Input is everything the synthesizer needs for one answer.
type Input struct {
	Transcript string
	Question   string
	Role       string

	// Language is the base code feedback is written in; LanguageName is its
	// display name used in prompts.
	Language     string
	LanguageName string

	Keywords []string
	Emotion  emotion.Signal
	Stats    textstats.Stats
}

// Synthesizer produces AnalysisResults.
type Synthesizer struct {
	lex       *lexicon.Lexicon
	completer completion.Completer // nil selects local mode
	metrics   *observe.Metrics

	mu  sync.Mutex
	rng *rand.Rand // nil uses the global source
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithCompleter enables service mode.
func WithCompleter(c completion.Completer) Option {
	return func(s *Synthesizer) { s.completer = c }
}

// WithRand sets the source of the base score draw. Use a seeded source for
// reproducible scores.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

// WithMetrics records service calls.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Synthesizer) { s.metrics = m }
}

// New creates a Synthesizer. A nil lexicon selects the embedded default.
func New(lex *lexicon.Lexicon, opts ...Option) *Synthesizer {
	if lex == nil {
		lex = lexicon.Default()
	}
	s := &Synthesizer{lex: lex, metrics: observe.Discard()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mode reports which backend writes the feedback prose.
func (s *Synthesizer) Mode() message.Mode {
	if s.completer != nil {
		return message.ModeService
	}
	return message.ModeLocal
}

// Synthesize scores the answer and writes feedback. In service mode any
// completion error is returned wrapped; no partial result is produced.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (*message.AnalysisResult, error) {
	score := Score(s.drawBase(), in.Stats)

	var prose string
	if s.completer != nil {
		start := time.Now()
		out, err := s.completer.Complete(ctx, completion.Request{
			System: fmt.Sprintf("You are an expert technical interviewer providing constructive feedback in %s. "+
				"Always respond in %s with specific, actionable advice.", in.LanguageName, in.LanguageName),
			Prompt:      buildPrompt(in),
			Temperature: 0.7,
			MaxTokens:   400,
		})
		s.metrics.RecordCompletion(ctx, "feedback", time.Since(start).Seconds(), err)
		if err != nil {
			return nil, fmt.Errorf("generating feedback: %w", err)
		}
		prose = out
	} else {
		prose = strings.Join(s.Clauses(in), " ")
	}

	return &message.AnalysisResult{
		Score:       score,
		Feedback:    prose,
		Metrics:     s.deriveMetrics(in, score),
		Suggestions: s.Suggestions(in),
		Keywords:    in.Keywords,
		Language:    in.Language,
		Mode:        s.Mode(),
	}, nil
}

// Score applies the length and example adjustments to base and clamps the
// result to [0,100].
func Score(base int, st textstats.Stats) int {
	score := base
	if st.WordCount < shortAnswerWords {
		score -= shortPenalty
	}
	if st.WordCount > longAnswerWords {
		score += longBonus
	}
	if st.HasSpecificExamples {
		score += examplesBonus
	}
	return clamp(score, 0, 100)
}

func (s *Synthesizer) drawBase() int {
	const span = BaseMax - BaseMin + 1
	if s.rng == nil {
		return BaseMin + rand.IntN(span)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return BaseMin + s.rng.IntN(span)
}

// Clauses returns the local-mode feedback clauses in their fixed order:
// length, examples, keywords, emotion, role advice.
func (s *Synthesizer) Clauses(in Input) []string {
	c := s.lex.Clauses(in.Language)
	var out []string

	switch wc := in.Stats.WordCount; {
	case wc < briefWords:
		out = append(out, c.LengthBrief)
	case wc > longAnswerWords:
		out = append(out, c.LengthLong)
	default:
		out = append(out, c.LengthGood)
	}

	if in.Stats.HasSpecificExamples {
		out = append(out, c.ExamplesPresent)
	} else {
		out = append(out, c.ExamplesMissing)
	}

	if len(in.Keywords) > 0 {
		named := strings.Join(in.Keywords[:min(2, len(in.Keywords))], ", ")
		if role := strings.TrimSpace(in.Role); role != "" {
			out = append(out, strings.NewReplacer("{keywords}", named, "{role}", role).Replace(c.Keywords))
		} else {
			out = append(out, strings.ReplaceAll(c.KeywordsGeneric, "{keywords}", named))
		}
	}

	if in.Emotion.Present() {
		if v, ok := in.Emotion.Confidence(); ok {
			switch {
			case v < lowConfidence:
				out = append(out, c.ConfidenceLow)
			case v > highConfidence:
				out = append(out, c.ConfidenceHigh)
			}
		}
		if v, ok := in.Emotion.EyeContact(); ok && v < lowEyeContact {
			out = append(out, c.EyeContactLow)
		}
		if v, ok := in.Emotion.Engagement(); ok && v > highEngagement {
			out = append(out, c.EngagementHigh)
		}
	}

	if advice, ok := s.lex.RoleAdvice(in.Language, in.Role); ok {
		out = append(out, advice)
	}
	return out
}

// Suggestions returns the localized improvement tips for the answer.
func (s *Synthesizer) Suggestions(in Input) []string {
	sg := s.lex.Suggestions(in.Language)
	var out []string
	if in.Stats.WordCount < detailedWords {
		out = append(out, sg.MoreDetail)
	}
	if !in.Stats.HasSpecificExamples {
		out = append(out, sg.IncludeExamples)
	}
	if v, ok := in.Emotion.EyeContact(); !ok || v < goodEyeContact {
		out = append(out, sg.EyeContact)
	}
	return append(out, sg.STARMethod)
}

// deriveMetrics derives the reported metrics. An empty answer has zero clarity
// and relevance.
func (s *Synthesizer) deriveMetrics(in Input, score int) message.Metrics {
	m := message.Metrics{
		WordCount:         in.Stats.WordCount,
		EstimatedDuration: in.Stats.EstimatedDurationSeconds,
		HasExamples:       in.Stats.HasSpecificExamples,
		Confidence:        score,
	}
	if v, ok := in.Emotion.Confidence(); ok {
		m.Confidence = clamp(int(math.Round(v*100)), 0, 100)
	}
	if in.Stats.WordCount == 0 {
		return m
	}
	m.Clarity = clamp(100-clarityPerFiller*in.Stats.FillerWordCount, minClarity, 100)
	m.Relevance = baseRelevance + relevancePerKeyword*len(in.Keywords)
	if in.Stats.HasSpecificExamples {
		m.Relevance += relevanceExamples
	}
	m.Relevance = min(m.Relevance, 100)
	return m
}

func buildPrompt(in Input) string {
	role := in.Role
	if strings.TrimSpace(role) == "" {
		role = "technical"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert %s interviewer providing constructive feedback in %s.\n\n", role, in.LanguageName)
	fmt.Fprintf(&sb, "Interview Question: %q\n\n", in.Question)
	fmt.Fprintf(&sb, "Candidate's Response: %q\n", in.Transcript)
	if len(in.Keywords) > 0 {
		fmt.Fprintf(&sb, "\nDetected Keywords: %s\n", strings.Join(in.Keywords, ", "))
	}
	if d := in.Emotion.Describe(); d != "" {
		sb.WriteString("\nEmotion Analysis Data:\n")
		sb.WriteString(d)
	}
	fmt.Fprintf(&sb, "\nProvide specific, actionable feedback in %s that:\n", in.LanguageName)
	sb.WriteString("1. Acknowledges specific strengths in the response\n")
	sb.WriteString("2. Identifies areas for improvement with concrete suggestions\n")
	sb.WriteString("3. References technical concepts or keywords they mentioned\n")
	sb.WriteString("4. Considers confidence and engagement if emotion data is available\n")
	sb.WriteString("5. Maintains an encouraging but honest tone\n")
	fmt.Fprintf(&sb, "\nKeep the feedback to 2-3 sentences. Respond only in %s.\n", in.LanguageName)
	return sb.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
