package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/feedback"
	"github.com/nadzzz/coachd/internal/message"
)

// Summary scoring. Averages are over answer length in characters.
const (
	answerBase     = (feedback.BaseMin + feedback.BaseMax) / 2
	minAnswerScore = 50
	maxAnswerScore = 95

	expectedKeywordsPerAnswer = 3
	detailWords               = 50
	moreDetailWords           = 100
)

// SummaryInput is a finished interview. Answers must not be empty.
type SummaryInput struct {
	Answers    []message.InterviewAnswer
	Role       string
	Experience string

	// Language is the resolved base code; LanguageName is its display name
	// used in prompts.
	Language     string
	LanguageName string
}

// Summarize assesses a whole interview. It never fails: service errors fall
// back to the local assessment.
func (c *Coach) Summarize(ctx context.Context, in SummaryInput) *message.InterviewSummary {
	sum := c.localSummary(in)

	if c.completer != nil {
		err := c.applyService(ctx, in, sum)
		if err == nil {
			sum.Language, sum.Mode = in.Language, message.ModeService
			sum.Statistics.ConfidenceLevel = confidenceLevel(sum.Breakdown.Confidence)
			return sum
		}
		slog.Warn("interview summary failed, using local assessment", "role", in.Role, "error", err)
		c.metrics.RecordInterviewFallback(ctx, "summary")
	}

	groups := [][]string{sum.Strengths, sum.Improvements, sum.Recommendations}
	for _, a := range sum.Answers {
		groups = append(groups, a.Strengths, a.Weaknesses)
	}
	if c.localize(ctx, in.Language, groups...) {
		sum.Language = in.Language
	}
	return sum
}

// localSummary scores each answer from its statistics and derives the
// overall scores from the average answer length.
func (c *Coach) localSummary(in SummaryInput) *message.InterviewSummary {
	phr := c.bank.Summary.Answer
	sg := c.lex.Suggestions(in.Language)

	var (
		totalRunes, answered, duration int
		seen                           = make(map[string]bool)
		assessments                    = make([]message.AnswerAssessment, len(in.Answers))
	)
	for i, a := range in.Answers {
		st := c.stats.Extract(a.Answer)
		kws := c.keywords.Dictionary(a.Answer, in.Role, in.Language)
		for _, k := range kws {
			seen[strings.ToLower(k)] = true
		}
		totalRunes += utf8.RuneCountInString(strings.TrimSpace(a.Answer))
		if st.WordCount > 0 {
			answered++
		}
		if a.DurationSeconds > 0 {
			duration += a.DurationSeconds
		} else {
			duration += st.EstimatedDurationSeconds
		}

		as := message.AnswerAssessment{
			QuestionID:  a.QuestionID,
			Question:    a.Question,
			Score:       clamp(feedback.Score(answerBase, st), minAnswerScore, maxAnswerScore),
			Keywords:    kws,
			Strengths:   []string{},
			Weaknesses:  []string{},
			Suggestions: []string{},
		}
		if as.Keywords == nil {
			as.Keywords = []string{}
		}
		if st.WordCount > 0 {
			if st.HasSpecificExamples {
				as.Strengths = append(as.Strengths, phr.StrengthExamples)
			}
			if st.WordCount >= detailWords {
				as.Strengths = append(as.Strengths, phr.StrengthDetail)
			}
			if len(kws) > 0 {
				as.Strengths = append(as.Strengths, phr.StrengthKeywords)
			}
			if len(as.Strengths) == 0 {
				as.Strengths = append(as.Strengths, phr.StrengthClear)
			}
		}
		if !st.HasSpecificExamples {
			as.Weaknesses = append(as.Weaknesses, phr.WeaknessExamples)
		}
		if st.WordCount < detailWords {
			as.Weaknesses = append(as.Weaknesses, phr.WeaknessBrief)
		}
		if !strings.ContainsFunc(a.Answer, unicode.IsDigit) {
			as.Weaknesses = append(as.Weaknesses, phr.WeaknessOutcomes)
		}
		if st.WordCount < moreDetailWords {
			as.Suggestions = append(as.Suggestions, sg.MoreDetail)
		}
		if !st.HasSpecificExamples {
			as.Suggestions = append(as.Suggestions, sg.IncludeExamples)
		}
		as.Suggestions = append(as.Suggestions, sg.STARMethod)
		assessments[i] = as
	}

	n := len(in.Answers)
	avg := float64(totalRunes) / float64(max(n, 1))
	bd := message.Breakdown{
		Technical:     clamp(round(65+avg/60), 55, 90),
		Communication: clamp(round(75+avg/40), 60, 95),
		Completeness:  clamp(60+5*answered, 50, 85),
		Confidence:    clamp(round(70+avg/80), 55, 90),
	}

	return &message.InterviewSummary{
		OverallScore:    clamp(round(70+avg/50), 60, 85),
		Breakdown:       bd,
		Answers:         assessments,
		Strengths:       fillAll(c.bank.Summary.Strengths, in.Role),
		Improvements:    fillAll(c.bank.Summary.Improvements, in.Role),
		Recommendations: fillAll(c.bank.Summary.Recommendations, in.Role),
		Statistics: message.InterviewStatistics{
			TotalQuestions:        n,
			AverageResponseLength: round(avg),
			TotalDurationSeconds:  duration,
			KeywordsUsed:          len(seen),
			ExpectedKeywords:      expectedKeywordsPerAnswer * n,
			ConfidenceLevel:       confidenceLevel(bd.Confidence),
		},
		Language: sourceLanguage,
		Mode:     message.ModeLocal,
	}
}

// serviceSummary is the JSON object the service is asked for. Scores are
// floats because models do not reliably return integers.
type serviceSummary struct {
	OverallScore *float64 `json:"overallScore"`
	Breakdown    *struct {
		Technical     float64 `json:"technical"`
		Communication float64 `json:"communication"`
		Completeness  float64 `json:"completeness"`
		Confidence    float64 `json:"confidence"`
	} `json:"breakdown"`
	Answers []struct {
		Score       *float64 `json:"score"`
		Strengths   []string `json:"strengths"`
		Weaknesses  []string `json:"weaknesses"`
		Suggestions []string `json:"suggestions"`
	} `json:"answers"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

// applyService overlays the service's assessment on the local one. Statistics
// and keywords stay local.
func (c *Coach) applyService(ctx context.Context, in SummaryInput, sum *message.InterviewSummary) error {
	start := time.Now()
	out, err := c.completer.Complete(ctx, completion.Request{
		System: fmt.Sprintf("You are an expert interview coach. Analyze interview performance and provide "+
			"constructive feedback in %s. Respond only with a JSON object.", in.LanguageName),
		Prompt:      buildSummaryPrompt(in),
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	c.metrics.RecordCompletion(ctx, "summary", time.Since(start).Seconds(), err)
	if err != nil {
		return err
	}

	var ss serviceSummary
	if err := json.Unmarshal([]byte(completion.StripFences(out)), &ss); err != nil {
		return fmt.Errorf("%w: expected a JSON object: %.200s", completion.ErrMalformed, out)
	}
	if ss.OverallScore == nil || *ss.OverallScore < 0 || *ss.OverallScore > 100 {
		return fmt.Errorf("%w: overallScore missing or outside [0,100]", completion.ErrMalformed)
	}

	sum.OverallScore = round(*ss.OverallScore)
	if b := ss.Breakdown; b != nil {
		sum.Breakdown = message.Breakdown{
			Technical:     clamp(round(b.Technical), 0, 100),
			Communication: clamp(round(b.Communication), 0, 100),
			Completeness:  clamp(round(b.Completeness), 0, 100),
			Confidence:    clamp(round(b.Confidence), 0, 100),
		}
	}
	for i := range min(len(ss.Answers), len(sum.Answers)) {
		sa, a := ss.Answers[i], &sum.Answers[i]
		if sa.Score != nil {
			a.Score = clamp(round(*sa.Score), 0, 100)
		}
		a.Strengths = orElse(sa.Strengths, a.Strengths)
		a.Weaknesses = orElse(sa.Weaknesses, a.Weaknesses)
		a.Suggestions = orElse(sa.Suggestions, a.Suggestions)
	}
	sum.Strengths = orElse(ss.Strengths, sum.Strengths)
	sum.Improvements = orElse(ss.Improvements, sum.Improvements)
	sum.Recommendations = orElse(ss.Recommendations, sum.Recommendations)
	return nil
}

func buildSummaryPrompt(in SummaryInput) string {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = "technical"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this interview performance for a %s position", role)
	if exp := strings.TrimSpace(in.Experience); exp != "" {
		fmt.Fprintf(&sb, " (%s level)", exp)
	}
	sb.WriteString(":\n\n")
	for i, a := range in.Answers {
		fmt.Fprintf(&sb, "Question %d: %s\nAnswer: %s\n\n", i+1, a.Question, a.Answer)
	}
	fmt.Fprintf(&sb, "Write every text field in %s. Respond with a JSON object with these fields:\n", in.LanguageName)
	sb.WriteString(`{"overallScore": 0-100, "breakdown": {"technical": 0-100, "communication": 0-100, ` +
		`"completeness": 0-100, "confidence": 0-100}, "answers": [{"score": 0-100, "strengths": [], ` +
		`"weaknesses": [], "suggestions": []}], "strengths": [], "improvements": [], "recommendations": []}`)
	sb.WriteString("\nList the answers in the order given.\n")
	return sb.String()
}

func fillAll(texts []string, role string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = fillRole(t, role)
	}
	return out
}

func confidenceLevel(v int) string {
	switch {
	case v >= 80:
		return "High"
	case v >= 65:
		return "Moderate"
	default:
		return "Low"
	}
}

func orElse(v, fallback []string) []string {
	var out []string
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func round(v float64) int { return int(math.Round(v)) }

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
