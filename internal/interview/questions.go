package interview

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/message"
)

// Question set sizes.
const (
	DefaultCount = 10
	MaxCount     = 20

	// minQuestionRunes drops service lines too short to be a question.
	minQuestionRunes = 10
)

// QuestionsInput describes the wanted question set. Level and Count must
// already be validated; a zero Count selects DefaultCount.
type QuestionsInput struct {
	Role  string
	Goal  string
	Level message.Level
	Count int

	// Language is the resolved base code; LanguageName is its display name
	// used in prompts.
	Language     string
	LanguageName string
}

// Questions generates an interview question set. It never fails: service
// errors fall back to the local tables.
func (c *Coach) Questions(ctx context.Context, in QuestionsInput) *message.QuestionsResult {
	if in.Count <= 0 {
		in.Count = DefaultCount
	}
	in.Count = min(in.Count, MaxCount)
	if !in.Level.Valid() {
		in.Level = message.LevelMid
	}

	if c.completer != nil {
		texts, err := c.serviceQuestions(ctx, in)
		if err == nil {
			return c.questionSet(in, texts, in.Language, message.ModeService)
		}
		slog.Warn("question generation failed, using local questions", "role", in.Role, "error", err)
		c.metrics.RecordInterviewFallback(ctx, "questions")
	}

	texts, lang := c.localQuestions(in)
	if lang != in.Language && c.localize(ctx, in.Language, texts) {
		lang = in.Language
	}
	return c.questionSet(in, texts, lang, message.ModeLocal)
}

// localQuestions returns a native question set when the tables have one for
// the role and language, and otherwise a shuffled English set topped up with
// general questions.
func (c *Coach) localQuestions(in QuestionsInput) ([]string, string) {
	if in.Language != sourceLanguage {
		if native := c.bank.localized(in.Role, in.Language); len(native) > 0 {
			out := make([]string, 0, min(in.Count, len(native)))
			for _, q := range native[:min(in.Count, len(native))] {
				out = append(out, fillRole(q, in.Role))
			}
			return out, in.Language
		}
	}

	set, _ := c.bank.questions(in.Role, in.Level)
	out := c.shuffle(set)
	if len(out) > in.Count {
		out = out[:in.Count]
	}
	for _, q := range c.bank.Questions.General {
		if len(out) >= in.Count {
			break
		}
		if !slices.Contains(out, q) {
			out = append(out, q)
		}
	}
	return out, sourceLanguage
}

func (c *Coach) serviceQuestions(ctx context.Context, in QuestionsInput) ([]string, error) {
	start := time.Now()
	out, err := c.completer.Complete(ctx, completion.Request{
		System: fmt.Sprintf("You are an expert multilingual technical interviewer. Generate professional interview "+
			"questions in %s. Always respond with a valid JSON array of strings.", in.LanguageName),
		Prompt:      buildQuestionsPrompt(in),
		Temperature: 0.8,
		MaxTokens:   1500,
	})
	c.metrics.RecordCompletion(ctx, "questions", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}

	raw, err := completion.ParseStringArray(out)
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, q := range raw {
		if utf8.RuneCountInString(q) > minQuestionRunes {
			texts = append(texts, q)
		}
		if len(texts) == in.Count {
			break
		}
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no usable questions", completion.ErrMalformed)
	}
	return texts, nil
}

func (c *Coach) questionSet(in QuestionsInput, texts []string, lang string, mode message.Mode) *message.QuestionsResult {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = "General"
	}
	qs := make([]message.Question, len(texts))
	for i, t := range texts {
		qs[i] = message.Question{
			ID:         i + 1,
			Text:       t,
			Category:   fmt.Sprintf("%s - %s", role, in.Level),
			Difficulty: in.Level,
		}
	}
	return &message.QuestionsResult{Questions: qs, Language: lang, Mode: mode}
}

func buildQuestionsPrompt(in QuestionsInput) string {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = "general"
	}
	goal := strings.TrimSpace(in.Goal)
	if goal == "" {
		goal = "job"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are conducting a %s interview for a %s position at %s level, in %s.\n\n", goal, role, in.Level, in.LanguageName)
	fmt.Fprintf(&sb, "Generate %d professional, relevant interview questions that:\n", in.Count)
	fmt.Fprintf(&sb, "1. Are specifically tailored for a %s role\n", role)
	fmt.Fprintf(&sb, "2. Are written in %s\n", in.LanguageName)
	sb.WriteString("3. Progress from basic to advanced difficulty\n")
	sb.WriteString("4. Mix technical knowledge, problem-solving, behavioral and experience-based questions\n")
	sb.WriteString("5. Allow for detailed responses\n")
	fmt.Fprintf(&sb, "\nReturn ONLY a JSON array of %d questions as strings, nothing else.\n", in.Count)
	return sb.String()
}
