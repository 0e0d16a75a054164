package interview

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nadzzz/coachd/internal/message"
)

// Answer-shape thresholds.
const (
	detailedAnswerWords = 50
	shortAnswerRunes    = 100
	longAnswerRunes     = 500
)

// FollowUpInput is everything FollowUp needs about the last answer.
type FollowUpInput struct {
	Role          string
	Answer        string
	QuestionIndex int
	Level         message.Level

	// Language is the resolved base code the follow-up is wanted in.
	Language string
}

var levelRank = map[message.Level]int{
	message.LevelJunior: 0,
	message.LevelMid:    1,
	message.LevelSenior: 2,
}

// stageOf returns the difficulty implied by a question's position: the first
// three questions are junior, the next four mid, the rest senior.
func stageOf(index int) message.Level {
	switch {
	case index < 3:
		return message.LevelJunior
	case index < 7:
		return message.LevelMid
	default:
		return message.LevelSenior
	}
}

// difficulty is the harder of the candidate's level and the stage.
func difficulty(level message.Level, index int) message.Level {
	stage := stageOf(index)
	if !level.Valid() || levelRank[stage] > levelRank[level] {
		return stage
	}
	return level
}

// FollowUp picks the next question for an answer, localized when possible.
func (c *Coach) FollowUp(ctx context.Context, in FollowUpInput) *message.FollowUpResult {
	diff := difficulty(in.Level, in.QuestionIndex)
	res := &message.FollowUpResult{
		FollowUp:   c.chooseFollowUp(in, diff),
		Language:   sourceLanguage,
		Difficulty: diff,
	}
	texts := []string{res.FollowUp}
	if c.localize(ctx, in.Language, texts) {
		res.FollowUp, res.Language = texts[0], in.Language
	}
	return res
}

// chooseFollowUp applies, in order: the role's keyword patterns, its
// stage questions or else the answer-shape rules, its generic list, and
// finally the level's generic list.
func (c *Coach) chooseFollowUp(in FollowUpInput, diff message.Level) string {
	fu := c.bank.FollowUps
	st := c.bank.strategy(in.Role)
	tokens := words(in.Answer)
	joined := " " + strings.Join(tokens, " ") + " "

	for _, p := range st.Patterns {
		if !containsAny(joined, p.Keywords) {
			continue
		}
		switch {
		case p.Detailed != "" && len(strings.Fields(in.Answer)) > detailedAnswerWords:
			return p.Detailed
		case p.Senior != "" && diff == message.LevelSenior:
			return p.Senior
		}
		return p.Question
	}

	if st.Stages != nil {
		q, intro := st.Stages.at(in.QuestionIndex)
		switch {
		case q != "":
			return q
		case intro:
			return fillRole(pick(fu.Technical[diff], in.QuestionIndex), in.Role)
		}
		return pick(fu.Generic[diff], in.QuestionIndex)
	}

	if q := fu.Shape.match(in.Answer, tokens); q != "" {
		return q
	}
	if len(st.Generic) > 0 {
		return pick(st.Generic, in.QuestionIndex)
	}
	return pick(fu.Generic[diff], in.QuestionIndex)
}

// at returns the stage question for index and whether it is the
// introduction stage.
func (s *Stages) at(index int) (string, bool) {
	switch {
	case index <= 0:
		return s.Introduction, true
	case index == 1:
		return s.Experience, false
	case index == 2:
		return s.Challenge, false
	default:
		return s.Learning, false
	}
}

func (s Shape) match(answer string, tokens []string) string {
	switch n := utf8.RuneCountInString(strings.TrimSpace(answer)); {
	case n < shortAnswerRunes:
		return s.Short
	case n > longAnswerRunes:
		return s.Long
	case hasStem(tokens, "challeng", "difficult"):
		return s.Challenge
	case hasStem(tokens, "team", "colleague"):
		return s.Team
	case hasStem(tokens, "learn", "new"):
		return s.Learning
	}
	return ""
}

// words lowercases s and splits it on anything that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// containsAny reports whether any keyword occurs as whole words in joined,
// which must be space-delimited words with a leading and trailing space.
func containsAny(joined string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(joined, " "+kw+" ") {
			return true
		}
	}
	return false
}

func hasStem(tokens []string, stems ...string) bool {
	for _, t := range tokens {
		for _, s := range stems {
			if strings.HasPrefix(t, s) {
				return true
			}
		}
	}
	return false
}

func pick(list []string, index int) string {
	if len(list) == 0 {
		return ""
	}
	return list[max(index, 0)%len(list)]
}
