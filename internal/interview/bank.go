package interview

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nadzzz/coachd/internal/lexicon"
	"github.com/nadzzz/coachd/internal/message"
)

//go:embed interview.yaml
var rawBank []byte

// Pattern maps answer keywords to a follow-up question. Detailed replaces
// Question for long answers and Senior replaces it at senior difficulty.
type Pattern struct {
	Keywords []string `yaml:"keywords"`
	Question string   `yaml:"question"`
	Detailed string   `yaml:"detailed"`
	Senior   string   `yaml:"senior"`
}

// Stages are follow-ups keyed by how far the interview has progressed.
type Stages struct {
	Introduction string `yaml:"introduction"`
	Experience   string `yaml:"experience"`
	Challenge    string `yaml:"challenge"`
	Learning     string `yaml:"learning"`
}

// Strategy is the follow-up table for one role. A role either has Stages or
// falls through to answer-shape rules and Generic.
type Strategy struct {
	Patterns []Pattern `yaml:"patterns"`
	Stages   *Stages   `yaml:"stages"`
	Generic  []string  `yaml:"generic"`
}

// Shape holds follow-ups chosen from the form of the answer.
type Shape struct {
	Short     string `yaml:"short"`
	Long      string `yaml:"long"`
	Challenge string `yaml:"challenge"`
	Team      string `yaml:"team"`
	Learning  string `yaml:"learning"`
}

// AnswerPhrases are the per-answer assessment sentences.
type AnswerPhrases struct {
	StrengthExamples string `yaml:"strength_examples"`
	StrengthDetail   string `yaml:"strength_detail"`
	StrengthKeywords string `yaml:"strength_keywords"`
	StrengthClear    string `yaml:"strength_clear"`
	WeaknessExamples string `yaml:"weakness_examples"`
	WeaknessBrief    string `yaml:"weakness_brief"`
	WeaknessOutcomes string `yaml:"weakness_outcomes"`
}

// Bank is the immutable set of interview tables. It is safe for concurrent
// use.
type Bank struct {
	DefaultRole string `yaml:"default_role"`

	Questions struct {
		General   []string                              `yaml:"general"`
		Roles     map[string]map[message.Level][]string `yaml:"roles"`
		Localized map[string]map[string][]string        `yaml:"localized"`
	} `yaml:"questions"`

	FollowUps struct {
		Roles     map[string]Strategy        `yaml:"roles"`
		Technical map[message.Level][]string `yaml:"technical"`
		Shape     Shape                      `yaml:"shape"`
		Generic   map[message.Level][]string `yaml:"generic"`
	} `yaml:"followups"`

	Summary struct {
		Strengths       []string      `yaml:"strengths"`
		Improvements    []string      `yaml:"improvements"`
		Recommendations []string      `yaml:"recommendations"`
		Answer          AnswerPhrases `yaml:"answer"`
	} `yaml:"summary"`
}

// ParseBank decodes an interview document and checks that every level has
// technical and generic follow-ups, which are the last resort of FollowUp.
func ParseBank(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decoding interview bank: %w", err)
	}
	if len(b.Questions.General) == 0 {
		return nil, fmt.Errorf("interview bank: general questions are required")
	}
	for _, lvl := range []message.Level{message.LevelJunior, message.LevelMid, message.LevelSenior} {
		if len(b.FollowUps.Technical[lvl]) == 0 || len(b.FollowUps.Generic[lvl]) == 0 {
			return nil, fmt.Errorf("interview bank: level %q needs technical and generic follow-ups", lvl)
		}
	}

	b.DefaultRole = lexicon.NormalizeRole(b.DefaultRole)
	b.Questions.Roles = normalizeKeys(b.Questions.Roles)
	b.Questions.Localized = normalizeKeys(b.Questions.Localized)
	b.FollowUps.Roles = normalizeKeys(b.FollowUps.Roles)
	for role, st := range b.FollowUps.Roles {
		for i, p := range st.Patterns {
			for j, kw := range p.Keywords {
				p.Keywords[j] = strings.Join(words(kw), " ")
			}
			st.Patterns[i] = p
		}
		b.FollowUps.Roles[role] = st
	}
	if _, ok := b.FollowUps.Roles[b.DefaultRole]; !ok {
		return nil, fmt.Errorf("interview bank: default role %q has no follow-up strategy", b.DefaultRole)
	}
	return &b, nil
}

var (
	defaultBank     *Bank
	defaultBankOnce sync.Once
)

// DefaultBank returns the embedded tables. Panics if the embedded document
// is invalid, which is a build defect.
func DefaultBank() *Bank {
	defaultBankOnce.Do(func() {
		var err error
		defaultBank, err = ParseBank(rawBank)
		if err != nil {
			panic("interview: " + err.Error())
		}
	})
	return defaultBank
}

// strategy returns the follow-up table for role, or the default role's.
func (b *Bank) strategy(role string) Strategy {
	if st, ok := b.FollowUps.Roles[lexicon.NormalizeRole(role)]; ok {
		return st
	}
	return b.FollowUps.Roles[b.DefaultRole]
}

// questions returns the role's question set for lvl and whether the role is
// known. Unknown roles get the general set.
func (b *Bank) questions(role string, lvl message.Level) ([]string, bool) {
	if byLevel, ok := b.Questions.Roles[lexicon.NormalizeRole(role)]; ok && len(byLevel[lvl]) > 0 {
		return byLevel[lvl], true
	}
	return b.Questions.General, false
}

// localized returns the native question set for role in lang, if any.
func (b *Bank) localized(role, lang string) []string {
	return b.Questions.Localized[lexicon.NormalizeRole(role)][lang]
}

func normalizeKeys[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[lexicon.NormalizeRole(k)] = v
	}
	return out
}
