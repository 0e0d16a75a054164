// Package lexicon holds the static, per-language tables used by keyword
// extraction, feedback synthesis and local translation.
//
// All tables live in one embedded YAML document so that adding a language
// never touches code. Lookups take base language codes ("en", "hi") and
// fall back to the default language (English) field by field: a language that
// only ships a technical dictionary still gets English feedback clauses.
package lexicon

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var rawLexicon []byte

// Clauses are the localized feedback sentence templates.
// Keywords may contain the {keywords} and {role} placeholders; KeywordsGeneric
// is used when no role is known and only takes {keywords}.
type Clauses struct {
	LengthBrief     string `yaml:"length_brief"`
	LengthLong      string `yaml:"length_long"`
	LengthGood      string `yaml:"length_good"`
	ExamplesPresent string `yaml:"examples_present"`
	ExamplesMissing string `yaml:"examples_missing"`
	Keywords        string `yaml:"keywords"`
	KeywordsGeneric string `yaml:"keywords_generic"`
	ConfidenceLow   string `yaml:"confidence_low"`
	ConfidenceHigh  string `yaml:"confidence_high"`
	EyeContactLow   string `yaml:"eye_contact_low"`
	EngagementHigh  string `yaml:"engagement_high"`
}

// Suggestions are the localized improvement tips.
type Suggestions struct {
	MoreDetail      string `yaml:"more_detail"`
	IncludeExamples string `yaml:"include_examples"`
	EyeContact      string `yaml:"eye_contact"`
	STARMethod      string `yaml:"star_method"`
}

// Entry is the table set for one language.
type Entry struct {
	Technical      []string            `yaml:"technical"`
	Roles          map[string][]string `yaml:"roles"`
	ExampleMarkers []string            `yaml:"example_markers"`
	Clauses        *Clauses            `yaml:"clauses"`
	Suggestions    *Suggestions        `yaml:"suggestions"`
	RoleAdvice     map[string]string   `yaml:"role_advice"`
}

// Phrase is one phrasebook row.
type Phrase struct {
	Phrase       string            `yaml:"phrase"`
	Translations map[string]string `yaml:"translations"`
}

// Lexicon is the immutable set of tables. It is safe for concurrent use.
type Lexicon struct {
	Default     string           `yaml:"default"`
	FillerWords []string         `yaml:"filler_words"`
	Languages   map[string]Entry `yaml:"languages"`
	Phrasebook  []Phrase         `yaml:"phrasebook"`

	markers []string
}

// Parse decodes a lexicon document and validates that the default language
// carries a complete table set.
func Parse(data []byte) (*Lexicon, error) {
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return nil, fmt.Errorf("decoding lexicon: %w", err)
	}
	if lx.Default == "" {
		lx.Default = "en"
	}
	def, ok := lx.Languages[lx.Default]
	if !ok {
		return nil, fmt.Errorf("lexicon: default language %q has no entry", lx.Default)
	}
	if def.Clauses == nil || def.Suggestions == nil {
		return nil, fmt.Errorf("lexicon: default language %q must define clauses and suggestions", lx.Default)
	}

	// Role keys are matched case-insensitively.
	for code, e := range lx.Languages {
		e.Roles = lowerKeys(e.Roles)
		e.RoleAdvice = lowerKeys(e.RoleAdvice)
		lx.Languages[code] = e
	}

	seen := make(map[string]bool)
	for _, code := range sortedCodes(lx.Languages, lx.Default) {
		for _, m := range lx.Languages[code].ExampleMarkers {
			m = strings.ToLower(m)
			if !seen[m] {
				seen[m] = true
				lx.markers = append(lx.markers, m)
			}
		}
	}
	return &lx, nil
}

var (
	defaultLexicon     *Lexicon
	defaultLexiconOnce sync.Once
)

// Default returns the embedded lexicon. Panics if the embedded document is
// invalid, which is a build defect.
func Default() *Lexicon {
	defaultLexiconOnce.Do(func() {
		var err error
		defaultLexicon, err = Parse(rawLexicon)
		if err != nil {
			panic("lexicon: " + err.Error())
		}
	})
	return defaultLexicon
}

// Has reports whether the lexicon has an entry for the base code.
func (lx *Lexicon) Has(code string) bool {
	_, ok := lx.Languages[code]
	return ok
}

// Technical returns the technical dictionary for code, or the default
// language's dictionary when code has none.
func (lx *Lexicon) Technical(code string) []string {
	if e, ok := lx.Languages[code]; ok && len(e.Technical) > 0 {
		return e.Technical
	}
	return lx.Languages[lx.Default].Technical
}

// RoleTerms returns the role-specific dictionary for role. The role table is
// scoped to the same language the technical dictionary resolved to, so an
// unknown language uses the default language's role table.
func (lx *Lexicon) RoleTerms(code, role string) []string {
	e, ok := lx.Languages[code]
	if !ok || len(e.Technical) == 0 {
		e = lx.Languages[lx.Default]
	}
	return e.Roles[NormalizeRole(role)]
}

// ExampleMarkers returns every marker word across all languages, lowercased,
// default language first.
func (lx *Lexicon) ExampleMarkers() []string {
	return lx.markers
}

// Clauses returns the feedback templates for code.
func (lx *Lexicon) Clauses(code string) *Clauses {
	if e, ok := lx.Languages[code]; ok && e.Clauses != nil {
		return e.Clauses
	}
	return lx.Languages[lx.Default].Clauses
}

// Suggestions returns the improvement tips for code.
func (lx *Lexicon) Suggestions(code string) *Suggestions {
	if e, ok := lx.Languages[code]; ok && e.Suggestions != nil {
		return e.Suggestions
	}
	return lx.Languages[lx.Default].Suggestions
}

// RoleAdvice returns the advice sentence for role in code. It falls back to
// the default language's advice, and reports false for unknown roles.
func (lx *Lexicon) RoleAdvice(code, role string) (string, bool) {
	key := NormalizeRole(role)
	if key == "" {
		return "", false
	}
	if e, ok := lx.Languages[code]; ok {
		if a, ok := e.RoleAdvice[key]; ok {
			return a, true
		}
	}
	a, ok := lx.Languages[lx.Default].RoleAdvice[key]
	return a, ok
}

// IsFiller reports whether the lowercased token is a filler word.
func (lx *Lexicon) IsFiller(token string) bool {
	return slices.Contains(lx.FillerWords, token)
}

// NormalizeRole lowercases and collapses whitespace in a role title.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.Join(strings.Fields(role), " "))
}

func lowerKeys[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[NormalizeRole(k)] = v
	}
	return out
}

// sortedCodes returns the language codes with def first, then ascending.
func sortedCodes(langs map[string]Entry, def string) []string {
	codes := slices.Sorted(maps.Keys(langs))
	codes = slices.DeleteFunc(codes, func(c string) bool { return c == def })
	return append([]string{def}, codes...)
}
