package language

import (
	"context"
	"fmt"
	"regexp"
	"unicode"

	"github.com/nadzzz/coachd/internal/lexicon"
)

// scripts maps a writing system to the catalog language it most likely
// indicates. Scripts shared by several languages resolve to the most widely
// used one.
var scripts = []struct {
	table *unicode.RangeTable
	code  string
}{
	{unicode.Devanagari, "hi"},
	{unicode.Bengali, "bn"},
	{unicode.Tamil, "ta"},
	{unicode.Telugu, "te"},
	{unicode.Gujarati, "gu"},
	{unicode.Kannada, "kn"},
	{unicode.Malayalam, "ml"},
	{unicode.Gurmukhi, "pa"},
	{unicode.Oriya, "or"},
	{unicode.Sinhala, "si"},
	{unicode.Myanmar, "my"},
	{unicode.Arabic, "ar"},
	{unicode.Hebrew, "he"},
	{unicode.Thai, "th"},
	{unicode.Hangul, "ko"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Han, "zh"},
	{unicode.Cyrillic, "ru"},
	{unicode.Greek, "el"},
	{unicode.Latin, "en"},
}

type phraseRule struct {
	pattern      *regexp.Regexp
	translations map[string]string
}

// Local is the offline Backend. It detects languages by script and translates
// by case-insensitive phrasebook substitution; text with no known phrase is
// returned unchanged.
type Local struct {
	rules []phraseRule
}

// NewLocal builds a Local backend from the lexicon phrasebook. A nil lexicon
// selects the embedded default.
func NewLocal(lex *lexicon.Lexicon) *Local {
	if lex == nil {
		lex = lexicon.Default()
	}
	l := &Local{rules: make([]phraseRule, 0, len(lex.Phrasebook))}
	for _, p := range lex.Phrasebook {
		l.rules = append(l.rules, phraseRule{
			pattern:      regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p.Phrase)),
			translations: p.Translations,
		})
	}
	return l
}

// Name returns "local".
func (l *Local) Name() string { return "local" }

// Detect picks the script with the most letters in text. Japanese kana
// outweighs shared Han characters.
func (l *Local) Detect(_ context.Context, text string) (string, error) {
	counts := make(map[string]int)
	kana := false
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		for _, s := range scripts {
			if unicode.Is(s.table, r) {
				counts[s.code]++
				if s.table == unicode.Hiragana || s.table == unicode.Katakana {
					kana = true
				}
				break
			}
		}
	}
	if kana {
		return "ja", nil
	}

	best, bestN := "", 0
	for _, s := range scripts {
		if n := counts[s.code]; n > bestN {
			best, bestN = s.code, n
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: no recognizable script", ErrUndetectable)
	}
	return best, nil
}

// Translate substitutes every phrasebook phrase that has a translation into
// target. Phrases are applied in phrasebook order.
func (l *Local) Translate(_ context.Context, text, _, target string) (string, error) {
	out := text
	for _, r := range l.rules {
		tr, ok := r.translations[target]
		if !ok {
			continue
		}
		out = r.pattern.ReplaceAllLiteralString(out, tr)
	}
	return out, nil
}
