// Package textstats computes lexical statistics over a transcript.
package textstats

import (
	"strings"

	"github.com/nadzzz/coachd/internal/lexicon"
)

// wordsPerSecond is the assumed speaking rate.
const wordsPerSecond = 2

// Stats are the statistics derived from one transcript.
type Stats struct {
	WordCount                int
	HasSpecificExamples      bool
	EstimatedDurationSeconds int
	FillerWordCount          int
	SentenceCount            int
}

// Extractor computes Stats using the marker and filler tables of a lexicon.
type Extractor struct {
	lex *lexicon.Lexicon
}

// New creates an Extractor. A nil lexicon selects the embedded default.
func New(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{lex: lex}
}

// Extract returns the statistics for transcript. It never fails; an empty
// transcript yields zero values.
func (e *Extractor) Extract(transcript string) Stats {
	tokens := strings.Fields(transcript)
	lower := strings.ToLower(transcript)

	s := Stats{
		WordCount:                len(tokens),
		EstimatedDurationSeconds: len(tokens) / wordsPerSecond,
	}
	for _, m := range e.lex.ExampleMarkers() {
		if strings.Contains(lower, m) {
			s.HasSpecificExamples = true
			break
		}
	}
	for _, tok := range tokens {
		if e.lex.IsFiller(strings.Trim(strings.ToLower(tok), ".,!?;:")) {
			s.FillerWordCount++
		}
	}
	s.FillerWordCount += strings.Count(lower, "you know")

	for _, seg := range strings.FieldsFunc(transcript, isSentenceEnd) {
		if strings.TrimSpace(seg) != "" {
			s.SentenceCount++
		}
	}
	return s
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
