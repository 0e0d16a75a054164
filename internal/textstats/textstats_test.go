package textstats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	e := New(nil)

	t.Run("empty transcript", func(t *testing.T) {
		s := e.Extract("")
		require.Equal(t, Stats{}, s)
	})

	t.Run("whitespace only", func(t *testing.T) {
		s := e.Extract("  \n\t ")
		require.Equal(t, 0, s.WordCount)
		require.Equal(t, 0, s.SentenceCount)
	})

	t.Run("word count and duration", func(t *testing.T) {
		s := e.Extract("I   built a\tservice\nin Go.")
		require.Equal(t, 6, s.WordCount)
		require.Equal(t, 3, s.EstimatedDurationSeconds)
		require.Equal(t, 1, s.SentenceCount)
	})

	t.Run("odd word count floors duration", func(t *testing.T) {
		s := e.Extract("one two three")
		require.Equal(t, 1, s.EstimatedDurationSeconds)
	})

	t.Run("example markers", func(t *testing.T) {
		for _, text := range []string{
			"For EXAMPLE we shipped it",
			"my last project",
			"years of experience",
			"मेरे अनुभव में",
		} {
			require.True(t, e.Extract(text).HasSpecificExamples, text)
		}
		require.False(t, e.Extract("I like turtles").HasSpecificExamples)
	})

	t.Run("filler words", func(t *testing.T) {
		s := e.Extract("Um, so I basically, you know, wrote it. Uh!")
		require.Equal(t, 5, s.FillerWordCount)
		require.Equal(t, 2, s.SentenceCount)
	})

	t.Run("long transcript", func(t *testing.T) {
		s := e.Extract(strings.Repeat("word ", 250))
		require.Equal(t, 250, s.WordCount)
		require.Equal(t, 125, s.EstimatedDurationSeconds)
	})
}
