package lexicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	lx := Default()

	t.Run("embedded document is complete", func(t *testing.T) {
		require.Equal(t, "en", lx.Default)
		for _, code := range []string{"en", "hi", "bn", "ta", "te", "mr", "es"} {
			require.True(t, lx.Has(code), code)
			require.NotEmpty(t, lx.Technical(code), code)
		}
	})

	t.Run("unknown language uses english tables", func(t *testing.T) {
		require.Equal(t, lx.Technical("en"), lx.Technical("xx"))
		require.Equal(t, lx.Clauses("en"), lx.Clauses("xx"))
		require.Equal(t, lx.RoleTerms("en", "Data Scientist"), lx.RoleTerms("xx", "Data Scientist"))
	})

	t.Run("partial language falls back per field", func(t *testing.T) {
		require.NotEqual(t, lx.Technical("en"), lx.Technical("bn"))
		require.Equal(t, lx.Clauses("en"), lx.Clauses("bn"))
		require.Equal(t, lx.Suggestions("en"), lx.Suggestions("ta"))
	})

	t.Run("roles are case and space insensitive", func(t *testing.T) {
		terms := lx.RoleTerms("en", "  data   SCIENTIST ")
		require.Contains(t, terms, "machine learning")
		require.Empty(t, lx.RoleTerms("en", "Astronaut"))
	})

	t.Run("role advice", func(t *testing.T) {
		advice, ok := lx.RoleAdvice("hi", "Data Scientist")
		require.True(t, ok)
		require.NotEmpty(t, advice)

		// Spanish has no frontend advice; English is used.
		es, ok := lx.RoleAdvice("es", "Frontend Developer")
		require.True(t, ok)
		en, _ := lx.RoleAdvice("en", "Frontend Developer")
		require.Equal(t, en, es)

		_, ok = lx.RoleAdvice("en", "Astronaut")
		require.False(t, ok)
		_, ok = lx.RoleAdvice("en", "")
		require.False(t, ok)
	})

	t.Run("example markers start with english", func(t *testing.T) {
		markers := lx.ExampleMarkers()
		require.Equal(t, []string{"example", "project", "experience", "instance"}, markers[:4])
		require.Contains(t, markers, "उदाहरण")
	})

	t.Run("filler words", func(t *testing.T) {
		require.True(t, lx.IsFiller("um"))
		require.False(t, lx.IsFiller("kubernetes"))
	})

	t.Run("phrasebook", func(t *testing.T) {
		require.NotEmpty(t, lx.Phrasebook)
		require.Equal(t, "tell me about yourself", lx.Phrasebook[0].Phrase)
		require.Equal(t, "takk", lx.Phrasebook[2].Translations["no"])
	})
}

func TestParse(t *testing.T) {
	t.Run("missing default entry", func(t *testing.T) {
		_, err := Parse([]byte("default: fr\nlanguages:\n  en:\n    technical: [go]\n"))
		require.Error(t, err)
	})

	t.Run("default without clauses", func(t *testing.T) {
		_, err := Parse([]byte("languages:\n  en:\n    technical: [go]\n"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("languages: [\n"))
		require.Error(t, err)
	})
}
