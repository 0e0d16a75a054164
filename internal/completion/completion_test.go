package completion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		`["a"]`:                       `["a"]`,
		"  [\"a\"]\n":                 `["a"]`,
		"```json\n[\"a\", \"b\"]\n```": `["a", "b"]`,
		"```\n[\"a\"]```":             `["a"]`,
	}
	for in, want := range cases {
		require.Equal(t, want, StripFences(in), in)
	}
}

func TestParseStringArray(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		got, err := ParseStringArray(`["react", " api ", ""]`)
		require.NoError(t, err)
		require.Equal(t, []string{"react", "api"}, got)
	})

	t.Run("fenced array", func(t *testing.T) {
		got, err := ParseStringArray("```json\n[\"docker\"]\n```")
		require.NoError(t, err)
		require.Equal(t, []string{"docker"}, got)
	})

	t.Run("prose is malformed", func(t *testing.T) {
		_, err := ParseStringArray("Here are the keywords: react, docker")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("object is malformed", func(t *testing.T) {
		_, err := ParseStringArray(`{"keywords": ["react"]}`)
		require.ErrorIs(t, err, ErrMalformed)
	})
}
