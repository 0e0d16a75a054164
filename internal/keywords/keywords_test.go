package keywords

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/completion/mock"
	"github.com/nadzzz/coachd/internal/lexicon"
)

func TestDictionary(t *testing.T) {
	e := New(nil)
	lx := lexicon.Default()

	t.Run("empty text", func(t *testing.T) {
		require.Empty(t, e.Dictionary("", "Software Engineer", "en"))
	})

	t.Run("dictionary order and cap", func(t *testing.T) {
		text := "I deployed Docker containers on AWS, wrote Python and SQL, used React with TypeScript and Git."
		got := e.Dictionary(text, "", "en")
		require.Len(t, got, MaxKeywords)
		require.Equal(t, []string{"react", "typescript", "python", "sql", "docker"}, got)
	})

	t.Run("data scientist machine learning", func(t *testing.T) {
		text := "I applied Machine Learning to churn data and the machine learning model shipped."
		got := e.Dictionary(text, "Data Scientist", "en")
		require.Contains(t, got, "machine learning")
	})

	t.Run("role terms after technical terms without duplicates", func(t *testing.T) {
		got := e.Dictionary("The database api layer and server security", "Backend Developer", "en")
		require.Equal(t, []string{"database", "api", "server", "security"}, got)
	})

	t.Run("unknown role adds nothing", func(t *testing.T) {
		got := e.Dictionary("I like statistics and docker", "Astronaut", "en")
		require.Equal(t, []string{"docker"}, got)
	})

	t.Run("substring match inside a token", func(t *testing.T) {
		got := e.Dictionary("हमने पायथन3 और डॉकर का प्रयोग किया", "", "hi")
		require.Equal(t, []string{"पायथन", "डॉकर"}, got)
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		got := e.Dictionary("kubernetes and docker", "", "xx")
		require.Equal(t, []string{"docker", "kubernetes"}, got)
	})

	t.Run("hindi role table", func(t *testing.T) {
		got := e.Dictionary("मैंने मशीन लर्निंग मॉडल बनाया", "Data Scientist", "hi")
		require.Contains(t, got, "मशीन लर्निंग")
	})

	t.Run("every keyword belongs to the tables", func(t *testing.T) {
		text := "python sql docker kubernetes aws azure cloud git agile testing algorithm system design"
		for _, lang := range []string{"en", "hi", "bn", "xx"} {
			got := e.Dictionary(text, "Software Engineer", lang)
			require.LessOrEqual(t, len(got), MaxKeywords)
			allowed := append(slices.Clone(lx.Technical(lang)), lx.RoleTerms(lang, "Software Engineer")...)
			for _, kw := range got {
				require.Contains(t, allowed, kw, fmt.Sprintf("%s in %s", kw, lang))
			}
		}
	})
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	text := "I used docker and kubernetes"

	t.Run("dictionary mode without completer", func(t *testing.T) {
		require.Equal(t, []string{"docker", "kubernetes"}, New(nil).Extract(ctx, text, "", "en", "English"))
	})

	t.Run("service mode", func(t *testing.T) {
		c := &mock.Completer{Response: "```json\n[\"Docker\", \"docker\", \"Kubernetes\", \"CI\", \"Helm\", \"GitOps\", \"ArgoCD\"]\n```"}
		e := New(nil, WithCompleter(c, "gpt-4o-mini"))

		got := e.Extract(ctx, text, "DevOps Engineer", "hi", "Hindi")
		require.Equal(t, []string{"Docker", "Kubernetes", "CI", "Helm", "GitOps"}, got)
		require.Equal(t, 1, c.CallCount())
		require.Equal(t, "gpt-4o-mini", c.Calls[0].Req.Model)
		require.Contains(t, c.Calls[0].Req.Prompt, "Hindi")
		require.Contains(t, c.Calls[0].Req.Prompt, "DevOps Engineer")
	})

	t.Run("unparseable response falls back silently", func(t *testing.T) {
		c := &mock.Completer{Response: "docker, kubernetes"}
		got := New(nil, WithCompleter(c, "")).Extract(ctx, text, "", "en", "English")
		require.Equal(t, []string{"docker", "kubernetes"}, got)
	})

	t.Run("service error falls back silently", func(t *testing.T) {
		c := &mock.Completer{Err: fmt.Errorf("%w: dial tcp", completion.ErrUnreachable)}
		got := New(nil, WithCompleter(c, "")).Extract(ctx, text, "", "en", "English")
		require.Equal(t, []string{"docker", "kubernetes"}, got)
	})

	t.Run("empty array is a valid answer", func(t *testing.T) {
		c := &mock.Completer{Respond: func(completion.Request) (string, error) { return "[]", nil }}
		got := New(nil, WithCompleter(c, "")).Extract(ctx, text, "", "en", "English")
		require.Empty(t, got)
	})

	t.Run("errors are never surfaced", func(t *testing.T) {
		c := &mock.Completer{Err: errors.New("anything")}
		require.NotPanics(t, func() {
			New(nil, WithCompleter(c, "")).Extract(ctx, "", "", "en", "English")
		})
	})
}
