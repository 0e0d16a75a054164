package feedback

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/completion/mock"
	"github.com/nadzzz/coachd/internal/emotion"
	"github.com/nadzzz/coachd/internal/lexicon"
	"github.com/nadzzz/coachd/internal/message"
	"github.com/nadzzz/coachd/internal/textstats"
)

func ptr(v float64) *float64 { return &v }

func input(transcript, role, lang string, kws []string, sig *message.EmotionSignal) Input {
	return Input{
		Transcript:   transcript,
		Question:     "Tell me about a project you are proud of.",
		Role:         role,
		Language:     lang,
		LanguageName: "English",
		Keywords:     kws,
		Emotion:      emotion.Adapt(sig),
		Stats:        textstats.New(nil).Extract(transcript),
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name  string
		base  int
		stats textstats.Stats
		want  int
	}{
		{"short answer penalty", 80, textstats.Stats{WordCount: 10}, 70},
		{"middle length unchanged", 80, textstats.Stats{WordCount: 120}, 80},
		{"long answer bonus", 80, textstats.Stats{WordCount: 250}, 85},
		{"examples bonus", 80, textstats.Stats{WordCount: 120, HasSpecificExamples: true}, 90},
		{"clamped to 100", 95, textstats.Stats{WordCount: 250, HasSpecificExamples: true}, 100},
		{"boundary 50 is not short", 80, textstats.Stats{WordCount: 50}, 80},
		{"boundary 200 is not long", 80, textstats.Stats{WordCount: 200}, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Score(tc.base, tc.stats))
		})
	}
}

func TestSynthesizeLocal(t *testing.T) {
	ctx := context.Background()
	lx := lexicon.Default()
	en := lx.Clauses("en")
	s := New(nil, WithRand(rand.New(rand.NewPCG(1, 2))))

	t.Run("empty transcript", func(t *testing.T) {
		res, err := s.Synthesize(ctx, input("", "Software Engineer", "en", nil, nil))
		require.NoError(t, err)
		require.Equal(t, message.ModeLocal, res.Mode)
		require.Equal(t, 0, res.Metrics.WordCount)
		require.False(t, res.Metrics.HasExamples)
		require.GreaterOrEqual(t, res.Score, BaseMin-10)
		require.LessOrEqual(t, res.Score, BaseMax-10)
		require.True(t, strings.HasPrefix(res.Feedback, en.LengthBrief), res.Feedback)
		require.Zero(t, res.Metrics.Clarity)
		require.Zero(t, res.Metrics.Relevance)
	})

	t.Run("long answer with example", func(t *testing.T) {
		transcript := "For example " + strings.Repeat("we scaled the service ", 62)
		res, err := s.Synthesize(ctx, input(transcript, "", "en", nil, nil))
		require.NoError(t, err)
		require.InDelta(t, 250, res.Metrics.WordCount, 2)
		require.Contains(t, res.Feedback, en.LengthLong)
		require.Contains(t, res.Feedback, en.ExamplesPresent)
		require.GreaterOrEqual(t, res.Score, min(BaseMin+15, 100))
		require.LessOrEqual(t, res.Score, 100)
	})

	t.Run("low confidence then low eye contact", func(t *testing.T) {
		sig := &message.EmotionSignal{Confidence: ptr(0.3), EyeContact: ptr(0.2)}
		res, err := s.Synthesize(ctx, input("I built it.", "", "en", nil, sig))
		require.NoError(t, err)

		ci := strings.Index(res.Feedback, en.ConfidenceLow)
		ei := strings.Index(res.Feedback, en.EyeContactLow)
		require.GreaterOrEqual(t, ci, 0)
		require.Greater(t, ei, ci)
		require.Equal(t, 30, res.Metrics.Confidence)
	})

	t.Run("score always in range", func(t *testing.T) {
		for _, n := range []int{0, 1, 29, 30, 49, 50, 51, 199, 200, 201, 400} {
			tr := strings.TrimSpace(strings.Repeat("project ", n))
			for range 20 {
				res, err := s.Synthesize(ctx, input(tr, "", "en", nil, nil))
				require.NoError(t, err)
				require.GreaterOrEqual(t, res.Score, 0)
				require.LessOrEqual(t, res.Score, 100)
			}
		}
	})
}

func TestClauses(t *testing.T) {
	lx := lexicon.Default()
	en := lx.Clauses("en")
	s := New(nil)

	t.Run("fixed order", func(t *testing.T) {
		sig := &message.EmotionSignal{Confidence: ptr(0.9), EyeContact: ptr(0.1), Engagement: ptr(0.8)}
		in := input(strings.Repeat("word ", 60), "Data Scientist", "en", []string{"python", "sql", "docker"}, sig)
		advice, _ := lx.RoleAdvice("en", "Data Scientist")

		require.Equal(t, []string{
			en.LengthGood,
			en.ExamplesMissing,
			"Mentioning python, sql shows knowledge that is relevant for the Data Scientist position.",
			en.ConfidenceHigh,
			en.EyeContactLow,
			en.EngagementHigh,
			advice,
		}, s.Clauses(in))
	})

	t.Run("deterministic", func(t *testing.T) {
		in := input("I used docker in a project", "Backend Developer", "en", []string{"docker"}, nil)
		first := s.Clauses(in)
		for range 10 {
			require.Equal(t, first, s.Clauses(in))
		}
	})

	t.Run("no clause repeats", func(t *testing.T) {
		sig := &message.EmotionSignal{Confidence: ptr(0.1), EyeContact: ptr(0.1), Engagement: ptr(0.9)}
		got := s.Clauses(input("", "Software Engineer", "en", []string{"a", "b"}, sig))
		seen := map[string]bool{}
		for _, c := range got {
			require.False(t, seen[c], c)
			seen[c] = true
		}
	})

	t.Run("missing emotion fields are skipped", func(t *testing.T) {
		got := s.Clauses(input("short", "", "en", nil, &message.EmotionSignal{DominantEmotion: "neutral"}))
		require.Equal(t, []string{en.LengthBrief, en.ExamplesMissing}, got)
	})

	t.Run("middle confidence adds nothing", func(t *testing.T) {
		got := s.Clauses(input("short", "", "en", nil, &message.EmotionSignal{Confidence: ptr(0.6)}))
		require.Len(t, got, 2)
	})

	t.Run("unknown role omits advice and uses generic keyword clause", func(t *testing.T) {
		got := s.Clauses(input("short", "", "en", []string{"react"}, nil))
		require.Equal(t, "Mentioning react shows relevant technical knowledge.", got[2])
		require.Len(t, got, 3)

		got = s.Clauses(input("short", "Astronaut", "en", nil, nil))
		require.Len(t, got, 2)
	})

	t.Run("localized", func(t *testing.T) {
		hi := lx.Clauses("hi")
		got := s.Clauses(input("", "", "hi", nil, nil))
		require.Equal(t, hi.LengthBrief, got[0])

		// Bengali has dictionaries but no clauses.
		got = s.Clauses(input("", "", "bn", nil, nil))
		require.Equal(t, en.LengthBrief, got[0])
	})
}

func TestSuggestions(t *testing.T) {
	sg := lexicon.Default().Suggestions("en")
	s := New(nil)

	got := s.Suggestions(input("short", "", "en", nil, nil))
	require.Equal(t, []string{sg.MoreDetail, sg.IncludeExamples, sg.EyeContact, sg.STARMethod}, got)

	long := strings.Repeat("project ", 120)
	got = s.Suggestions(input(long, "", "en", nil, &message.EmotionSignal{EyeContact: ptr(0.9)}))
	require.Equal(t, []string{sg.STARMethod}, got)
}

func TestMetrics(t *testing.T) {
	s := New(nil, WithRand(rand.New(rand.NewPCG(7, 7))))
	res, err := s.Synthesize(context.Background(), input("um so I used docker in a project, uh", "", "en", []string{"docker"}, nil))
	require.NoError(t, err)
	require.Equal(t, 85, res.Metrics.Clarity)
	require.Equal(t, 78, res.Metrics.Relevance)
	require.Equal(t, res.Score, res.Metrics.Confidence)
}

func TestSynthesizeService(t *testing.T) {
	ctx := context.Background()

	t.Run("prose is used verbatim", func(t *testing.T) {
		c := &mock.Completer{Response: "Strong answer. Add metrics next time."}
		s := New(nil, WithCompleter(c))
		sig := &message.EmotionSignal{Confidence: ptr(0.8)}
		in := input("I used docker in a project", "Backend Developer", "en", []string{"docker"}, sig)
		in.LanguageName = "Hindi"

		res, err := s.Synthesize(ctx, in)
		require.NoError(t, err)
		require.Equal(t, message.ModeService, res.Mode)
		require.Equal(t, "Strong answer. Add metrics next time.", res.Feedback)
		require.GreaterOrEqual(t, res.Score, BaseMin-10)
		require.LessOrEqual(t, res.Score, 100)

		require.Equal(t, 1, c.CallCount())
		prompt := c.Calls[0].Req.Prompt
		require.Contains(t, prompt, "Backend Developer")
		require.Contains(t, prompt, "Detected Keywords: docker")
		require.Contains(t, prompt, "Confidence Level: 80%")
		require.Contains(t, prompt, "Respond only in Hindi")
	})

	t.Run("service failure is returned", func(t *testing.T) {
		c := &mock.Completer{Err: fmt.Errorf("%w: status 503", completion.ErrUnreachable)}
		res, err := New(nil, WithCompleter(c)).Synthesize(ctx, input("hello", "", "en", nil, nil))
		require.Nil(t, res)
		require.ErrorIs(t, err, completion.ErrUnreachable)
	})

	t.Run("malformed response is returned", func(t *testing.T) {
		c := &mock.Completer{Err: fmt.Errorf("%w: empty completion", completion.ErrMalformed)}
		_, err := New(nil, WithCompleter(c)).Synthesize(ctx, input("hello", "", "en", nil, nil))
		require.ErrorIs(t, err, completion.ErrMalformed)
	})
}
