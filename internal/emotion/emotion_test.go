package emotion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nadzzz/coachd/internal/message"
)

func ptr(v float64) *float64 { return &v }

func TestAdapt(t *testing.T) {
	t.Run("nil signal", func(t *testing.T) {
		s := Adapt(nil)
		require.False(t, s.Present())
		_, ok := s.Confidence()
		require.False(t, ok)
		require.Empty(t, s.DominantEmotion())
		require.Empty(t, s.Describe())
	})

	t.Run("pass through", func(t *testing.T) {
		s := Adapt(&message.EmotionSignal{
			Confidence:      ptr(0.3),
			EyeContact:      ptr(0.2),
			DominantEmotion: "neutral",
		})
		require.True(t, s.Present())

		v, ok := s.Confidence()
		require.True(t, ok)
		require.InDelta(t, 0.3, v, 1e-9)

		v, ok = s.EyeContact()
		require.True(t, ok)
		require.InDelta(t, 0.2, v, 1e-9)

		_, ok = s.Engagement()
		require.False(t, ok)
		_, ok = s.Stress()
		require.False(t, ok)
		require.Equal(t, "neutral", s.DominantEmotion())
	})

	t.Run("out of band values are not clamped", func(t *testing.T) {
		v, ok := Adapt(&message.EmotionSignal{Engagement: ptr(1.5)}).Engagement()
		require.True(t, ok)
		require.InDelta(t, 1.5, v, 1e-9)
	})

	t.Run("NaN is absent", func(t *testing.T) {
		_, ok := Adapt(&message.EmotionSignal{Stress: ptr(math.NaN())}).Stress()
		require.False(t, ok)
	})

	t.Run("describe", func(t *testing.T) {
		d := Adapt(&message.EmotionSignal{
			Confidence:      ptr(0.76),
			Stress:          ptr(0.1),
			DominantEmotion: "happy",
		}).Describe()
		require.Equal(t, "- Confidence Level: 76%\n- Stress Level: 10%\n- Dominant Emotion: happy\n", d)
	})
}
