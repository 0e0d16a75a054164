// Package emotion adapts the optional upstream affect signal for feedback
// synthesis. Values are passed through unchanged; a missing or NaN field is
// reported as absent so that consumers skip the clause instead of failing.
package emotion

import (
	"fmt"
	"math"
	"strings"

	"github.com/nadzzz/coachd/internal/message"
)

// Signal is a read-only view over an EmotionSignal.
type Signal struct {
	raw *message.EmotionSignal
}

// Adapt wraps sig. A nil sig yields a Signal that reports not present.
func Adapt(sig *message.EmotionSignal) Signal {
	return Signal{raw: sig}
}

// Present reports whether any signal was supplied.
func (s Signal) Present() bool { return s.raw != nil }

// Confidence returns the confidence scalar.
func (s Signal) Confidence() (float64, bool) { return s.field(func(e *message.EmotionSignal) *float64 { return e.Confidence }) }

// Engagement returns the engagement scalar.
func (s Signal) Engagement() (float64, bool) { return s.field(func(e *message.EmotionSignal) *float64 { return e.Engagement }) }

// EyeContact returns the eye contact scalar.
func (s Signal) EyeContact() (float64, bool) { return s.field(func(e *message.EmotionSignal) *float64 { return e.EyeContact }) }

// Stress returns the stress scalar.
func (s Signal) Stress() (float64, bool) { return s.field(func(e *message.EmotionSignal) *float64 { return e.Stress }) }

// DominantEmotion returns the categorical label, or "" if absent.
func (s Signal) DominantEmotion() string {
	if s.raw == nil {
		return ""
	}
	return s.raw.DominantEmotion
}

func (s Signal) field(get func(*message.EmotionSignal) *float64) (float64, bool) {
	if s.raw == nil {
		return 0, false
	}
	v := get(s.raw)
	if v == nil || math.IsNaN(*v) {
		return 0, false
	}
	return *v, true
}

// Describe renders the available fields as prompt context, one per line.
// It returns "" when no signal is present.
func (s Signal) Describe() string {
	if !s.Present() {
		return ""
	}
	var sb strings.Builder
	pct := func(label string, v float64, ok bool) {
		if ok {
			fmt.Fprintf(&sb, "- %s: %d%%\n", label, int(math.Round(v*100)))
		}
	}
	v, ok := s.Confidence()
	pct("Confidence Level", v, ok)
	v, ok = s.EyeContact()
	pct("Eye Contact", v, ok)
	v, ok = s.Engagement()
	pct("Engagement", v, ok)
	v, ok = s.Stress()
	pct("Stress Level", v, ok)
	if d := s.DominantEmotion(); d != "" {
		fmt.Fprintf(&sb, "- Dominant Emotion: %s\n", d)
	}
	return sb.String()
}
