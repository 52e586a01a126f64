package effect

import (
	"math"
	"strings"
	"time"

	"github.com/fogleman/ease"
)

// Envelope shapes the amplitude of a single voice: an eased attack followed by an exponential
// decay, silent after Length.
type Envelope struct {
	// The easing function used for the attack
	EasingFunc ease.Function

	Attack time.Duration

	// Decay is the exponential decay rate per second. Zero sustains at full level.
	Decay float64

	// Length is the total duration of the voice. Zero means the voice never ends.
	Length time.Duration
}

// NewEnvelope creates and returns a pointer to a new Envelope.
func NewEnvelope(easingFunc ease.Function, attack time.Duration, decay float64, length time.Duration) *Envelope {
	if easingFunc == nil {
		easingFunc = ease.Linear
	}
	return &Envelope{
		EasingFunc: easingFunc,
		Attack:     attack,
		Decay:      decay,
		Length:     length,
	}
}

// Amplitude returns the envelope level in [0, 1] at offset t from the start of the voice.
func (e *Envelope) Amplitude(t time.Duration) float64 {
	if t < 0 || e.Finished(t) {
		return 0
	}
	if t < e.Attack {
		return clamp01(e.EasingFunc(float64(t) / float64(e.Attack)))
	}
	if e.Decay == 0 {
		return 1
	}
	return math.Exp(-e.Decay * (t - e.Attack).Seconds())
}

// Finished reports whether the voice is silent from t onwards.
func (e *Envelope) Finished(t time.Duration) bool {
	return e.Length > 0 && t >= e.Length
}

// Samples returns the number of samples the envelope lasts at sampleRate, or 0 if it never ends.
func (e *Envelope) Samples(sampleRate int) int {
	return int(math.Round(e.Length.Seconds() * float64(sampleRate)))
}

// EasingFunc looks up an easing function by name, e.g. "in-quart". Unknown names fall back to
// linear.
func EasingFunc(name string) ease.Function {
	switch strings.ToLower(name) {
	case "in-quad":
		return ease.InQuad
	case "out-quad":
		return ease.OutQuad
	case "in-cubic":
		return ease.InCubic
	case "out-cubic":
		return ease.OutCubic
	case "in-quart":
		return ease.InQuart
	case "out-quart":
		return ease.OutQuart
	case "in-out-quart":
		return ease.InOutQuart
	case "in-sine":
		return ease.InSine
	case "out-sine":
		return ease.OutSine
	default:
		return ease.Linear
	}
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
