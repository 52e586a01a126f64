package profile

import "time"

const (
	WaveformNoise = "waveform:noise"
	WaveformSine  = "waveform:sine"
	WaveformPiano = "waveform:piano" // Sine with decaying upper partials
)

// Profile describes how a voice sounds: its waveform, level and amplitude envelope.
type Profile struct {
	Name     string
	Waveform string

	// Gain applied before the master volume
	Gain float64

	Attack time.Duration
	// Exponential decay rate per second, zero sustains
	Decay float64
	// Zero means the voice plays until it is released
	Duration time.Duration

	// Name of the easing curve used for the attack, see effect.EasingFunc
	Ease string
}

// Sustained reports whether the voice holds until it is released.
func (p Profile) Sustained() bool {
	return p.Duration == 0
}
