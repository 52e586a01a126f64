package config

import (
	"time"

	"github.com/robmorgan/metronome/profile"
)

const (
	ProfileClick    = "click"
	ProfileHarmonic = "harmonic"
	ProfileDrone    = "drone"
)

func initializeVoiceProfiles() map[string]profile.Profile {
	out := map[string]profile.Profile{
		ProfileClick: {
			Name:     "Hi-hat click",
			Waveform: profile.WaveformNoise,
			Gain:     0.6,
			Attack:   time.Millisecond,
			Decay:    100,
			Duration: 40 * time.Millisecond,
			Ease:     "in-quad",
		},
		ProfileHarmonic: {
			Name:     "Electric piano",
			Waveform: profile.WaveformPiano,
			Gain:     0.5,
			Attack:   5 * time.Millisecond,
			Decay:    3,
			Duration: 400 * time.Millisecond,
			Ease:     "out-quad",
		},
		ProfileDrone: {
			Name:     "Sustained drone",
			Waveform: profile.WaveformPiano,
			Gain:     0.35,
			Attack:   200 * time.Millisecond,
			Decay:    0,
			Duration: 0, // held until playback stops
			Ease:     "in-out-quart",
		},
	}

	return out
}
