package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robmorgan/metronome/logger"
	"github.com/robmorgan/metronome/profile"
	"github.com/sirupsen/logrus"
)

const (
	EnvSampleRate = "METRONOME_SAMPLE_RATE"
	EnvBufferMS   = "METRONOME_BUFFER_MS"

	DefaultSampleRate     = 44100
	DefaultBufferDuration = 10 * time.Millisecond
	DefaultVolume         = 0.8
)

// Config represents options that configure the global behavior of the program
type Config struct {
	// Project logger
	Logger *logrus.Entry

	// Output sample rate in Hz
	SampleRate int

	// Size of the speaker buffer
	BufferDuration time.Duration

	// Master volume in [0, 1]
	Volume float64

	// The voice profiles, keyed by ProfileClick, ProfileHarmonic and ProfileDrone
	Profiles map[string]profile.Profile
}

// Create a new Config object with reasonable defaults for real usage
func NewConfig() (Config, error) {
	cfg := Config{
		Logger:         logger.GetProjectLogger(),
		SampleRate:     DefaultSampleRate,
		BufferDuration: DefaultBufferDuration,
		Volume:         DefaultVolume,
		Profiles:       initializeVoiceProfiles(),
	}

	if val := os.Getenv(EnvSampleRate); val != "" {
		rate, err := strconv.Atoi(val)
		if err != nil || rate < 8000 || rate > 192000 {
			return cfg, fmt.Errorf("%s must be a sample rate between 8000 and 192000, got %q", EnvSampleRate, val)
		}
		cfg.SampleRate = rate
	}

	if val := os.Getenv(EnvBufferMS); val != "" {
		ms, err := strconv.Atoi(val)
		if err != nil || ms < 1 || ms > 1000 {
			return cfg, fmt.Errorf("%s must be a number of milliseconds between 1 and 1000, got %q", EnvBufferMS, val)
		}
		cfg.BufferDuration = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

// SetVolume sets the master volume, clamped to [0, 1].
func (c *Config) SetVolume(v float64) {
	switch {
	case v < 0:
		c.Volume = 0
	case v > 1:
		c.Volume = 1
	default:
		c.Volume = v
	}
}

// Profile returns the named voice profile.
func (c Config) Profile(name string) (profile.Profile, bool) {
	p, found := c.Profiles[name]
	return p, found
}
