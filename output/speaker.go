package output

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/robmorgan/metronome/config"
	"github.com/robmorgan/metronome/profile"
)

// Speaker renders events through the sound card. Every voice is mixed into a single stream.
type Speaker struct {
	sampleRate beep.SampleRate
	mixer      *beep.Mixer
	volume     float64

	// lock guards the mixer against the audio callback
	lock sync.Locker

	click    profile.Profile
	harmonic profile.Profile
	drone    profile.Profile

	// clickSample replaces the synthesized click when set
	clickSample *beep.Buffer

	rng *rand.Rand

	release func()
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// NewSpeaker opens the default audio device. clickFile is an optional WAV file played on every
// audible click.
func NewSpeaker(cfg config.Config, clickFile string) (*Speaker, error) {
	s, err := newSpeaker(cfg, clickFile, speakerLock{})
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(s.sampleRate, s.sampleRate.N(cfg.BufferDuration)); err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	speaker.Play(s.stream())
	s.release = speaker.Close

	cfg.Logger.WithField("sample_rate", cfg.SampleRate).Debug("audio device opened")
	return s, nil
}

func newSpeaker(cfg config.Config, clickFile string, lock sync.Locker) (*Speaker, error) {
	s := &Speaker{
		sampleRate: beep.SampleRate(cfg.SampleRate),
		mixer:      &beep.Mixer{},
		volume:     cfg.Volume,
		lock:       lock,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	var found bool
	if s.click, found = cfg.Profile(config.ProfileClick); !found {
		return nil, fmt.Errorf("missing %q voice profile", config.ProfileClick)
	}
	if s.harmonic, found = cfg.Profile(config.ProfileHarmonic); !found {
		return nil, fmt.Errorf("missing %q voice profile", config.ProfileHarmonic)
	}
	if s.drone, found = cfg.Profile(config.ProfileDrone); !found {
		return nil, fmt.Errorf("missing %q voice profile", config.ProfileDrone)
	}

	if clickFile != "" {
		buf, err := loadClickSample(clickFile, s.sampleRate)
		if err != nil {
			return nil, err
		}
		s.clickSample = buf
	}

	return s, nil
}

// loadClickSample decodes a WAV file into memory at the output sample rate.
func loadClickSample(file string, sr beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening click sound: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding click sound %s: %w", file, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sr {
		src = beep.Resample(4, format.SampleRate, sr, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if buf.Len() == 0 {
		return nil, fmt.Errorf("click sound %s contains no samples", file)
	}
	return buf, nil
}

// stream is the master output: the mixer scaled by the volume.
func (s *Speaker) stream() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		n, ok = s.mixer.Stream(samples)
		for i := range samples[:n] {
			samples[i][0] *= s.volume
			samples[i][1] *= s.volume
		}
		return n, ok
	})
}

func (s *Speaker) Play(ev PlaybackEvent) {
	if !ev.Audible {
		return
	}
	s.add(s.beatVoice(ev))
}

func (s *Speaker) beatVoice(ev PlaybackEvent) beep.Streamer {
	if ev.Harmonic() {
		// chords never ring past the next beat
		length := s.harmonic.Duration
		if s.harmonic.Sustained() || (ev.Tempo.Interval > 0 && ev.Tempo.Interval < length) {
			length = ev.Tempo.Interval
		}
		return newVoice(s.harmonic, length, ev.Pitches, int(s.sampleRate), s.rng)
	}
	if s.clickSample != nil {
		return s.clickSample.Streamer(0, s.clickSample.Len())
	}
	return newVoice(s.click, s.click.Duration, nil, int(s.sampleRate), s.rng)
}

func (s *Speaker) Sustain(pitches []float64) {
	s.add(newVoice(s.drone, s.drone.Duration, pitches, int(s.sampleRate), s.rng))
}

func (s *Speaker) add(v beep.Streamer) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.mixer.Add(v)
}

// Voices returns the number of voices currently sounding.
func (s *Speaker) Voices() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.mixer.Len()
}

// Close silences every voice and releases the audio device.
func (s *Speaker) Close() error {
	s.lock.Lock()
	s.mixer.Clear()
	s.lock.Unlock()

	if s.release != nil {
		s.release()
	}
	return nil
}
