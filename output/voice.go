package output

import (
	"math"
	"math/rand"
	"time"

	"github.com/robmorgan/metronome/effect"
	"github.com/robmorgan/metronome/profile"
)

// Reference pitch for loudness correction (C4)
const referenceFrequency = 261.63

// voice is a beep.Streamer that renders one click, chord or drone.
type voice struct {
	env        *effect.Envelope
	waveform   string
	freqs      []float64
	gains      []float64
	gain       float64
	sampleRate float64
	pos        int
	// end is the sample count after which the voice is silent, 0 for a held voice
	end int

	rng             *rand.Rand
	prevIn, prevOut float64
}

func newVoice(p profile.Profile, length time.Duration, freqs []float64, sampleRate int, rng *rand.Rand) *voice {
	gains := make([]float64, len(freqs))
	mix := mixGain(len(freqs))
	for i, f := range freqs {
		gains[i] = mix * frequencyCorrection(f)
	}
	env := effect.NewEnvelope(effect.EasingFunc(p.Ease), p.Attack, p.Decay, length)
	return &voice{
		env:        env,
		end:        env.Samples(sampleRate),
		waveform:   p.Waveform,
		freqs:      freqs,
		gains:      gains,
		gain:       p.Gain,
		sampleRate: float64(sampleRate),
		rng:        rng,
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.end > 0 && v.pos >= v.end {
			return n, n > 0
		}
		t := time.Duration(float64(v.pos) / v.sampleRate * float64(time.Second))
		s := v.sample(float64(v.pos)/v.sampleRate) * v.env.Amplitude(t) * v.gain
		samples[i][0] = s
		samples[i][1] = s
		v.pos++
		n++
	}
	return n, true
}

func (v *voice) Err() error { return nil }

func (v *voice) sample(secs float64) float64 {
	switch v.waveform {
	case profile.WaveformNoise:
		// one-pole high-pass keeps the burst bright
		in := v.rng.Float64()*2 - 1
		out := 0.85 * (v.prevOut + in - v.prevIn)
		v.prevIn, v.prevOut = in, out
		return out
	case profile.WaveformSine:
		var s float64
		for i, f := range v.freqs {
			s += v.gains[i] * math.Sin(2*math.Pi*f*secs)
		}
		return s
	default:
		var s float64
		for i, f := range v.freqs {
			x := 2 * math.Pi * f * secs
			s += v.gains[i] * (math.Sin(x) + 0.5*math.Sin(2*x) + 0.25*math.Sin(3*x)) / 1.75
		}
		return s
	}
}

// mixGain scales each of n simultaneous pitches so chords stay at a similar loudness.
func mixGain(n int) float64 {
	if n <= 1 {
		return 1
	}
	return 1 / math.Pow(float64(n), 0.3)
}

// frequencyCorrection boosts low pitches, capped at 3x.
func frequencyCorrection(freq float64) float64 {
	if freq <= 0 {
		return 1
	}
	if freq < 200 {
		return math.Min(math.Pow(200/freq, 0.7), 3.0)
	}
	return math.Pow(referenceFrequency/freq, 0.6)
}
