package rhythm

import (
	"time"

	"github.com/robmorgan/metronome/utils"
)

const (
	MinBPM      = 30
	MaxBPM      = 300
	MinRampRate = 1
	MaxRampRate = 15
)

// Direction is the way a ramp is currently moving.
type Direction int

const (
	Increasing Direction = iota
	Decreasing
)

func (d Direction) String() string {
	if d == Decreasing {
		return "decreasing"
	}
	return "increasing"
}

func (d Direction) sign() int {
	if d == Decreasing {
		return -1
	}
	return 1
}

// Tempo holds the current BPM and, when ramping, oscillates it between the starting BPM and a
// target at a fixed rate. A Tempo is owned by a single goroutine.
type Tempo struct {
	bpm int

	// ramp state, unused when target is zero
	origin    int
	target    int
	rate      float64
	direction Direction
	pending   float64
}

// NewTempo creates a fixed tempo.
func NewTempo(bpm int) *Tempo {
	return &Tempo{bpm: utils.Clamp(bpm, MinBPM, MaxBPM)}
}

// NewRamp creates a tempo that ramps from bpm towards target at rate BPM per second, reversing
// at each bound forever.
func NewRamp(bpm, target, rate int) *Tempo {
	t := &Tempo{
		bpm:    bpm,
		origin: bpm,
		target: target,
		rate:   float64(rate),
	}
	if target < bpm {
		t.direction = Decreasing
	}
	return t
}

// BPM returns the current tempo.
func (t *Tempo) BPM() int {
	return t.bpm
}

// Ramping reports whether the tempo oscillates on its own.
func (t *Tempo) Ramping() bool {
	return t.target != 0
}

// Direction returns the current ramp direction.
func (t *Tempo) Direction() Direction {
	return t.direction
}

// GetBeatInterval returns how long a beat lasts at the current tempo.
func (t *Tempo) GetBeatInterval() time.Duration {
	return beatsToDuration(1, t.bpm)
}

// SetBPM replaces the tempo of a fixed tempo, clamped to [MinBPM, MaxBPM]. It is a no-op while
// ramping.
func (t *Tempo) SetBPM(bpm int) bool {
	if t.Ramping() {
		return false
	}
	t.bpm = utils.Clamp(bpm, MinBPM, MaxBPM)
	return true
}

// Adjust nudges a fixed tempo by delta BPM. Adjustments are rejected while ramping.
func (t *Tempo) Adjust(delta int) bool {
	return t.SetBPM(t.bpm + delta)
}

// Step advances the ramp by the time a beat took. Whole BPM steps are applied one at a time;
// on reaching the target the direction flips, the previous bound becomes the new target and
// the remaining change for this step is discarded. It reports whether a reversal happened.
func (t *Tempo) Step(elapsed time.Duration) bool {
	if !t.Ramping() {
		return false
	}
	t.pending += t.rate * elapsed.Seconds()
	for t.pending >= 1 {
		t.pending--
		t.bpm += t.direction.sign()
		if t.bpm == t.target {
			t.reverse()
			return true
		}
	}
	return false
}

func (t *Tempo) reverse() {
	t.origin, t.target = t.target, t.origin
	if t.direction == Increasing {
		t.direction = Decreasing
	} else {
		t.direction = Increasing
	}
	t.pending = 0
}

// Snapshot captures the tempo for display.
func (t *Tempo) Snapshot() Snapshot {
	s := Snapshot{
		BPM:      t.bpm,
		Interval: t.GetBeatInterval(),
	}
	if t.Ramping() {
		s.Ramping = true
		s.Direction = t.direction
		s.Lower, s.Upper = t.origin, t.target
		if s.Lower > s.Upper {
			s.Lower, s.Upper = s.Upper, s.Lower
		}
	}
	return s
}

// beatsToDuration calculates the duration of a number of beats at the given tempo.
func beatsToDuration(beats int, bpm int) time.Duration {
	return time.Duration(beats) * time.Minute / time.Duration(bpm)
}
