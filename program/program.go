// Package program turns raw option values into a validated, immutable Program.
package program

import (
	"fmt"
	"strings"

	"github.com/robmorgan/metronome/drop"
	"github.com/robmorgan/metronome/notation"
	"github.com/robmorgan/metronome/rhythm"
	"github.com/robmorgan/metronome/sequencer"
)

// Mode selects what each beat sounds like.
type Mode int

const (
	// ModeClick plays a click on every audible beat.
	ModeClick Mode = iota
	// ModeHarmonic plays a chord on every audible beat.
	ModeHarmonic
	// ModeDrone plays clicks over a sustained chord.
	ModeDrone
)

func (m Mode) String() string {
	switch m {
	case ModeHarmonic:
		return "harmonic"
	case ModeDrone:
		return "drone"
	default:
		return "click"
	}
}

// Ramp describes a tempo oscillation between the starting BPM and Target.
type Ramp struct {
	Target int
	Rate   int
}

// Program is the validated bundle a playback session runs from. It is never mutated after Build.
type Program struct {
	Mode Mode
	BPM  int
	Ramp *Ramp
	Drop drop.Policy

	// Drone is set in ModeDrone.
	Drone *notation.Chord

	// In ModeHarmonic either Chord is set (a bare tone list) or Chords and Progression are.
	Chord       *notation.Chord
	Chords      *notation.ChordTable
	Progression notation.Progression

	// ClickFile is an optional WAV file used in place of the synthesized click.
	ClickFile string
}

// Ramping reports whether the tempo oscillates.
func (p *Program) Ramping() bool {
	return p.Ramp != nil
}

// NewTempo returns a fresh runtime copy of the initial tempo state.
func (p *Program) NewTempo() *rhythm.Tempo {
	if p.Ramp != nil {
		return rhythm.NewRamp(p.BPM, p.Ramp.Target, p.Ramp.Rate)
	}
	return rhythm.NewTempo(p.BPM)
}

// NewSequencer returns a sequencer for harmonic mode and nil otherwise.
func (p *Program) NewSequencer() *sequencer.Sequencer {
	if p.Mode != ModeHarmonic {
		return nil
	}
	if p.Chord != nil {
		return sequencer.Single(*p.Chord)
	}
	return sequencer.FromProgression(p.Chords, p.Progression)
}

// String summarises the program for logs.
func (p *Program) String() string {
	parts := []string{fmt.Sprintf("mode=%s", p.Mode), fmt.Sprintf("bpm=%d", p.BPM)}
	if p.Ramp != nil {
		parts = append(parts, fmt.Sprintf("ramp=%d rate=%d", p.Ramp.Target, p.Ramp.Rate))
	}
	parts = append(parts, "drop="+p.Drop.String())
	if p.Drone != nil {
		parts = append(parts, "drone="+p.Drone.String())
	}
	if p.Chord != nil {
		parts = append(parts, "tones="+p.Chord.String())
	}
	if p.Chords != nil {
		parts = append(parts, "tones="+p.Chords.String(), "progression="+p.Progression.KeysString(), "beats-per="+p.Progression.BeatsString())
	}
	return strings.Join(parts, " ")
}
