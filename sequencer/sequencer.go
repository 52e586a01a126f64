// Package sequencer walks a chord progression one beat at a time.
package sequencer

import (
	"github.com/robmorgan/metronome/notation"
)

// Step is a resolved progression slot.
type Step struct {
	Chord notation.Chord
	Beats int
}

// Sequencer cycles through steps forever. Every beat advances it, audible or not, so the
// harmony stays aligned to the absolute beat position.
type Sequencer struct {
	steps     []Step
	period    uint64
	slot      int
	remaining int
}

// New creates a sequencer positioned on the first beat of the first step. It returns nil when
// there are no steps.
func New(steps []Step) *Sequencer {
	if len(steps) == 0 {
		return nil
	}
	s := &Sequencer{steps: steps}
	for _, st := range steps {
		s.period += uint64(st.Beats)
	}
	s.remaining = steps[0].Beats
	return s
}

// FromProgression resolves a progression against its chord table.
func FromProgression(table *notation.ChordTable, prog notation.Progression) *Sequencer {
	steps := make([]Step, 0, len(prog))
	for _, slot := range prog {
		chord, _ := table.Lookup(slot.Key)
		steps = append(steps, Step{Chord: chord, Beats: slot.Beats})
	}
	return New(steps)
}

// Single holds one chord on every beat.
func Single(chord notation.Chord) *Sequencer {
	return New([]Step{{Chord: chord, Beats: 1}})
}

// Next returns the chord for the current beat and moves the cursor on by one beat.
func (s *Sequencer) Next() notation.Chord {
	chord := s.steps[s.slot].Chord
	s.remaining--
	if s.remaining == 0 {
		s.slot = (s.slot + 1) % len(s.steps)
		s.remaining = s.steps[s.slot].Beats
	}
	return chord
}

// Peek returns the chord for the current beat without moving the cursor.
func (s *Sequencer) Peek() notation.Chord {
	return s.steps[s.slot].Chord
}

// Remaining returns how many beats are left on the current chord, including the current one.
func (s *Sequencer) Remaining() int {
	return s.remaining
}

// At returns the chord for an absolute beat index. It agrees with the cursor driven by Next.
func (s *Sequencer) At(beat uint64) notation.Chord {
	pos := beat % s.period
	for _, st := range s.steps {
		if pos < uint64(st.Beats) {
			return st.Chord
		}
		pos -= uint64(st.Beats)
	}
	return s.steps[0].Chord
}

// Period returns the number of beats in one full cycle.
func (s *Sequencer) Period() uint64 {
	return s.period
}
