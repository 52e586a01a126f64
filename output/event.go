// Package output delivers playback events to the things that make them audible or visible.
package output

import (
	"time"

	"github.com/robmorgan/metronome/rhythm"
)

// PlaybackEvent is the instruction emitted once per beat.
type PlaybackEvent struct {
	Beat    uint64
	Audible bool

	// Pitches holds the chord frequencies in Hz for harmonic beats and is nil for clicks.
	Pitches []float64
	// Chord is a printable name for Pitches, empty for clicks.
	Chord string

	Timestamp time.Time

	// Tempo at the time the beat fired
	Tempo rhythm.Snapshot
}

// Harmonic reports whether the beat carries pitch content.
func (e PlaybackEvent) Harmonic() bool {
	return len(e.Pitches) > 0
}
