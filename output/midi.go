package output

import (
	"fmt"
	"strconv"

	"github.com/robmorgan/metronome/logger"
	"github.com/robmorgan/metronome/notation"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const (
	midiChordChannel = 0
	midiDroneChannel = 1
	// General MIDI percussion lives on channel 10
	midiClickChannel = 9

	midiClickKey = 42 // closed hi-hat
	midiVelocity = 100
)

type midiNote struct {
	channel uint8
	key     uint8
}

// MIDI sends every beat to a MIDI output port. Notes sound until the next beat starts.
type MIDI struct {
	send     func(msg midi.Message) error
	sounding []midiNote
	drone    []midiNote
}

// NewMIDI opens the output port named, or numbered, by port.
func NewMIDI(port string) (*MIDI, error) {
	out, err := findOutPort(port)
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI output port %q: %w", port, err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("opening MIDI port %q: %w", port, err)
	}
	return newMIDI(send), nil
}

func findOutPort(port string) (drivers.Out, error) {
	if n, err := strconv.Atoi(port); err == nil {
		return midi.OutPort(n)
	}
	return midi.FindOutPort(port)
}

func newMIDI(send func(msg midi.Message) error) *MIDI {
	return &MIDI{send: send}
}

func (m *MIDI) Play(ev PlaybackEvent) {
	m.release()
	if !ev.Audible {
		return
	}

	if !ev.Harmonic() {
		m.noteOn(midiNote{channel: midiClickChannel, key: midiClickKey}, &m.sounding)
		return
	}
	for _, f := range ev.Pitches {
		m.noteOn(midiNote{channel: midiChordChannel, key: midiKey(f)}, &m.sounding)
	}
}

func (m *MIDI) Sustain(pitches []float64) {
	for _, f := range pitches {
		m.noteOn(midiNote{channel: midiDroneChannel, key: midiKey(f)}, &m.drone)
	}
}

// Close ends every note still sounding, including the drone.
func (m *MIDI) Close() error {
	m.release()
	for _, n := range m.drone {
		m.write(midi.NoteOff(n.channel, n.key))
	}
	m.drone = nil
	return nil
}

func (m *MIDI) noteOn(n midiNote, into *[]midiNote) {
	if m.write(midi.NoteOn(n.channel, n.key, midiVelocity)) {
		*into = append(*into, n)
	}
}

func (m *MIDI) release() {
	for _, n := range m.sounding {
		m.write(midi.NoteOff(n.channel, n.key))
	}
	m.sounding = m.sounding[:0]
}

func (m *MIDI) write(msg midi.Message) bool {
	if err := m.send(msg); err != nil {
		logger.GetProjectLogger().WithError(err).Warn("failed to send MIDI message")
		return false
	}
	return true
}

func midiKey(freq float64) uint8 {
	key := notation.FrequencyKey(freq)
	switch {
	case key < 0:
		return 0
	case key > 127:
		return 127
	default:
		return uint8(key)
	}
}
