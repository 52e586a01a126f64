package notation

import (
	"strings"

	"github.com/robmorgan/metronome/utils"
)

const (
	MinPitchesPerChord = 1
	MaxPitchesPerChord = 4
	MaxChords          = 10
	MaxKeyLength       = 10
)

// Chord is an ordered set of pitches played together. Key is empty for a bare tone list.
type Chord struct {
	Key     string
	Pitches []Pitch
}

// Frequencies returns the chord's pitches in Hertz, in order.
func (c Chord) Frequencies() []float64 {
	out := make([]float64, len(c.Pitches))
	for i, p := range c.Pitches {
		out[i] = p.Frequency()
	}
	return out
}

// Names returns the pitch names, e.g. ["C4", "E4", "G4"].
func (c Chord) Names() []string {
	out := make([]string, len(c.Pitches))
	for i, p := range c.Pitches {
		out[i] = p.String()
	}
	return out
}

// String renders a keyed chord as "key(C4 E4 G4)" and a bare chord as "C4,E4,G4".
func (c Chord) String() string {
	if c.Key == "" {
		return strings.Join(c.Names(), ",")
	}
	return c.Key + "(" + strings.Join(c.Names(), " ") + ")"
}

// ParseToneList parses a bare comma separated list of 1-4 pitches, e.g. "C3, G3".
func ParseToneList(option, input string, minOctave, maxOctave int) (Chord, error) {
	tokens := utils.SplitList(input)
	if !utils.InRange(len(tokens), MinPitchesPerChord, MaxPitchesPerChord) {
		return Chord{}, &RangeError{Option: option, Value: len(tokens), Min: MinPitchesPerChord, Max: MaxPitchesPerChord, Subject: "tone count"}
	}
	chord := Chord{Pitches: make([]Pitch, 0, len(tokens))}
	for _, tok := range tokens {
		p, err := ParsePitchInRange(option, tok, minOctave, maxOctave)
		if err != nil {
			return Chord{}, err
		}
		chord.Pitches = append(chord.Pitches, p)
	}
	return chord, nil
}

func isKeyChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '#'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
