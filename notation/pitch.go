package notation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// ReferenceFrequency is the tuning reference, A4.
	ReferenceFrequency = 440.0
	referenceKey       = 69

	MinOctave = 1
	MaxOctave = 6
)

// Accidental raises or lowers a letter by one semitone.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

func (a Accidental) offset() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Pitch is a note name resolved against equal temperament.
type Pitch struct {
	Letter     byte
	Accidental Accidental
	Octave     int
}

// ParsePitch parses a token of the form <Letter><Accidental?><Octave>, e.g. "C4", "F#3", "Bb-1".
// The octave is not range checked here; see ParsePitchInRange.
func ParsePitch(token string) (Pitch, error) {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return Pitch{}, fmt.Errorf("empty pitch")
	}
	p := Pitch{Letter: tok[0]}
	if _, ok := letterOffsets[p.Letter]; !ok {
		return Pitch{}, fmt.Errorf("pitch %q must start with a letter A-G", tok)
	}
	rest := tok[1:]
	if len(rest) > 0 {
		switch rest[0] {
		case '#':
			p.Accidental = Sharp
			rest = rest[1:]
		case 'b':
			p.Accidental = Flat
			rest = rest[1:]
		}
	}
	if rest == "" {
		return Pitch{}, fmt.Errorf("pitch %q is missing an octave", tok)
	}
	digits := rest
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" || len(digits) > 2 || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return Pitch{}, fmt.Errorf("pitch %q has an invalid octave %q", tok, rest)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Pitch{}, fmt.Errorf("pitch %q has an invalid octave %q", tok, rest)
	}
	p.Octave = octave
	return p, nil
}

// ParsePitchInRange parses token for option and checks its octave against [minOctave, maxOctave].
func ParsePitchInRange(option, token string, minOctave, maxOctave int) (Pitch, error) {
	p, err := ParsePitch(token)
	if err != nil {
		return Pitch{}, &GrammarError{Option: option, Input: strings.TrimSpace(token), Reason: err.Error()}
	}
	if p.Octave < minOctave || p.Octave > maxOctave {
		return Pitch{}, &RangeError{Option: option, Value: p.Octave, Min: minOctave, Max: maxOctave, Subject: "octave of " + p.String()}
	}
	return p, nil
}

// Key returns the MIDI key number, C4 = 60.
func (p Pitch) Key() int {
	return 12*(p.Octave+1) + letterOffsets[p.Letter] + p.Accidental.offset()
}

// Frequency returns the pitch in Hertz relative to A4 = 440 Hz.
func (p Pitch) Frequency() float64 {
	return KeyFrequency(p.Key())
}

func (p Pitch) String() string {
	return fmt.Sprintf("%c%s%d", p.Letter, p.Accidental, p.Octave)
}

// KeyFrequency converts a MIDI key to Hertz.
func KeyFrequency(key int) float64 {
	return ReferenceFrequency * math.Pow(2, float64(key-referenceKey)/12)
}

// FrequencyKey returns the nearest MIDI key for a frequency in Hertz.
func FrequencyKey(freq float64) int {
	if freq <= 0 {
		return 0
	}
	return int(math.Round(referenceKey + 12*math.Log2(freq/ReferenceFrequency)))
}
