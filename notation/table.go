package notation

import (
	"strings"
)

// ChordTable maps chord keys to chords. Keys keep the order in which they were first defined.
type ChordTable struct {
	order  []string
	chords map[string]Chord
}

// NewChordTable returns an empty table.
func NewChordTable() *ChordTable {
	return &ChordTable{chords: make(map[string]Chord)}
}

// Set defines or replaces a chord. A redefinition keeps the key's original position.
func (t *ChordTable) Set(c Chord) {
	if _, found := t.chords[c.Key]; !found {
		t.order = append(t.order, c.Key)
	}
	t.chords[c.Key] = c
}

// Lookup returns the chord defined for key.
func (t *ChordTable) Lookup(key string) (Chord, bool) {
	c, found := t.chords[key]
	return c, found
}

// Keys returns the chord keys in definition order.
func (t *ChordTable) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of distinct chords.
func (t *ChordTable) Len() int {
	return len(t.order)
}

// String renders the table in the same syntax ParseChordTable accepts.
func (t *ChordTable) String() string {
	defs := make([]string, 0, len(t.order))
	for _, k := range t.order {
		defs = append(defs, t.chords[k].String())
	}
	return strings.Join(defs, ",")
}

// IsKeyed reports whether input uses the keyed chord syntax "key(p p ...)".
func IsKeyed(input string) bool {
	return strings.ContainsAny(input, "()")
}

// ParseChordTable parses keyed chord definitions such as "a(C3 E3 G3), b(D3 F#3 A3)".
// Duplicate keys are allowed and the last definition wins, but every definition counts
// towards MaxChords.
func ParseChordTable(option, input string, minOctave, maxOctave int) (*ChordTable, error) {
	table := NewChordTable()
	defined := 0
	s := input
	i := 0
	skipSpace := func() {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
	}

	for {
		skipSpace()
		start := i
		for i < len(s) && isKeyChar(s[i]) {
			i++
		}
		key := s[start:i]
		if key == "" {
			if i < len(s) {
				return nil, grammarErr(option, input, "unexpected %q at position %d, expected a chord key", s[i], i)
			}
			return nil, grammarErr(option, input, "expected a chord definition at position %d", i)
		}
		if len(key) > MaxKeyLength {
			return nil, grammarErr(option, input, "chord key %q is longer than %d characters", key, MaxKeyLength)
		}
		skipSpace()
		if i >= len(s) || s[i] != '(' {
			return nil, grammarErr(option, input, "chord %q must be followed by '('", key)
		}
		i++
		end := strings.IndexByte(s[i:], ')')
		if end < 0 {
			return nil, grammarErr(option, input, "chord %q is missing ')'", key)
		}
		body := s[i : i+end]
		i += end + 1
		if strings.ContainsAny(body, "(,") {
			return nil, grammarErr(option, input, "chord %q pitches must be separated by spaces", key)
		}

		tokens := strings.Fields(body)
		if len(tokens) < MinPitchesPerChord || len(tokens) > MaxPitchesPerChord {
			return nil, &RangeError{Option: option, Value: len(tokens), Min: MinPitchesPerChord, Max: MaxPitchesPerChord, Subject: "pitch count of chord " + key}
		}
		chord := Chord{Key: key, Pitches: make([]Pitch, 0, len(tokens))}
		for _, tok := range tokens {
			p, err := ParsePitchInRange(option, tok, minOctave, maxOctave)
			if err != nil {
				return nil, err
			}
			chord.Pitches = append(chord.Pitches, p)
		}
		table.Set(chord)
		defined++

		skipSpace()
		if i >= len(s) {
			break
		}
		if s[i] != ',' {
			return nil, grammarErr(option, input, "unexpected %q after chord %q, expected ','", s[i], key)
		}
		i++
	}

	if defined > MaxChords {
		return nil, &RangeError{Option: option, Value: defined, Min: 1, Max: MaxChords, Subject: "chord count"}
	}
	return table, nil
}
