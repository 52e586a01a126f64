package notation

import (
	"strconv"
	"strings"

	"github.com/robmorgan/metronome/utils"
	"golang.org/x/exp/slices"
)

const (
	MinBeatsPer = 1
	MaxBeatsPer = 12
)

// Slot is one step of a progression: a chord key held for a number of beats.
type Slot struct {
	Key   string
	Beats int
}

// Progression is an ordered, cyclic list of slots.
type Progression []Slot

// Period is the number of beats before the progression repeats.
func (p Progression) Period() int {
	total := 0
	for _, s := range p {
		total += s.Beats
	}
	return total
}

// KeysString renders the keys in --progression syntax.
func (p Progression) KeysString() string {
	keys := make([]string, len(p))
	for i, s := range p {
		keys[i] = s.Key
	}
	return strings.Join(keys, ",")
}

// BeatsString renders the beat counts in --beats-per syntax.
func (p Progression) BeatsString() string {
	beats := make([]string, len(p))
	for i, s := range p {
		beats[i] = strconv.Itoa(s.Beats)
	}
	return strings.Join(beats, ",")
}

// ParseProgression parses the --progression keys and the --beats-per counts and checks them
// against table. beatsPer may be a single value applied to every slot.
func ParseProgression(keysInput, beatsInput string, table *ChordTable) (Progression, error) {
	keys := utils.SplitList(keysInput)
	for i, k := range keys {
		if k == "" {
			return nil, grammarErr("progression", keysInput, "empty chord key at position %d", i+1)
		}
		if len(k) > MaxKeyLength {
			return nil, grammarErr("progression", keysInput, "chord key %q is longer than %d characters", k, MaxKeyLength)
		}
		for j := 0; j < len(k); j++ {
			if !isKeyChar(k[j]) {
				return nil, grammarErr("progression", keysInput, "invalid character %q in chord key %q", k[j], k)
			}
		}
	}

	beats, err := utils.ParseIntList(beatsInput)
	if err != nil {
		return nil, &GrammarError{Option: "beats-per", Input: beatsInput, Reason: err.Error()}
	}
	for _, b := range beats {
		if !utils.InRange(b, MinBeatsPer, MaxBeatsPer) {
			return nil, &RangeError{Option: "beats-per", Value: b, Min: MinBeatsPer, Max: MaxBeatsPer}
		}
	}
	switch {
	case len(beats) == 1:
		for len(beats) < len(keys) {
			beats = append(beats, beats[0])
		}
	case len(beats) != len(keys):
		return nil, grammarErr("beats-per", beatsInput, "has %d values but --progression has %d chords", len(beats), len(keys))
	}

	for _, k := range keys {
		if _, found := table.Lookup(k); !found {
			return nil, &CombinationError{
				Options: []string{"progression", "tones"},
				Rule:    "chord " + strconv.Quote(k) + " is used in the progression but not defined in tones",
			}
		}
	}
	for _, k := range table.Keys() {
		if !slices.Contains(keys, k) {
			return nil, &CombinationError{
				Options: []string{"tones", "progression"},
				Rule:    "chord " + strconv.Quote(k) + " is defined in tones but never used in the progression",
			}
		}
	}

	prog := make(Progression, len(keys))
	for i, k := range keys {
		prog[i] = Slot{Key: k, Beats: beats[i]}
	}
	return prog, nil
}
