package notation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePitch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		token    string
		expected Pitch
	}{
		{"C4", Pitch{Letter: 'C', Octave: 4}},
		{"F#3", Pitch{Letter: 'F', Accidental: Sharp, Octave: 3}},
		{"Bb2", Pitch{Letter: 'B', Accidental: Flat, Octave: 2}},
		{" A4 ", Pitch{Letter: 'A', Octave: 4}},
		{"E-1", Pitch{Letter: 'E', Octave: -1}},
	}

	for _, tc := range testCases {
		p, err := ParsePitch(tc.token)
		require.NoError(t, err, tc.token)
		assert.Equal(t, tc.expected, p, tc.token)
	}
}

func TestParsePitchRejectsMalformedTokens(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "H4", "c4", "C", "C#", "Cx4", "C4#", "C123", "#4", "C+3", "C+", "C--1"} {
		_, err := ParsePitch(token)
		assert.Error(t, err, token)
	}
}

func TestParsePitchInRange(t *testing.T) {
	t.Parallel()

	_, err := ParsePitchInRange("drone", "C7", MinOctave, MaxOctave)
	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 7, rangeErr.Value)
	assert.Equal(t, "drone", rangeErr.Option)

	_, err = ParsePitchInRange("drone", "Q4", MinOctave, MaxOctave)
	var grammarErr *GrammarError
	require.True(t, errors.As(err, &grammarErr))
	assert.Equal(t, "Q4", grammarErr.Input)
}

func TestPitchFrequency(t *testing.T) {
	t.Parallel()

	a4, err := ParsePitch("A4")
	require.NoError(t, err)
	assert.Equal(t, 69, a4.Key())
	assert.Equal(t, 440.0, a4.Frequency())

	c4, _ := ParsePitch("C4")
	assert.Equal(t, 60, c4.Key())
	assert.InDelta(t, 261.6256, c4.Frequency(), 0.001)

	// enharmonic spellings resolve to the same frequency
	cs, _ := ParsePitch("C#4")
	db, _ := ParsePitch("Db4")
	assert.Equal(t, cs.Frequency(), db.Frequency())

	a3, _ := ParsePitch("A3")
	assert.InDelta(t, 220.0, a3.Frequency(), 1e-9)
}

func TestFrequencyKey(t *testing.T) {
	t.Parallel()

	for key := 24; key <= 96; key++ {
		assert.Equal(t, key, FrequencyKey(KeyFrequency(key)))
	}
	assert.Equal(t, 0, FrequencyKey(0))
}

func TestPitchString(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"C4", "F#3", "Bb2", "G-1"} {
		p, err := ParsePitch(token)
		require.NoError(t, err)
		assert.Equal(t, token, p.String())
	}
}
