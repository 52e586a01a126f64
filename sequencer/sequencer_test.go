package sequencer

import (
	"testing"

	"github.com/robmorgan/metronome/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSequencer(t *testing.T, tones, keys, beats string) *Sequencer {
	t.Helper()
	table, err := notation.ParseChordTable("tones", tones, notation.MinOctave, notation.MaxOctave)
	require.NoError(t, err)
	prog, err := notation.ParseProgression(keys, beats, table)
	require.NoError(t, err)
	return FromProgression(table, prog)
}

func TestProgressionCycling(t *testing.T) {
	t.Parallel()

	s := newSequencer(t, "A(A3 C#4 E4),B(B3 D#4 F#4)", "A,B", "4,2")
	require.Equal(t, uint64(6), s.Period())

	expected := []string{"A", "A", "A", "A", "B", "B"}
	for beat := 0; beat < 60; beat++ {
		require.Equal(t, expected[beat%6], s.Next().Key, "beat %d", beat)
	}
}

func TestCursorAgreesWithAbsolutePosition(t *testing.T) {
	t.Parallel()

	s := newSequencer(t, "a(C3),b(D3),c(E3)", "a,b,a,c", "3,1,2,5")
	for beat := uint64(0); beat < 500; beat++ {
		expected := s.At(beat)
		require.Equal(t, expected.Key, s.Peek().Key)
		require.Equal(t, expected.Key, s.Next().Key, "beat %d", beat)
	}
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	s := newSequencer(t, "a(C3),b(D3)", "a,b", "3,1")
	assert.Equal(t, 3, s.Remaining())
	s.Next()
	assert.Equal(t, 2, s.Remaining())
	s.Next()
	s.Next()
	assert.Equal(t, 1, s.Remaining())
	assert.Equal(t, "b", s.Peek().Key)
	s.Next()
	assert.Equal(t, "a", s.Peek().Key)
	assert.Equal(t, 3, s.Remaining())
}

func TestSingleChord(t *testing.T) {
	t.Parallel()

	chord, err := notation.ParseToneList("tones", "C3,E3,G3", notation.MinOctave, notation.MaxOctave)
	require.NoError(t, err)

	s := Single(chord)
	for i := 0; i < 10; i++ {
		assert.Equal(t, []string{"C3", "E3", "G3"}, s.Next().Names())
	}
}

func TestNewWithoutSteps(t *testing.T) {
	t.Parallel()

	assert.Nil(t, New(nil))
}
