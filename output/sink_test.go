package output

import (
	"errors"
	"testing"

	"github.com/robmorgan/metronome/rhythm"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCloser struct{ recorder }

func (f *failingCloser) Close() error { return errors.New("device gone") }

func TestMultiFansOut(t *testing.T) {
	t.Parallel()

	a, b := &recorder{}, &recorder{}
	m := Multi{a, b}
	m.Sustain([]float64{110})
	m.Play(PlaybackEvent{Beat: 0, Audible: true})
	m.Play(PlaybackEvent{Beat: 1})

	for _, r := range []*recorder{a, b} {
		require.Len(t, r.Events(), 2)
		assert.Equal(t, uint64(1), r.Events()[1].Beat)
		assert.Equal(t, [][]float64{{110}}, r.sustains)
	}

	require.NoError(t, m.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestMultiCloseReturnsFirstError(t *testing.T) {
	t.Parallel()

	ok := &recorder{}
	m := Multi{&failingCloser{}, ok}
	assert.EqualError(t, m.Close(), "device gone")
	assert.True(t, ok.closed)
}

func TestLatest(t *testing.T) {
	t.Parallel()

	l := &Latest{}
	_, found := l.Last()
	assert.False(t, found)

	l.Play(PlaybackEvent{Beat: 0, Audible: true})
	l.Play(PlaybackEvent{Beat: 1, Audible: false})
	l.Play(PlaybackEvent{Beat: 2, Audible: true, Chord: "a(C3)"})
	l.Sustain([]float64{65.4})

	last, found := l.Last()
	require.True(t, found)
	assert.Equal(t, uint64(2), last.Beat)
	assert.Equal(t, "a(C3)", last.Chord)

	played, muted := l.Counts()
	assert.Equal(t, uint64(3), played)
	assert.Equal(t, uint64(1), muted)
	assert.Equal(t, []float64{65.4}, l.Drone())
}

func TestLogSink(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	sink := NewLog(logrus.NewEntry(log))

	sink.Play(PlaybackEvent{
		Beat:    7,
		Audible: true,
		Pitches: []float64{261.6},
		Chord:   "C4",
		Tempo:   rhythm.Snapshot{BPM: 96},
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, uint64(7), entry.Data["beat"])
	assert.Equal(t, 96, entry.Data["bpm"])
	assert.Equal(t, "C4", entry.Data["chord"])

	sink.Play(PlaybackEvent{Beat: 8})
	_, hasChord := hook.LastEntry().Data["chord"]
	assert.False(t, hasChord)
}

func TestPlaybackEventHarmonic(t *testing.T) {
	t.Parallel()

	assert.False(t, PlaybackEvent{}.Harmonic())
	assert.True(t, PlaybackEvent{Pitches: []float64{440}}.Harmonic())
}
