package program

import (
	"errors"
	"testing"

	"github.com/robmorgan/metronome/drop"
	"github.com/robmorgan/metronome/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildClickProgram(t *testing.T) {
	t.Parallel()

	p, err := Build(Options{BPM: 120})
	require.NoError(t, err)
	assert.Equal(t, ModeClick, p.Mode)
	assert.Equal(t, drop.None{}, p.Drop)
	assert.False(t, p.Ramping())
	assert.Nil(t, p.NewSequencer())
	assert.Equal(t, 120, p.NewTempo().BPM())
}

func TestBuildDropBeats(t *testing.T) {
	t.Parallel()

	p, err := Build(Options{BPM: 100, DropBeats: "4, 2"})
	require.NoError(t, err)
	assert.Equal(t, drop.FixedCycle{On: 4, Off: 2}, p.Drop)

	p, err = Build(Options{BPM: 100, DropBeats: "3"})
	require.NoError(t, err)
	assert.Equal(t, drop.FixedCycle{On: 3, Off: 3}, p.Drop)
}

func TestBuildDropRate(t *testing.T) {
	t.Parallel()

	p, err := Build(Options{BPM: 100, DropRate: IntOption(25)})
	require.NoError(t, err)
	rate, ok := p.Drop.(drop.Probabilistic)
	require.True(t, ok)
	assert.Equal(t, 25, rate.Rate)
}

func TestBuildRamp(t *testing.T) {
	t.Parallel()

	p, err := Build(Options{BPM: 60, Ramp: IntOption(200), Rate: IntOption(5)})
	require.NoError(t, err)
	require.True(t, p.Ramping())
	assert.Equal(t, Ramp{Target: 200, Rate: 5}, *p.Ramp)
	assert.True(t, p.NewTempo().Ramping())

	p, err = Build(Options{BPM: 60, Ramp: IntOption(90)})
	require.NoError(t, err)
	assert.Equal(t, DefaultRampRate, p.Ramp.Rate)
}

func TestBuildDrone(t *testing.T) {
	t.Parallel()

	p, err := Build(Options{BPM: 80, Drone: "D2, A2"})
	require.NoError(t, err)
	assert.Equal(t, ModeDrone, p.Mode)
	assert.Equal(t, []string{"D2", "A2"}, p.Drone.Names())
	assert.Nil(t, p.NewSequencer())
}

func TestBuildHarmonicSingleChord(t *testing.T) {
	t.Parallel()

	p, err := Build(Options{BPM: 80, Click: "harmonic", Tones: "C3,E3,G3"})
	require.NoError(t, err)
	assert.Equal(t, ModeHarmonic, p.Mode)
	require.NotNil(t, p.Chord)

	seq := p.NewSequencer()
	require.NotNil(t, seq)
	assert.Equal(t, "C3,E3,G3", seq.Next().String())
}

func TestBuildHarmonicProgression(t *testing.T) {
	t.Parallel()

	p, err := Build(Options{
		BPM:         90,
		Click:       "harmonic",
		Tones:       "a(C3 E3 G3),b(F3 A3 C4),a(A2 C3 E3)",
		Progression: "a,b",
		BeatsPer:    "4,2",
	})
	require.NoError(t, err)
	assert.Equal(t, notation.Progression{{Key: "a", Beats: 4}, {Key: "b", Beats: 2}}, p.Progression)

	seq := p.NewSequencer()
	first := seq.Next()
	assert.Equal(t, []string{"A2", "C3", "E3"}, first.Names())
	assert.Contains(t, p.String(), "progression=a,b")
}

func TestBuildRangeErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		opts   Options
		option string
	}{
		{"bpm too low", Options{BPM: 29}, "bpm"},
		{"bpm too high", Options{BPM: 301}, "bpm"},
		{"drop rate", Options{BPM: 100, DropRate: IntOption(100)}, "drop-rate"},
		{"drop rate zero", Options{BPM: 100, DropRate: IntOption(0)}, "drop-rate"},
		{"drop beats", Options{BPM: 100, DropBeats: "4,0"}, "drop-beats"},
		{"ramp", Options{BPM: 100, Ramp: IntOption(301)}, "ramp"},
		{"rate", Options{BPM: 100, Ramp: IntOption(200), Rate: IntOption(16)}, "rate"},
		{"drone octave", Options{BPM: 100, Drone: "C0"}, "drone"},
		{"tone count", Options{BPM: 100, Click: "harmonic", Tones: "C3,D3,E3,F3,G3"}, "tones"},
		{"beats per", Options{BPM: 100, Click: "harmonic", Tones: "a(C3)", Progression: "a", BeatsPer: "13"}, "beats-per"},
	}

	for _, tc := range testCases {
		_, err := Build(tc.opts)
		var rangeErr *notation.RangeError
		require.True(t, errors.As(err, &rangeErr), "%s: got %v", tc.name, err)
		assert.Equal(t, tc.option, rangeErr.Option, tc.name)
	}
}

func TestBuildGrammarErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		opts Options
	}{
		{"click mode", Options{BPM: 100, Click: "cowbell"}},
		{"drop beats", Options{BPM: 100, DropBeats: "4,x"}},
		{"drop beats count", Options{BPM: 100, DropBeats: "1,2,3"}},
		{"drone token", Options{BPM: 100, Drone: "C3,Z3"}},
		{"chord syntax", Options{BPM: 100, Click: "harmonic", Tones: "a(C3", Progression: "a", BeatsPer: "1"}},
		{"list length", Options{BPM: 100, Click: "harmonic", Tones: "a(C3),b(D3)", Progression: "a,b", BeatsPer: "1,2,3"}},
	}

	for _, tc := range testCases {
		_, err := Build(tc.opts)
		var grammarErr *notation.GrammarError
		require.True(t, errors.As(err, &grammarErr), "%s: got %v", tc.name, err)
	}
}

func TestBuildCombinationErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		opts Options
	}{
		{"drop rate with ramp", Options{BPM: 120, DropRate: IntOption(25), Ramp: IntOption(150)}},
		{"drop beats with ramp", Options{BPM: 120, DropBeats: "4,2", Ramp: IntOption(150)}},
		{"drop beats with drop rate", Options{BPM: 120, DropBeats: "4,2", DropRate: IntOption(10)}},
		{"rate without ramp", Options{BPM: 120, Rate: IntOption(5)}},
		{"ramp equal to bpm", Options{BPM: 120, Ramp: IntOption(120)}},
		{"drone with tones", Options{BPM: 120, Click: "harmonic", Drone: "C3", Tones: "C3"}},
		{"tones in click mode", Options{BPM: 120, Tones: "C3"}},
		{"progression in click mode", Options{BPM: 120, Tones: "a(C3)", Progression: "a", BeatsPer: "1"}},
		{"beats per in click mode", Options{BPM: 120, BeatsPer: "1"}},
		{"harmonic without tones", Options{BPM: 120, Click: "harmonic"}},
		{"progression without beats per", Options{BPM: 120, Click: "harmonic", Tones: "a(C3)", Progression: "a"}},
		{"progression without tones", Options{BPM: 120, Click: "harmonic", Progression: "a", BeatsPer: "1"}},
		{"beats per without progression", Options{BPM: 120, Click: "harmonic", Tones: "C3", BeatsPer: "1"}},
		{"keyed tones without progression", Options{BPM: 120, Click: "harmonic", Tones: "a(C3)"}},
		{"bare tones with progression", Options{BPM: 120, Click: "harmonic", Tones: "C3", Progression: "a", BeatsPer: "1"}},
		{"unused chord", Options{BPM: 120, Click: "harmonic", Tones: "a(C3),b(D3)", Progression: "a", BeatsPer: "1"}},
		{"undefined chord", Options{BPM: 120, Click: "harmonic", Tones: "a(C3)", Progression: "a,b", BeatsPer: "1"}},
		{"click file in harmonic mode", Options{BPM: 120, Click: "harmonic", Tones: "C3", File: "click.wav"}},
	}

	for _, tc := range testCases {
		p, err := Build(tc.opts)
		var comboErr *notation.CombinationError
		require.True(t, errors.As(err, &comboErr), "%s: got %v", tc.name, err)
		assert.Nil(t, p, tc.name)
	}
}

func TestCombinationErrorNamesOptions(t *testing.T) {
	t.Parallel()

	_, err := Build(Options{BPM: 120, DropRate: IntOption(25), Ramp: IntOption(150)})
	require.Error(t, err)
	assert.Equal(t, "invalid combination of --drop-rate, --ramp: beat dropping cannot be combined with ramping", err.Error())
}

func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	opts := Options{BPM: 90, Click: "harmonic", Tones: "a(C3 E3),b(D3)", Progression: "a,b,a", BeatsPer: "2"}
	first, err := Build(opts)
	require.NoError(t, err)
	second, err := Build(opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	bad := Options{BPM: 90, Click: "harmonic", Tones: "a(C3 E3),b(D3)", Progression: "a", BeatsPer: "2"}
	_, err1 := Build(bad)
	_, err2 := Build(bad)
	assert.Equal(t, err1, err2)
}
