package program

import (
	"strconv"
	"strings"

	"github.com/robmorgan/metronome/drop"
	"github.com/robmorgan/metronome/notation"
	"github.com/robmorgan/metronome/rhythm"
	"github.com/robmorgan/metronome/utils"
)

// Build parses every option on its own, then checks how the options combine, then resolves the
// progression against the chord table. The first problem found is returned.
func Build(opts Options) (*Program, error) {
	p := &Program{BPM: opts.BPM, Drop: drop.None{}, ClickFile: opts.File}

	if err := checkRange("bpm", opts.BPM, rhythm.MinBPM, rhythm.MaxBPM); err != nil {
		return nil, err
	}

	harmonic, err := parseClickMode(opts.Click)
	if err != nil {
		return nil, err
	}

	var cycle *drop.FixedCycle
	if opts.DropBeats != "" {
		if cycle, err = parseDropBeats(opts.DropBeats); err != nil {
			return nil, err
		}
	}
	if opts.DropRate != nil {
		if err := checkRange("drop-rate", *opts.DropRate, drop.MinRate, drop.MaxRate); err != nil {
			return nil, err
		}
	}
	if opts.Ramp != nil {
		if err := checkRange("ramp", *opts.Ramp, rhythm.MinBPM, rhythm.MaxBPM); err != nil {
			return nil, err
		}
	}
	if opts.Rate != nil {
		if err := checkRange("rate", *opts.Rate, rhythm.MinRampRate, rhythm.MaxRampRate); err != nil {
			return nil, err
		}
	}

	if opts.Drone != "" {
		chord, err := notation.ParseToneList("drone", opts.Drone, notation.MinOctave, notation.MaxOctave)
		if err != nil {
			return nil, err
		}
		p.Drone = &chord
	}

	keyed := notation.IsKeyed(opts.Tones)
	if opts.Tones != "" {
		if keyed {
			if p.Chords, err = notation.ParseChordTable("tones", opts.Tones, notation.MinOctave, notation.MaxOctave); err != nil {
				return nil, err
			}
		} else {
			chord, err := notation.ParseToneList("tones", opts.Tones, notation.MinOctave, notation.MaxOctave)
			if err != nil {
				return nil, err
			}
			p.Chord = &chord
		}
	}

	if err := validateCombination(opts, harmonic, keyed); err != nil {
		return nil, err
	}

	switch {
	case harmonic:
		p.Mode = ModeHarmonic
	case p.Drone != nil:
		p.Mode = ModeDrone
	default:
		p.Mode = ModeClick
	}

	switch {
	case cycle != nil:
		p.Drop = *cycle
	case opts.DropRate != nil:
		p.Drop = drop.NewProbabilistic(*opts.DropRate)
	}

	if opts.Ramp != nil {
		rate := DefaultRampRate
		if opts.Rate != nil {
			rate = *opts.Rate
		}
		p.Ramp = &Ramp{Target: *opts.Ramp, Rate: rate}
	}

	if opts.Progression != "" {
		if p.Progression, err = notation.ParseProgression(opts.Progression, opts.BeatsPer, p.Chords); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// validateCombination enforces the exclusivity and co-requirement rules between options.
func validateCombination(opts Options, harmonic, keyed bool) error {
	given := opts.given()
	rules := []struct {
		violated bool
		options  []string
		rule     string
	}{
		{given["drop-beats"] && given["drop-rate"], []string{"drop-beats", "drop-rate"}, "beat dropping patterns are mutually exclusive"},
		{given["drop-beats"] && given["ramp"], []string{"drop-beats", "ramp"}, "beat dropping cannot be combined with ramping"},
		{given["drop-rate"] && given["ramp"], []string{"drop-rate", "ramp"}, "beat dropping cannot be combined with ramping"},
		{given["rate"] && !given["ramp"], []string{"rate", "ramp"}, "a ramp rate requires a ramp target"},
		{given["ramp"] && opts.Ramp != nil && *opts.Ramp == opts.BPM, []string{"ramp", "bpm"}, "the ramp target must differ from the starting bpm"},
		{given["drone"] && given["tones"], []string{"drone", "tones"}, "a drone cannot be combined with harmonic tones"},
		{given["tones"] && !harmonic, []string{"tones", "click"}, "tones require --click harmonic"},
		{given["progression"] && !harmonic, []string{"progression", "click"}, "a progression requires --click harmonic"},
		{given["beats-per"] && !harmonic, []string{"beats-per", "click"}, "beats-per requires --click harmonic"},
		{given["file"] && harmonic, []string{"file", "click"}, "a custom click sound cannot be used with --click harmonic"},
		{given["progression"] && !given["tones"], []string{"progression", "tones"}, "a progression requires chord definitions in tones"},
		{given["progression"] && !given["beats-per"], []string{"progression", "beats-per"}, "a progression requires beats-per"},
		{given["beats-per"] && !given["tones"], []string{"beats-per", "tones"}, "beats-per requires tones"},
		{given["beats-per"] && !given["progression"], []string{"beats-per", "progression"}, "beats-per requires a progression"},
		{given["progression"] && given["tones"] && !keyed, []string{"progression", "tones"}, "a progression requires keyed chords in tones, e.g. a(C3 E3 G3)"},
		{given["tones"] && keyed && !given["progression"], []string{"tones", "progression"}, "keyed chords require a progression"},
		{harmonic && !given["tones"], []string{"click", "tones"}, "--click harmonic requires tones"},
	}

	for _, r := range rules {
		if r.violated {
			return &notation.CombinationError{Options: r.options, Rule: r.rule}
		}
	}
	return nil
}

func parseClickMode(val string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", ClickModeClick:
		return false, nil
	case ClickModeHarmonic:
		return true, nil
	default:
		return false, &notation.GrammarError{Option: "click", Input: val, Reason: "expected click or harmonic"}
	}
}

// parseDropBeats accepts "on,off" or a single number used for both.
func parseDropBeats(val string) (*drop.FixedCycle, error) {
	nums, err := utils.ParseIntList(val)
	if err != nil {
		return nil, &notation.GrammarError{Option: "drop-beats", Input: val, Reason: err.Error()}
	}
	if len(nums) > 2 {
		return nil, &notation.GrammarError{Option: "drop-beats", Input: val, Reason: "expected on,off or a single number, got " + strconv.Itoa(len(nums)) + " values"}
	}
	if len(nums) == 1 {
		nums = append(nums, nums[0])
	}
	for _, n := range nums {
		if err := checkRange("drop-beats", n, drop.MinCycleBeats, drop.MaxCycleBeats); err != nil {
			return nil, err
		}
	}
	return &drop.FixedCycle{On: nums[0], Off: nums[1]}, nil
}

func checkRange(option string, val, low, high int) error {
	if !utils.InRange(val, low, high) {
		return &notation.RangeError{Option: option, Value: val, Min: low, Max: high}
	}
	return nil
}
