package program

// Options are the raw option values handed over by the command line layer. Empty strings and
// nil pointers mean the option was not given.
type Options struct {
	BPM         int
	Click       string
	File        string
	DropBeats   string
	DropRate    *int
	Ramp        *int
	Rate        *int
	Drone       string
	Tones       string
	Progression string
	BeatsPer    string
}

const (
	ClickModeClick    = "click"
	ClickModeHarmonic = "harmonic"

	// DefaultRampRate is used when --ramp is given without --rate.
	DefaultRampRate = 1
)

// IntOption returns a pointer to v, for filling in optional values.
func IntOption(v int) *int {
	return &v
}

func (o Options) given() map[string]bool {
	return map[string]bool{
		"file":        o.File != "",
		"drop-beats":  o.DropBeats != "",
		"drop-rate":   o.DropRate != nil,
		"ramp":        o.Ramp != nil,
		"rate":        o.Rate != nil,
		"drone":       o.Drone != "",
		"tones":       o.Tones != "",
		"progression": o.Progression != "",
		"beats-per":   o.BeatsPer != "",
	}
}
