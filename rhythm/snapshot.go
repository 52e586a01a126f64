package rhythm

import (
	"fmt"
	"time"

	"github.com/robmorgan/metronome/engine/scale"
)

// Snapshot is a point-in-time view of a Tempo.
type Snapshot struct {
	BPM      int
	Interval time.Duration

	Ramping   bool
	Direction Direction
	// Lower and Upper are the ramp bounds, zero when the tempo is fixed.
	Lower int
	Upper int
}

// Position returns where the BPM sits between the ramp bounds, in [0,1]. Fixed tempos map
// onto the whole supported BPM range.
func (s Snapshot) Position() float64 {
	if !s.Ramping {
		return scale.ToUnitClamp(MinBPM, MaxBPM)(float64(s.BPM))
	}
	return scale.ToUnitClamp(float64(s.Lower), float64(s.Upper))(float64(s.BPM))
}

func (s Snapshot) String() string {
	if !s.Ramping {
		return fmt.Sprintf("%d bpm", s.BPM)
	}
	return fmt.Sprintf("%d bpm (%s, %d-%d)", s.BPM, s.Direction, s.Lower, s.Upper)
}
