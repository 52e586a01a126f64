// Package drop decides which beats are muted.
package drop

import (
	"fmt"
	"math/rand"
)

const (
	MinCycleBeats = 1
	MaxCycleBeats = 16
	MinRate       = 1
	MaxRate       = 99
)

// Policy reports whether the beat at a given index is audible.
type Policy interface {
	Audible(beat uint64) bool
	String() string
}

// None never drops a beat.
type None struct{}

func (None) Audible(uint64) bool { return true }
func (None) String() string      { return "none" }

// FixedCycle plays On beats then mutes Off beats, repeating.
type FixedCycle struct {
	On  int
	Off int
}

func (f FixedCycle) Audible(beat uint64) bool {
	return beat%uint64(f.On+f.Off) < uint64(f.On)
}

func (f FixedCycle) String() string {
	return fmt.Sprintf("cycle(on=%d off=%d)", f.On, f.Off)
}

// Probabilistic drops each beat independently with probability Rate/100.
type Probabilistic struct {
	Rate int

	// intn defaults to the process-wide source from math/rand.
	intn func(n int) int
}

// NewProbabilistic returns a policy drawing from the process-wide random source.
func NewProbabilistic(rate int) Probabilistic {
	return Probabilistic{Rate: rate, intn: rand.Intn}
}

func (p Probabilistic) Audible(uint64) bool {
	intn := p.intn
	if intn == nil {
		intn = rand.Intn
	}
	return intn(100) >= p.Rate
}

func (p Probabilistic) String() string {
	return fmt.Sprintf("random(rate=%d%%)", p.Rate)
}
