// Package control holds the values shared between the beat scheduler and input listeners.
package control

import (
	"sync"
	"sync/atomic"

	"github.com/robmorgan/metronome/utils"
)

// Command is a discrete request from an input listener.
type Command int

const (
	Increase Command = iota
	Decrease
	Stop
)

func (c Command) String() string {
	switch c {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "stop"
	}
}

// State is the concurrency boundary between input listeners and the scheduler. Every field is a
// single atomic word; nothing here needs to be updated together with anything else.
//
// While the tempo is fixed only input listeners write the BPM and the scheduler reads it at the
// start of each beat. While ramping, adjustments are rejected and the scheduler publishes the
// ramped BPM so listeners can display it.
type State struct {
	bpm     atomic.Int32
	ramping bool
	minBPM  int32
	maxBPM  int32

	stopped  atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
}

// NewState creates the shared state for a playback session.
func NewState(bpm, minBPM, maxBPM int, ramping bool) *State {
	s := &State{
		ramping: ramping,
		minBPM:  int32(minBPM),
		maxBPM:  int32(maxBPM),
		done:    make(chan struct{}),
	}
	s.bpm.Store(int32(bpm))
	return s
}

// BPM returns the current tempo.
func (s *State) BPM() int {
	return int(s.bpm.Load())
}

// Ramping reports whether manual adjustments are disabled for this session.
func (s *State) Ramping() bool {
	return s.ramping
}

// Adjust applies a manual tempo change, clamped to the supported range. It reports false when
// the change was rejected because the tempo is ramping or playback has stopped.
func (s *State) Adjust(delta int) bool {
	if s.ramping || s.Stopped() {
		return false
	}
	for {
		old := s.bpm.Load()
		next := utils.Clamp(old+int32(delta), s.minBPM, s.maxBPM)
		if s.bpm.CompareAndSwap(old, next) {
			return true
		}
	}
}

// Publish records the BPM chosen by a ramping scheduler. It is ignored for fixed tempos, where
// input listeners own the value.
func (s *State) Publish(bpm int) {
	if s.ramping {
		s.bpm.Store(int32(bpm))
	}
}

// Stop requests the end of playback. It is safe to call more than once from any goroutine.
func (s *State) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		close(s.done)
	})
}

// Stopped reports whether Stop has been called.
func (s *State) Stopped() bool {
	return s.stopped.Load()
}

// Done is closed when Stop is called, so a waiting scheduler wakes immediately.
func (s *State) Done() <-chan struct{} {
	return s.done
}

// Dispatch applies a command. It reports whether the command changed anything.
func (s *State) Dispatch(cmd Command) bool {
	switch cmd {
	case Increase:
		return s.Adjust(1)
	case Decrease:
		return s.Adjust(-1)
	case Stop:
		already := s.Stopped()
		s.Stop()
		return !already
	}
	return false
}
