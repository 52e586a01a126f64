// Package engine runs the beat scheduler: the loop that decides when each beat fires, whether it
// is heard and what it plays.
package engine

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/robmorgan/metronome/control"
	"github.com/robmorgan/metronome/logger"
	"github.com/robmorgan/metronome/output"
	"github.com/robmorgan/metronome/program"
	"github.com/robmorgan/metronome/rhythm"
	"github.com/robmorgan/metronome/sequencer"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Phase is the lifecycle state of a Scheduler.
type Phase int32

const (
	Idle Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// ErrAlreadyStarted is returned when Run is called more than once.
var ErrAlreadyStarted = errors.New("scheduler already started")

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, e.g. with a fake clock in tests.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithLogger sets the logger used for lifecycle and per-beat logs.
func WithLogger(entry *logrus.Entry) Option {
	return func(s *Scheduler) {
		s.logger = entry
	}
}

// Scheduler fires one PlaybackEvent per beat until the shared state is stopped. It owns the
// runtime tempo and the progression cursor; the only state it shares is control.State.
type Scheduler struct {
	program *program.Program
	state   *control.State
	sink    output.Sink
	clock   clock.Clock
	logger  *logrus.Entry

	tempo *rhythm.Tempo
	seq   *sequencer.Sequencer
	beat  uint64

	phase atomic.Int32
}

// NewScheduler prepares a scheduler for a validated program.
func NewScheduler(p *program.Program, state *control.State, sink output.Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		program: p,
		state:   state,
		sink:    sink,
		clock:   clock.RealClock{},
		tempo:   p.NewTempo(),
		seq:     p.NewSequencer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.GetProjectLogger()
	}
	return s
}

// Phase returns the current lifecycle phase.
func (s *Scheduler) Phase() Phase {
	return Phase(s.phase.Load())
}

// Run plays beats until the shared state is stopped. The first beat fires immediately. Each
// following beat fires one interval after the previous one's scheduled time, using the tempo in
// effect when the previous beat fired, so intervals accumulate without drift.
//
// If the host stalls for more than a whole interval the missed beat fires at once and the
// schedule restarts from that moment instead of bursting through the backlog.
func (s *Scheduler) Run() error {
	if !s.phase.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrAlreadyStarted
	}
	defer s.phase.Store(int32(Stopped))

	if s.state.Stopped() {
		return nil
	}
	s.logger.WithField("program", s.program.String()).Info("starting playback")

	if s.program.Mode == program.ModeDrone {
		s.sink.Sustain(s.program.Drone.Frequencies())
	}

	ref := s.clock.Now()
	var elapsed time.Duration
	for {
		if s.state.Stopped() {
			break
		}

		fire := ref.Add(elapsed)
		now := s.clock.Now()
		if wait := fire.Sub(now); wait > 0 {
			if !s.sleep(wait) {
				break
			}
		} else if late := -wait; late > s.tempo.GetBeatInterval() {
			s.logger.WithFields(logrus.Fields{"beat": s.beat, "late": late}).Warn("scheduler fell behind, resuming from now")
			ref, elapsed, fire = now, 0, now
		}

		if s.state.Stopped() {
			break
		}

		s.syncTempo()
		interval := s.tempo.GetBeatInterval()
		s.sink.Play(s.event(fire))

		if s.tempo.Step(interval) {
			s.logger.WithFields(logrus.Fields{"beat": s.beat, "bpm": s.tempo.BPM(), "direction": s.tempo.Direction()}).Debug("ramp reversed")
		}
		if s.tempo.Ramping() {
			s.state.Publish(s.tempo.BPM())
		}

		elapsed += interval
		s.beat++
	}

	s.logger.WithField("beats", s.beat).Info("stopping playback")
	return nil
}

// sleep blocks until d has passed or playback is stopped. It reports false on stop.
func (s *Scheduler) sleep(d time.Duration) bool {
	t := s.clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C():
		return true
	case <-s.state.Done():
		return false
	}
}

// syncTempo picks up manual adjustments. A ramping tempo is driven by the scheduler alone.
func (s *Scheduler) syncTempo() {
	if s.tempo.Ramping() {
		return
	}
	if bpm := s.state.BPM(); bpm != s.tempo.BPM() {
		s.tempo.SetBPM(bpm)
		s.logger.WithFields(logrus.Fields{"beat": s.beat, "bpm": s.tempo.BPM()}).Debug("tempo changed")
	}
}

// event builds the instruction for the current beat. Muted beats still advance the progression
// so chords stay aligned to the absolute beat count.
func (s *Scheduler) event(fire time.Time) output.PlaybackEvent {
	ev := output.PlaybackEvent{
		Beat:      s.beat,
		Audible:   s.program.Drop.Audible(s.beat),
		Timestamp: fire,
		Tempo:     s.tempo.Snapshot(),
	}
	if s.seq != nil {
		chord := s.seq.Next()
		ev.Pitches = chord.Frequencies()
		ev.Chord = chord.String()
	}
	return ev
}
