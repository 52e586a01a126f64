package output

import (
	"sync"

	"github.com/robmorgan/metronome/logger"
	"github.com/sirupsen/logrus"
)

// Sink consumes playback events. Play is called in strictly increasing timestamp order.
type Sink interface {
	Play(ev PlaybackEvent)

	// Sustain starts a continuous tone that lasts until the sink is closed.
	Sustain(pitches []float64)

	Close() error
}

// Multi fans every call out to each sink in order.
type Multi []Sink

func (m Multi) Play(ev PlaybackEvent) {
	for _, s := range m {
		s.Play(ev)
	}
}

func (m Multi) Sustain(pitches []float64) {
	for _, s := range m {
		s.Sustain(pitches)
	}
}

// Close closes every sink and returns the first error.
func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Log writes every event to the project logger at debug level.
type Log struct {
	logger *logrus.Entry
}

// NewLog returns a Log sink. A nil entry uses the project logger.
func NewLog(entry *logrus.Entry) *Log {
	if entry == nil {
		entry = logger.GetProjectLogger()
	}
	return &Log{logger: entry}
}

func (l *Log) Play(ev PlaybackEvent) {
	fields := logrus.Fields{
		"beat":    ev.Beat,
		"audible": ev.Audible,
		"bpm":     ev.Tempo.BPM,
	}
	if ev.Harmonic() {
		fields["chord"] = ev.Chord
	}
	l.logger.WithFields(fields).Debug("beat")
}

func (l *Log) Sustain(pitches []float64) {
	l.logger.WithField("pitches", pitches).Info("drone started")
}

func (l *Log) Close() error { return nil }

// Latest remembers the most recent event and how many have been played.
type Latest struct {
	mu      sync.RWMutex
	last    PlaybackEvent
	count   uint64
	muted   uint64
	drone   []float64
	started bool
}

func (l *Latest) Play(ev PlaybackEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.last = ev
	l.started = true
	l.count++
	if !ev.Audible {
		l.muted++
	}
}

func (l *Latest) Sustain(pitches []float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.drone = append([]float64(nil), pitches...)
}

func (l *Latest) Close() error { return nil }

// Last returns the most recent event, or false if none has been played.
func (l *Latest) Last() (PlaybackEvent, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.last, l.started
}

// Counts returns the number of events played and how many of them were muted.
func (l *Latest) Counts() (played, muted uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.count, l.muted
}

// Drone returns the sustained pitches, if any.
func (l *Latest) Drone() []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]float64(nil), l.drone...)
}
