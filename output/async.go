package output

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/robmorgan/metronome/logger"
)

// DefaultQueueSize is the number of calls an Async sink buffers before it starts dropping.
const DefaultQueueSize = 64

type call struct {
	event   *PlaybackEvent
	sustain []float64
}

// Async hands calls to a wrapped sink on a worker goroutine so callers never block on output.
// When the queue is full the call is dropped and counted.
type Async struct {
	sink    Sink
	queue   chan call
	dropped atomic.Uint64
}

// NewAsync wraps sink with a queue of the given size.
func NewAsync(sink Sink, size int) *Async {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Async{sink: sink, queue: make(chan call, size)}
}

func (a *Async) Play(ev PlaybackEvent) {
	a.enqueue(call{event: &ev})
}

func (a *Async) Sustain(pitches []float64) {
	a.enqueue(call{sustain: pitches})
}

func (a *Async) enqueue(c call) {
	select {
	case a.queue <- c:
	default:
		n := a.dropped.Add(1)
		logger.GetProjectLogger().WithField("dropped", n).Warn("output queue full, dropping event")
	}
}

// Dropped returns the number of calls discarded because the queue was full.
func (a *Async) Dropped() uint64 {
	return a.dropped.Load()
}

// Run delivers queued calls to the wrapped sink until ctx is cancelled. Anything still queued at
// that point is delivered before Run returns.
func (a *Async) Run(ctx context.Context, wg *sync.WaitGroup) error {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			a.drain()
			logger.GetProjectLogger().Debug("output worker shutdown")
			return ctx.Err()
		case c := <-a.queue:
			a.deliver(c)
		}
	}
}

func (a *Async) drain() {
	for {
		select {
		case c := <-a.queue:
			a.deliver(c)
		default:
			return
		}
	}
}

func (a *Async) deliver(c call) {
	if c.event != nil {
		a.sink.Play(*c.event)
		return
	}
	a.sink.Sustain(c.sustain)
}

// Close closes the wrapped sink. Call it after Run has returned.
func (a *Async) Close() error {
	return a.sink.Close()
}
