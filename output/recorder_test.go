package output

import "sync"

// recorder is a Sink that keeps everything it is given.
type recorder struct {
	mu       sync.Mutex
	events   []PlaybackEvent
	sustains [][]float64
	closed   bool
}

func (r *recorder) Play(ev PlaybackEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Sustain(pitches []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sustains = append(r.sustains, pitches)
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recorder) Events() []PlaybackEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PlaybackEvent(nil), r.events...)
}
