package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/metronome/control"
	"github.com/robmorgan/metronome/output"
)

// Listener runs the terminal UI. It is both an input listener, writing key presses to the shared
// state, and an output.Sink that displays every beat.
type Listener struct {
	state   *control.State
	program *tea.Program
}

var _ output.Sink = (*Listener)(nil)

// NewListener creates the UI for a playback session.
func NewListener(state *control.State, summary string, opts ...tea.ProgramOption) *Listener {
	return &Listener{
		state:   state,
		program: tea.NewProgram(newModel(state, summary), opts...),
	}
}

// Run blocks until the user quits or playback is stopped elsewhere. Playback is always stopped
// when Run returns.
func (l *Listener) Run() error {
	defer l.state.Stop()

	go func() {
		<-l.state.Done()
		l.program.Send(stoppedMsg{})
	}()

	_, err := l.program.Run()
	return err
}

func (l *Listener) Play(ev output.PlaybackEvent) {
	l.program.Send(beatMsg(ev))
}

func (l *Listener) Sustain(pitches []float64) {
	l.program.Send(droneMsg(pitches))
}

func (l *Listener) Close() error { return nil }
