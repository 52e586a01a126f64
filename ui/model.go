// Package ui is the interactive terminal front end: it turns key presses into tempo commands
// and shows the beat as it happens.
package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/metronome/control"
	"github.com/robmorgan/metronome/output"
)

type model struct {
	state   *control.State
	summary string

	spinner  spinner.Model
	progress progress.Model

	last    output.PlaybackEvent
	started bool
	beats   uint64
	muted   uint64
	drone   []float64

	// notice is a one-line message about the last key press
	notice   string
	quitting bool
}

func newModel(state *control.State, summary string) model {
	s := spinner.New()
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return model{
		state:    state,
		summary:  summary,
		spinner:  s,
		progress: p,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

type beatMsg output.PlaybackEvent

type droneMsg []float64

type stoppedMsg struct{}
