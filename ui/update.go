package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/metronome/control"
)

const noticeRamping = "tempo is ramping, manual changes are disabled"

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "+", "=", "]", "k":
			return m.dispatch(control.Increase)
		case "down", "-", "[", "j":
			return m.dispatch(control.Decrease)
		case "q", "esc", "ctrl+c":
			m.state.Dispatch(control.Stop)
			m.quitting = true
			return m, tea.Quit
		}
	case beatMsg:
		m.last = msg
		m.started = true
		m.beats++
		if !msg.Audible {
			m.muted++
		}
	case droneMsg:
		m.drone = msg
	case stoppedMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) dispatch(cmd control.Command) (tea.Model, tea.Cmd) {
	switch {
	case m.state.Dispatch(cmd):
		m.notice = ""
	case m.state.Ramping():
		m.notice = noticeRamping
	}
	return m, nil
}
