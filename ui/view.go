package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/metronome/rhythm"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	mutedStyle   = helpStyle.Copy().UnsetMargins()
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)

	// the beat indicator fades from slow to fast across the tempo range
	slowColor, _ = colorful.Hex("#00d7af")
	fastColor, _ = colorful.Hex("#ff005f")
)

func (m model) View() string {
	var b strings.Builder

	tempo := m.tempo()
	fmt.Fprintf(&b, "%s %s\n\n", m.spinner.View(), tempo)
	b.WriteString(m.progress.ViewAs(tempo.Position()))
	b.WriteString("\n\n")

	if m.started {
		fmt.Fprintf(&b, "Beat %d %s", m.last.Beat+1, m.beatIndicator(tempo))
		if m.last.Chord != "" {
			fmt.Fprintf(&b, "  %s", m.last.Chord)
		}
		fmt.Fprintf(&b, "\nPlayed: %d  Muted: %d\n", m.beats, m.muted)
	} else {
		b.WriteString("Waiting for the first beat...\n")
	}
	if len(m.drone) > 0 {
		fmt.Fprintf(&b, "Drone: %d tones\n", len(m.drone))
	}
	if m.summary != "" {
		b.WriteString(mutedStyle.Render(m.summary) + "\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}

	if m.state.Ramping() {
		b.WriteString(helpStyle.Render("Press q to exit"))
	} else {
		b.WriteString(helpStyle.Render("(↑/↓ or [/]) BPM +/-\n\nPress q to exit"))
	}

	if m.quitting {
		b.WriteString("\n")
	}
	return appStyle.Render(b.String())
}

// tempo is the latest tempo seen, with the BPM taken from the shared state so manual changes
// show before the next beat.
func (m model) tempo() rhythm.Snapshot {
	t := m.last.Tempo
	if !m.started {
		t = rhythm.NewTempo(m.state.BPM()).Snapshot()
	}
	if !m.state.Ramping() {
		t.BPM = m.state.BPM()
	}
	return t
}

func (m model) beatIndicator(tempo rhythm.Snapshot) string {
	if !m.last.Audible {
		return mutedStyle.Render("○")
	}
	c := slowColor.BlendLuv(fastColor, tempo.Position())
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("●")
}
