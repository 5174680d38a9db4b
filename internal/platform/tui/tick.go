// Package tui runs the panel in a terminal with Bubble Tea: a simulated
// device, the key map that stands in for the panel's buttons, and an SSH
// server that gives every session its own panel.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// changedMsg is sent when the panel content changed.
type changedMsg struct{ panel *Panel }

// closedMsg is sent once the panel has been closed.
type closedMsg struct{ panel *Panel }

// waitForChange returns a command that blocks until the panel changes or
// closes.
func waitForChange(p *Panel) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-p.Changed():
			return changedMsg{p}
		case <-p.Done():
			return closedMsg{p}
		}
	}
}
