package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deck-arcade/internal/engine"
)

// headerLines is the number of lines View draws above the panel.
const headerLines = 2

// Model is the Bubble Tea model that shows a Panel and turns keys and mouse
// clicks into cell input.
type Model struct {
	panel    *Panel
	title    string
	keys     KeyMap
	help     help.Model
	width    int
	held     int // cell held down with the mouse, -1 if none
	closed   bool
	quitting bool
	back     bool
	embedded bool // inside a session: esc goes back instead of quitting
}

// NewModel creates a model showing panel under the given title.
func NewModel(panel *Panel, title string) Model {
	return Model{
		panel: panel,
		title: title,
		keys:  DefaultKeyMap(panel.Grid()),
		help:  help.New(),
		held:  -1,
	}
}

// Init starts waiting for panel changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.panel)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		if msg.panel != m.panel {
			return m, nil
		}
		return m, waitForChange(m.panel)

	case closedMsg:
		if msg.panel == m.panel {
			m.closed = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.embedded {
			m.back = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if idx, ok := m.keys.Cell(msg); ok {
		_ = m.panel.Tap(idx)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if idx, ok := cellAt(m.panel.Grid(), msg.X, msg.Y-headerLines); ok {
			m.held = idx
			_ = m.panel.Input(idx, true)
		}
	case tea.MouseActionRelease:
		if m.held >= 0 {
			_ = m.panel.Input(m.held, false)
			m.held = -1
		}
	}
	return m, nil
}

// View renders the title, the panel and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	if m.closed {
		b.WriteString("  (stopped)")
	}
	b.WriteString(strings.Repeat("\n", headerLines))
	b.WriteString(RenderPanel(m.panel.Grid(), m.panel.Cells()))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool { return m.quitting }

// Back reports whether the user asked to return to the game list.
func (m Model) Back() bool { return m.back }

// Run drives eng on panel and shows it in the terminal until the user quits
// or ctx is done. The engine is shut down before Run returns.
func Run(ctx context.Context, eng *engine.Engine, panel *Panel, title string, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engErr := make(chan error, 1)
	go func() { engErr <- eng.Run(ctx) }()

	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, opts...)
	_, err := tea.NewProgram(NewModel(panel, title), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}

	cancel()
	if e := <-engErr; e != nil {
		err = errors.Join(err, fmt.Errorf("tui: engine: %w", e))
	}
	return err
}
