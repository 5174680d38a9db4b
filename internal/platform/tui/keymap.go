package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deck-arcade/internal/core"
)

// cellKeyRows maps keyboard rows onto panel rows, left to right.
var cellKeyRows = []string{"12345678", "qwertyui", "asdfghjk", "zxcvbnm,"}

// KeyMap defines the key bindings of the panel simulator.
type KeyMap struct {
	Cells []key.Binding // indexed by physical cell; unmapped cells are disabled
	Rows  []key.Binding // help entries, one per keyboard row
	Help  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.Rows, {k.Help, k.Back, k.Quit}}
}

// DefaultKeyMap binds the top-left 8x4 cells of the panel to the keyboard.
func DefaultKeyMap(grid core.Panel) KeyMap {
	km := KeyMap{
		Cells: make([]key.Binding, grid.CellCount()),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}

	for r, row := range cellKeyRows {
		if r >= grid.Rows {
			break
		}
		var keys []string
		for c, ch := range []rune(row) {
			if c >= grid.Cols {
				break
			}
			k := string(ch)
			keys = append(keys, k)
			km.Cells[grid.Key(r, c)] = key.NewBinding(key.WithKeys(k), key.WithHelp(k, "press"))
		}
		km.Rows = append(km.Rows, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0]+"-"+keys[len(keys)-1], fmt.Sprintf("row %d", r+1)),
		))
	}
	return km
}

// Cell returns the physical cell bound to msg.
func (k KeyMap) Cell(msg tea.KeyMsg) (int, bool) {
	for i, b := range k.Cells {
		if key.Matches(msg, b) {
			return i, true
		}
	}
	return -1, false
}
