package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deck-arcade/internal/config"
	_ "github.com/vovakirdan/deck-arcade/internal/games/tictactoe"
	"github.com/vovakirdan/deck-arcade/internal/render"
)

func testDeps() SessionDeps {
	return SessionDeps{
		Config:   config.Default(),
		Renderer: render.NewRenderer(),
		Logger:   log.New(io.Discard),
		Seed:     1,
	}
}

func TestSessionStartAndBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewSessionModel(ctx, testDeps(), 120)
	next, _ := m.Update(startMsg{id: "tictactoe"})
	m = next.(SessionModel)
	if m.panel == nil {
		t.Fatal("expected a running game after start")
	}
	if !strings.Contains(m.View(), "Tic") {
		t.Errorf("game view missing title:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.panel != nil {
		t.Fatal("esc should return to the game list")
	}
	if m.quitting {
		t.Error("esc in a game should not end the session")
	}
	if !strings.Contains(m.View(), "D E C K") {
		t.Errorf("menu not shown after back:\n%s", m.View())
	}
}

func TestSessionUnknownGame(t *testing.T) {
	m := NewSessionModel(context.Background(), testDeps(), 120)
	next, _ := m.Update(startMsg{id: "nope"})
	m = next.(SessionModel)
	if m.panel != nil {
		t.Fatal("unknown game started")
	}
	if m.menu.err == nil {
		t.Error("expected the menu to show the error")
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := NewSessionModel(context.Background(), testDeps(), 120)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(SessionModel)
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
}
