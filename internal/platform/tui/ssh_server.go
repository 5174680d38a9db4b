package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/engine"
	"github.com/vovakirdan/deck-arcade/internal/registry"
	"github.com/vovakirdan/deck-arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.deck-arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Seed fixes the RNG seed of every session; 0 seeds from the clock.
	Seed int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves panels over SSH. Each session gets its own panel and
// engine; all sessions share one result store.
type SSHServer struct {
	config   SSHServerConfig
	arcade   *config.Config
	renderer engine.Renderer
	store    *storage.Store // optional
	server   *ssh.Server
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, arcade *config.Config, renderer engine.Renderer, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "deck-ssh",
		})
	}

	srv := &SSHServer{
		config:   cfg,
		arcade:   arcade,
		renderer: renderer,
		store:    store,
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.Dir(), "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates the session model. A game ID given as the SSH command
// starts that game directly; otherwise the session opens on the game list.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	model := NewSessionModel(sess.Context(), s.sessionDeps(sess.User()), pty.Window.Width)
	if cmd := sess.Command(); len(cmd) > 0 {
		model.initial = cmd[0]
	}
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func (s *SSHServer) sessionDeps(user string) SessionDeps {
	return SessionDeps{
		Config:   s.arcade,
		Renderer: s.renderer,
		Store:    s.store,
		Logger:   s.logger.With("user", user),
		Seed:     s.config.Seed,
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"command", sess.Command(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("tui: ssh server: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Open sessions are closed, which
// stops their engines.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps is what a session needs to start engines.
type SessionDeps struct {
	Config   *config.Config
	Renderer engine.Renderer
	Store    *storage.Store // optional
	Logger   *log.Logger
	Seed     int64 // 0 seeds every round from the clock
}

// SessionModel manages one session: game list -> panel -> game list.
type SessionModel struct {
	ctx     context.Context
	deps    SessionDeps
	width   int
	initial string // game to start immediately

	menu  MenuModel
	panel *Model
	stop  context.CancelFunc // stops the running engine

	quitting bool
}

// NewSessionModel creates a session. Engines it starts stop when ctx is
// done.
func NewSessionModel(ctx context.Context, deps SessionDeps, width int) SessionModel {
	return SessionModel{
		ctx:   ctx,
		deps:  deps,
		width: width,
		menu:  NewMenuModel(deps.Store, width),
	}
}

// Init starts the requested game, if any.
func (m SessionModel) Init() tea.Cmd {
	if m.initial == "" {
		return m.menu.Init()
	}
	return func() tea.Msg { return startMsg{id: m.initial} }
}

type startMsg struct{ id string }

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
	}
	if sm, ok := msg.(startMsg); ok {
		return m.start(sm.id)
	}

	if m.panel != nil {
		return m.updatePanel(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if id := m.menu.Selected(); id != "" {
		return m.start(id)
	}
	return m, cmd
}

func (m SessionModel) updatePanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.panel.Update(msg)
	if pm, ok := next.(Model); ok {
		m.panel = &pm
	}
	switch {
	case m.panel.Quitting():
		m.stopGame()
		m.quitting = true
		return m, tea.Quit
	case m.panel.Back():
		m.stopGame()
		m.menu = NewMenuModel(m.deps.Store, m.width)
		return m, m.menu.Init()
	}
	return m, cmd
}

// start creates the game, its panel and engine, and runs the engine until
// the player leaves the game or the session ends.
func (m SessionModel) start(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id, m.deps.Config)
	if err != nil {
		m.menu = NewMenuModel(m.deps.Store, m.width)
		m.menu.err = err
		return m, nil
	}

	panel := NewPanel(m.deps.Config.Panel.Grid(), m.deps.Config.Panel.CellSize)
	opts := engine.Options{
		Runtime: core.RuntimeConfig{
			Seed:         m.deps.Seed,
			TickInterval: m.deps.Config.Engine.TickInterval,
		},
		Logger: m.deps.Logger.With("game", id),
	}
	if m.deps.Store != nil {
		opts.Recorder = m.deps.Store
	}
	eng := engine.New(panel, game, m.deps.Renderer, opts)

	ctx, cancel := context.WithCancel(m.ctx)
	go func() {
		if err := eng.Run(ctx); err != nil {
			opts.Logger.Error("engine stopped", "err", err)
		}
	}()

	pm := NewModel(panel, game.Title())
	pm.embedded = true
	pm.width = m.width
	pm.help.Width = m.width
	m.panel = &pm
	m.stop = cancel
	return m, pm.Init()
}

func (m *SessionModel) stopGame() {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
	m.panel = nil
}

// RunSession shows the game list in the local terminal, starting initial
// right away if it is set, until the user quits or ctx is done.
func RunSession(ctx context.Context, deps SessionDeps, initial string) error {
	m := NewSessionModel(ctx, deps, 0)
	m.initial = initial
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.panel != nil {
		return m.panel.View()
	}
	return m.menu.View()
}
