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
	"github.com/google/uuid"

	"github.com/vovakirdan/future-self/internal/catalog"
	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.futureself/host_key.
	HostKeyPath string

	// DBPath is the path to the session journal.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Catalog lists the decisions offered to every session.
	Catalog *catalog.Catalog

	// HistoryLimit caps the rows on the history screen.
	HistoryLimit int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23235",
		DBPath:       "~/.futureself/history.db",
		IdleTimeout:  30 * time.Minute,
		HistoryLimit: 10,
	}
}

// SSHServer wraps a Wish SSH server. Every connection plays its own session
// backed by its own core.Store; only the journal is shared.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("ssh: no decision catalog configured")
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "futureself-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open session journal", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".futureself", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sessionID := uuid.NewString()
	gameStore := core.NewStore()
	gameStore.Subscribe(s.decisionLogger(sshSession.User(), sessionID))

	model := NewSessionModel(gameStore, s.config.Catalog, s.store, Options{
		SessionID: sessionID,
		Player:    sshSession.User(),
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
	}, s.config.HistoryLimit)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// decisionLogger logs every action dispatched in a session.
func (s *SSHServer) decisionLogger(user, sessionID string) core.Listener {
	return func(a core.Action, state core.GameState) {
		switch act := a.(type) {
		case core.ApplyDecision:
			s.logger.Info("decision applied",
				"user", user,
				"session", sessionID,
				"type", act.Decision.Type,
				"probability", state.Probability,
			)
		case core.SetGoal:
			s.logger.Info("goal set", "user", user, "session", sessionID)
		default:
			s.logger.Debug("action ignored", "user", user, "session", sessionID, "action", a)
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return drainThenClose(ctx, s.server, s.store)
}

type drainer interface {
	Shutdown(ctx context.Context) error
}

// drainThenClose stops srv and closes the journal once open sessions are done.
// Sessions quitting during the grace period still write to the journal.
func drainThenClose(ctx context.Context, srv drainer, journal *storage.Store) error {
	err := srv.Shutdown(ctx)

	if journal != nil {
		if closeErr := journal.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages one remote session: game screen <-> history screen.
// Inner screens signal with tea.Quit; SessionModel intercepts that and
// switches screens instead of ending the program.
type SessionModel struct {
	game         Model
	history      *HistoryModel
	journal      *storage.Store
	historyLimit int
	quitting     bool
}

// NewSessionModel creates a new session model around its own store.
func NewSessionModel(store *core.Store, cat *catalog.Catalog, journal *storage.Store, opts Options, historyLimit int) SessionModel {
	return SessionModel{
		game:         NewModel(store, cat, journal, opts),
		journal:      journal,
		historyLimit: historyLimit,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.history != nil {
		return m.updateHistory(msg)
	}
	return m.updateGame(msg)
}

// updateGame handles updates while the game screen is shown.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.WantsHistory() {
		m.game = m.game.resume()
		w, h := m.game.Size()
		hm := NewHistoryModel(m.journal, m.historyLimit, w, h)
		m.history = &hm
		return m, hm.Init()
	}

	return m, cmd
}

// updateHistory handles updates while the history screen is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Keep the game screen's size current as well
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		updated, _ := m.game.Update(wsm)
		if gm, ok := updated.(Model); ok {
			m.game = gm
		}
	}

	newModel, cmd := m.history.Update(msg)
	if hm, ok := newModel.(HistoryModel); ok {
		m.history = &hm
	}

	if m.history.IsQuitting() {
		m.game = m.game.Finish()
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		return m, nil
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}
	return m.game.View()
}

// Game returns the game screen model.
func (m SessionModel) Game() Model {
	return m.game
}
