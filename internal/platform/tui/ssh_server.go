package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/dkovalev/tui-jigsaw/internal/app"
	"github.com/dkovalev/tui-jigsaw/internal/config"
)

// SSHServer serves the game over SSH via Wish. Every connecting user
// gets an isolated session with a per-user save database, so remote
// players never share progression state.
type SSHServer struct {
	cfg    config.Config
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates the Wish server from the application config.
func NewSSHServer(cfg config.Config) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "jigsaw-ssh",
	})

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	hostKeyPath := filepath.Join(home, ".jigsaw", "host_key")
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	srv := &SSHServer{cfg: cfg, logger: logger}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(time.Duration(cfg.SSH.IdleTimeoutMinutes)*time.Minute),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionContextKey locates the per-connection app session in the SSH
// connection context.
type sessionContextKey struct{}

func sessionFromContext(sshSession ssh.Session) *app.Session {
	session, _ := sshSession.Context().Value(sessionContextKey{}).(*app.Session)
	return session
}

// sessionMiddleware owns the app session's lifetime: it opens the
// per-user save database when the connection starts and closes it when
// the handler chain returns, so a long-running server never accumulates
// database handles.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		session := s.newUserSession(sshSession.User())
		defer session.Close()
		sshSession.Context().SetValue(sessionContextKey{}, session)
		next(sshSession)
	}
}

// newUserSession builds an isolated session for one SSH user, with its
// save database under a remote/ directory next to the configured one.
func (s *SSHServer) newUserSession(user string) *app.Session {
	cfg := s.cfg
	cfg.DB = userDBPath(s.cfg.DB, user)
	return app.NewSession(cfg, s.logger.With("user", user), app.Options{})
}

// userDBPath maps an SSH username to its save database path. The
// username is attacker-controlled and must not be able to steer the
// path outside the remote save directory.
func userDBPath(baseDB, user string) string {
	return filepath.Join(filepath.Dir(baseDB), "remote", sanitizeUser(user)+".db")
}

// sanitizeUser reduces an SSH username to a safe filename component:
// everything outside [A-Za-z0-9_-] is dropped, and a name with nothing
// left maps to "anonymous".
func sanitizeUser(user string) string {
	var b strings.Builder
	for _, r := range user {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "anonymous"
	}
	return b.String()
}

// teaHandler builds a Bubble Tea program for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	_, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	session := sessionFromContext(sshSession)
	if session == nil {
		s.logger.Error("no session for connection", "user", sshSession.User())
		return nil, nil
	}
	return NewModel(session), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

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

// ListenAndServe starts the server and blocks until SIGINT/SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.cfg.SSH.Address)

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
	return s.server.Shutdown(ctx)
}
