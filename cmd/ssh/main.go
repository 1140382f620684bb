package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/wordblast/internal/config"
	"github.com/tomz197/wordblast/internal/draw"
	applog "github.com/tomz197/wordblast/internal/logging"
	"github.com/tomz197/wordblast/internal/loop"
	"github.com/tomz197/wordblast/internal/question"
	"github.com/tomz197/wordblast/internal/setup"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownGrace      = 15 * time.Second
)

type server struct {
	hub        *loop.Hub
	res        *setup.Resources
	logger     *log.Logger
	difficulty question.Difficulty
}

func main() {
	settings := config.Load()
	logger := applog.New(os.Stderr, settings.LogLevel, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	d, err := question.ParseDifficulty(settings.Difficulty)
	if err != nil {
		logger.Fatal("bad difficulty", "err", err)
	}
	res, err := setup.Open(context.Background(), settings, logger)
	if err != nil {
		logger.Fatal("open resources", "err", err)
	}
	defer res.Close()

	srv := &server{hub: loop.NewHub(), res: res, logger: logger, difficulty: d}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "players", srv.hub.Count())
	srv.hub.Shutdown(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// gameMiddleware runs one game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := srv.logger.With("user", sess.User())
		logger.Info("game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		renderer := lipgloss.NewRenderer(sess, termenv.WithEnvironment(sessionEnv(sess.Environ())), termenv.WithUnsafe())
		if pty.Term == "" || pty.Term == "dumb" {
			renderer.SetColorProfile(termenv.Ascii)
		}

		c := loop.NewClient(bufio.NewReader(sess), sess, loop.ClientOptions{
			TermSizeFunc:   sizeTracker.getSize,
			Renderer:       renderer,
			Hub:            srv.hub,
			Name:           sess.User(),
			Difficulty:     srv.difficulty,
			Game:           srv.res.GameOptions(logger),
			IdleDisconnect: true,
		})
		if err := c.Run(sess.Context()); err != nil {
			logger.Warn("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sessionEnv exposes the client's environment (TERM, COLORTERM) to termenv.
type sessionEnv []string

func (e sessionEnv) Environ() []string { return e }

func (e sessionEnv) Getenv(key string) string {
	prefix := key + "="
	for _, kv := range e {
		if len(kv) > len(prefix) && kv[:len(prefix)] == prefix {
			return kv[len(prefix):]
		}
	}
	return ""
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
