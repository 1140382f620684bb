package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tomz197/wordblast/internal/achievement"
	"github.com/tomz197/wordblast/internal/config"
	"github.com/tomz197/wordblast/internal/logging"
	"github.com/tomz197/wordblast/internal/setup"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// achievementView is one entry of /api/achievements.
type achievementView struct {
	ID       achievement.ID `json:"id"`
	Title    string         `json:"title"`
	Unlocked bool           `json:"unlocked"`
}

type bestView struct {
	Found      bool      `json:"found"`
	Score      int       `json:"score,omitempty"`
	MaxCombo   int       `json:"maxCombo,omitempty"`
	Level      int       `json:"level,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	PlayedAt   time.Time `json:"playedAt,omitzero"`
}

func main() {
	settings := config.Load()
	logger := logging.New(os.Stderr, settings.LogLevel, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	res, err := setup.Open(context.Background(), settings, logger)
	if err != nil {
		logger.Fatal("open resources", "err", err)
	}
	defer res.Close()

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newRouter(res.Store, res.Tracker, sshHost, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting web server", "addr", "http://"+srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}
}

func newRouter(store achievement.Store, tracker *achievement.Tracker, sshHost string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/achievements", func(w http.ResponseWriter, r *http.Request) {
			flags, err := store.Get(r.Context(), achievement.Namespace)
			if err != nil {
				logger.Warn("load achievements", "err", err, "request", chimw.GetReqID(r.Context()))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "achievements unavailable"})
				return
			}
			views := make([]achievementView, 0, len(achievement.DefaultRules))
			for _, rule := range achievement.DefaultRules {
				views = append(views, achievementView{ID: rule.ID, Title: rule.Title, Unlocked: flags[string(rule.ID)]})
			}
			writeJSON(w, http.StatusOK, views)
		})

		r.Get("/best", func(w http.ResponseWriter, r *http.Request) {
			best, ok := tracker.Best(r.Context())
			if !ok {
				writeJSON(w, http.StatusOK, bestView{})
				return
			}
			writeJSON(w, http.StatusOK, bestView{
				Found:      true,
				Score:      best.Score,
				MaxCombo:   best.MaxCombo,
				Level:      best.Level,
				Difficulty: best.Difficulty,
				PlayedAt:   best.PlayedAt,
			})
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
