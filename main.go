package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/w3lalitsaini/anti-movies/config"
	"github.com/w3lalitsaini/anti-movies/session"
	"github.com/w3lalitsaini/anti-movies/upstream"
	"github.com/w3lalitsaini/anti-movies/web"
	"github.com/w3lalitsaini/anti-movies/web/handler"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, cleanup, err := openStorage(cfg)
	if err != nil {
		slog.Error("failed to open session storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Restores any persisted session; a malformed record starts Anonymous.
	store := session.NewStore(storage)
	if s := store.Current(); s != nil {
		slog.Info("restored session", "username", s.Username, "role", s.Role)
	}

	client := upstream.New(cfg, store)

	// Start background upstream monitoring so the readiness probe and the
	// UI's offline banner reflect API outages.
	monitor := upstream.NewMonitor(cfg)
	monitor.Start(context.Background())

	// Every session transition is pushed to all open tabs.
	wsHub := handler.NewWSHub()
	unsubscribe := store.Subscribe(wsHub.BroadcastSession)
	defer unsubscribe()

	h, stopLimiter := web.NewRouter(cfg, store, client, monitor, wsHub)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MiB
	}

	// Start server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("anti-movies gateway listening", "addr", cfg.ListenAddr, "upstream", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt or SIGTERM (e.g. from container orchestration).
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	wsHub.Shutdown()
	monitor.Stop()
	stopLimiter()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// openStorage picks the configured session persistence backend. The cleanup
// func closes the sqlite handle; the file backend has nothing to release.
func openStorage(cfg config.Config) (session.Storage, func(), error) {
	switch cfg.SessionStore {
	case "sqlite":
		if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
			return nil, nil, err
		}
		st, err := session.OpenSQLiteStorage(filepath.Join(cfg.StateDir, "state.db"))
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		st, err := session.NewFileStorage(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	}
}
