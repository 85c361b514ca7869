package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Tiliavir/work-hours-logger/internal/auth"
	"github.com/Tiliavir/work-hours-logger/internal/config"
	"github.com/Tiliavir/work-hours-logger/internal/logging"
	"github.com/Tiliavir/work-hours-logger/internal/storage"
	"github.com/Tiliavir/work-hours-logger/internal/summary"
	"github.com/Tiliavir/work-hours-logger/internal/tracker"
	"github.com/Tiliavir/work-hours-logger/internal/worklog"
)

const (
	exitUsage   = 1
	exitStorage = 2
)

// env is what every command needs: configuration, logger and the open
// storage backend.
type env struct {
	home    string
	cfg     config.Config
	log     *slog.Logger
	backend storage.Backend
}

var (
	exit = os.Exit
	// opened is the env of the running command, closed by die before exiting.
	opened *env
)

// die prints to stderr, closes any open storage and exits with code.
func die(code int, a ...any) {
	fmt.Fprintln(os.Stderr, a...)
	if opened != nil {
		opened.Close()
	}
	exit(code)
}

// openEnv loads the configuration and opens storage, exiting on failure.
func openEnv() *env {
	home, err := config.Home()
	if err != nil {
		die(exitStorage, err)
	}
	cfg, err := config.LoadFrom(home)
	if err != nil {
		die(exitStorage, err)
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	log := logging.New(os.Stderr, level)

	backend, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		die(exitStorage, err)
	}
	log.Debug("storage opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)
	opened = &env{home: home, cfg: cfg, log: log, backend: backend}
	return opened
}

// Close releases the backend. Calling it again does nothing.
func (e *env) Close() {
	if opened == e {
		opened = nil
	}
	if e.backend == nil {
		return
	}
	if err := e.backend.Close(); err != nil {
		e.log.Warn("closing storage", "err", err)
	}
	e.backend = nil
}

func (e *env) sessions() *auth.Sessions {
	return auth.NewSessions(e.backend)
}

// user returns the logged-in user, exiting when nobody is.
func (e *env) user(ctx context.Context) string {
	sess, err := e.sessions().Current(ctx)
	if errors.Is(err, auth.ErrNotLoggedIn) {
		die(exitUsage, "Not logged in. Run: whl login")
	}
	if err != nil {
		die(exitStorage, err)
	}
	return sess.User
}

func (e *env) editor(user string) *worklog.Editor {
	return worklog.New(storage.NewLogStore(e.backend, e.log), user, e.log)
}

func (e *env) tracker(editor *worklog.Editor) *tracker.Tracker {
	return tracker.New(editor, storage.NewTimerStore(e.backend), tracker.Options{MinSession: e.cfg.MinSession()})
}

func (e *env) summaryOptions() summary.Options {
	return summary.Options{StandardHours: e.cfg.Summary.StandardHours}
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
