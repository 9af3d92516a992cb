package main

import (
	"fmt"
	"os"
	"time"

	"github.com/amonks/focus/internal/config"
	"github.com/amonks/focus/internal/paths"
	"github.com/amonks/focus/internal/sqlstore"
	"github.com/amonks/focus/session"
	"github.com/amonks/focus/task"
	"github.com/amonks/focus/tracker"
	"github.com/spf13/cobra"
)

// taskStore is the task repository the commands write through.
type taskStore interface {
	tracker.TaskRepository
	session.TaskGetter
	CreateTask(userID, title string, opts task.CreateOptions) (*task.Task, error)
	UpdateTask(id string, opts task.UpdateOptions) (*task.Task, error)
	DeleteTask(id string) error
}

// app is the per-invocation state shared by commands.
type app struct {
	cfg      *config.Config
	userID   string
	loc      *time.Location
	tasks    taskStore
	sessions session.Repository
	logger   tracker.Logger
	closer   func() error
}

// openApp loads configuration and opens the configured storage backend.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	userID := cfg.User.ID
	if rootUser != "" {
		userID = rootUser
	}
	if userID == "" {
		return nil, tracker.ErrMissingUserID
	}

	dir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		userID: userID,
		loc:    loc,
		logger: newLogger(),
		closer: func() error { return nil },
	}
	now := a.now

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlstore.Open(dir, sqlstore.Options{Now: now})
		if err != nil {
			return nil, err
		}
		a.tasks = db
		a.sessions = db
		a.closer = db.Close
	default:
		a.tasks = task.Open(dir, task.OpenOptions{Now: now})
		a.sessions = session.Open(dir, session.OpenOptions{Now: now})
	}
	return a, nil
}

func loadConfig() (*config.Config, error) {
	if rootConfig != "" {
		return config.LoadFile(rootConfig)
	}
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

func newLogger() tracker.Logger {
	if !rootVerbose {
		return nil
	}
	return tracker.NewConsoleLogger(os.Stderr)
}

// now returns the current time in the configured zone, so day boundaries
// follow the user's calendar.
func (a *app) now() time.Time {
	return time.Now().In(a.loc)
}

func (a *app) Close() error {
	if err := a.closer(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

func (a *app) sessionManager() *session.Manager {
	return session.NewManager(a.sessions, a.tasks, session.ManagerOptions{
		Timer: a.cfg.SessionTimer(),
		Now:   a.now,
	})
}

// withApp wraps a command body with openApp and Close.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := a.Close(); err == nil {
				err = closeErr
			}
		}()
		return run(cmd, args, a)
	}
}
