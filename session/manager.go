package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/focus/task"
)

// Repository is the session storage the Manager needs.
type Repository interface {
	CreateSession(userID string, opts CreateOptions) (*Session, error)
	UpdateSession(id string, opts UpdateOptions) (*Session, error)
	ListSessions(userID string, since time.Time) ([]Session, error)
	ActiveSession(userID string) (*Session, error)
}

// TaskGetter resolves the task a session is linked to.
type TaskGetter interface {
	GetTask(id string) (*task.Task, error)
}

// ManagerOptions configures the session manager.
type ManagerOptions struct {
	// Timer sets the planned session lengths. Zero means DefaultTimer.
	Timer Timer
	// Now supplies the current time. If nil, time.Now is used.
	Now func() time.Time
}

// StartOptions configures a session start.
type StartOptions struct {
	// TaskID links the session to a task (prefix allowed).
	TaskID string
	// Type forces focus or break. Empty picks the next planned type.
	Type Type
	// Minutes overrides the planned timer length.
	Minutes int
}

// StartResult captures the output of starting a session.
type StartResult struct {
	Session Session
	Plan    Plan
	Task    *task.Task
}

// StopOptions configures ending the running session.
type StopOptions struct {
	Notes string
}

// LogOptions records a session that already happened.
type LogOptions struct {
	TaskID  string
	Type    Type
	Start   time.Time
	Minutes int
	Notes   string
}

// Manager coordinates timer planning, task lookup, and session storage.
type Manager struct {
	sessions Repository
	tasks    TaskGetter
	timer    Timer
	now      func() time.Time
}

// NewManager creates a session manager. tasks may be nil when sessions are
// never linked to tasks.
func NewManager(sessions Repository, tasks TaskGetter, opts ManagerOptions) *Manager {
	timer := opts.Timer
	if timer == (Timer{}) {
		timer = DefaultTimer()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{sessions: sessions, tasks: tasks, timer: timer, now: now}
}

// Start opens a new session for the user.
func (m *Manager) Start(userID string, opts StartOptions) (*StartResult, error) {
	if _, err := m.sessions.ActiveSession(userID); err == nil {
		return nil, ErrSessionAlreadyActive
	} else if !errors.Is(err, ErrNoActiveSession) {
		return nil, err
	}

	linked, err := m.resolveTask(opts.TaskID)
	if err != nil {
		return nil, err
	}
	if linked != nil {
		if err := validateTaskForSessionStart(*linked); err != nil {
			return nil, err
		}
	}

	now := m.now()
	plan, err := m.plan(userID, opts.Type, now)
	if err != nil {
		return nil, err
	}
	if opts.Minutes > 0 {
		plan.Minutes = opts.Minutes
	}

	createOpts := CreateOptions{
		Type:           plan.Type,
		StartTime:      now,
		PlannedMinutes: MinutesPtr(plan.Minutes),
	}
	if linked != nil {
		createOpts.TaskID = linked.ID
	}

	created, err := m.sessions.CreateSession(userID, createOpts)
	if err != nil {
		return nil, err
	}
	return &StartResult{Session: *created, Plan: plan, Task: linked}, nil
}

// Stop closes the user's running session. The recorded duration is the
// elapsed time, so ending early records only the minutes actually worked.
func (m *Manager) Stop(userID string, opts StopOptions) (*Session, error) {
	active, err := m.sessions.ActiveSession(userID)
	if err != nil {
		return nil, err
	}

	update := CloseUpdate(m.now())
	if notes := strings.TrimSpace(opts.Notes); notes != "" {
		update.Notes = &notes
	}
	return m.sessions.UpdateSession(active.ID, update)
}

// Log records a completed session that was not timed live.
func (m *Manager) Log(userID string, opts LogOptions) (*Session, error) {
	if opts.Minutes < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeDuration, opts.Minutes)
	}
	linked, err := m.resolveTask(opts.TaskID)
	if err != nil {
		return nil, err
	}

	start := opts.Start
	if start.IsZero() {
		start = m.now().Add(-time.Duration(opts.Minutes) * time.Minute)
	}
	createOpts := CreateOptions{
		Type:      opts.Type,
		StartTime: start,
		Completed: true,
		Duration:  MinutesPtr(opts.Minutes),
		Notes:     strings.TrimSpace(opts.Notes),
	}
	if linked != nil {
		createOpts.TaskID = linked.ID
	}
	return m.sessions.CreateSession(userID, createOpts)
}

// Next returns the plan Start would use without starting anything.
func (m *Manager) Next(userID string) (Plan, error) {
	return m.plan(userID, "", m.now())
}

func (m *Manager) plan(userID string, typ Type, now time.Time) (Plan, error) {
	if typ != "" {
		if !typ.IsValid() {
			return Plan{}, fmt.Errorf("%w: %q", ErrInvalidSessionType, typ)
		}
		return m.timer.PlanFor(typ), nil
	}

	y, mo, d := now.Date()
	since := time.Date(y, mo, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	recent, err := m.sessions.ListSessions(userID, since)
	if err != nil {
		return Plan{}, err
	}
	return m.timer.NextPlan(recent, now), nil
}

func (m *Manager) resolveTask(id string) (*task.Task, error) {
	if id == "" {
		return nil, nil
	}
	if m.tasks == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return m.tasks.GetTask(id)
}

func validateTaskForSessionStart(item task.Task) error {
	if item.Status == task.StatusCompleted {
		return fmt.Errorf("task %s is not available (status %s)", item.ID, item.Status)
	}
	return nil
}
