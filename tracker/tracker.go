// Package tracker ranks a user's tasks and reports their focus progress.
//
// The services read from repositories, apply the pure scoring and
// aggregation in the priority and stats packages, and return the result.
// They never write to a repository. Repository errors are returned
// unchanged; sparse records are scored or counted with neutral defaults and
// reported to the Logger instead of failing the call.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/amonks/focus/session"
	"github.com/amonks/focus/task"
)

var (
	// ErrValidation marks malformed input to a service call.
	ErrValidation = errors.New("validation error")
	// ErrMissingUserID is returned when a call has no user id.
	ErrMissingUserID = fmt.Errorf("%w: user id is required", ErrValidation)
)

// TaskRepository lists a user's tasks, newest first.
type TaskRepository interface {
	ListTasks(userID string) ([]task.Task, error)
}

// SessionRepository lists a user's sessions that started at or after since.
// A zero since lists every session.
type SessionRepository interface {
	ListSessions(userID string, since time.Time) ([]session.Session, error)
}

func validateUserID(userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	return nil
}
