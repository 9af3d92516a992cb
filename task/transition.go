package task

import "fmt"

// allowedTransitions lists every status change a user may make.
// Changing a task to its current status is always allowed.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {StatusPending},
}

// CanTransition reports whether a task may move from one status to another.
// A task stored with an unknown status may move to any valid status.
func CanTransition(from, to Status) bool {
	if !to.IsValid() {
		return false
	}
	if !from.IsValid() {
		return true
	}
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns an error unless the status change is allowed.
func Transition(from, to Status) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
