package task

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/amonks/focus/internal/store"
)

// TasksFile is the name of the JSONL file containing tasks.
const TasksFile = "tasks.jsonl"

// Store is a task repository backed by a JSONL file.
type Store struct {
	file *store.File[Task]
	now  func() time.Time
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Now supplies timestamps for created/updated fields.
	// If nil, time.Now is used.
	Now func() time.Time
}

// Open returns a task store rooted at dir. The tasks file is created on the
// first write.
func Open(dir string, opts OpenOptions) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		file: store.NewFile[Task](filepath.Join(dir, TasksFile)),
		now:  now,
	}
}

func (s *Store) readTasks() ([]Task, error) {
	tasks, err := s.file.Read()
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return tasks, nil
}

// ListTasks returns the user's tasks, newest first.
func (s *Store) ListTasks(userID string) ([]Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}

	var result []Task
	for _, t := range tasks {
		if t.UserID != userID {
			continue
		}
		result = append(result, t)
	}
	SortNewestFirst(result)
	return result, nil
}

// GetTask returns the task whose ID starts with id.
func (s *Store) GetTask(id string) (*Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}

	resolved, err := NewIDIndex(tasks).Resolve(id)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == resolved {
			found := tasks[i]
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// CreateTask creates a new pending task with the given title.
func (s *Store) CreateTask(userID, title string, opts CreateOptions) (*Task, error) {
	created, err := New(userID, title, opts, s.now())
	if err != nil {
		return nil, err
	}

	err = s.file.Update(func(tasks []Task) ([]Task, error) {
		return append(tasks, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}

	return &created, nil
}

// UpdateTask applies opts to the task whose ID starts with id and returns
// the stored result.
func (s *Store) UpdateTask(id string, opts UpdateOptions) (*Task, error) {
	var updated Task
	err := s.file.Update(func(tasks []Task) ([]Task, error) {
		resolved, err := NewIDIndex(tasks).Resolve(id)
		if err != nil {
			return nil, err
		}
		for i := range tasks {
			if tasks[i].ID != resolved {
				continue
			}
			next := tasks[i].clone()
			if err := Apply(&next, opts, s.now()); err != nil {
				return nil, fmt.Errorf("update task %s: %w", resolved, err)
			}
			tasks[i] = next
			updated = next
			return tasks, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask permanently removes the task whose ID starts with id.
func (s *Store) DeleteTask(id string) error {
	return s.file.Update(func(tasks []Task) ([]Task, error) {
		resolved, err := NewIDIndex(tasks).Resolve(id)
		if err != nil {
			return nil, err
		}
		kept := tasks[:0]
		for _, t := range tasks {
			if t.ID != resolved {
				kept = append(kept, t)
			}
		}
		return kept, nil
	})
}

// SortNewestFirst orders tasks by creation time, newest first.
// Tasks created at the same instant keep their relative order.
func SortNewestFirst(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
