package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/amonks/focus/task"
)

const taskColumns = `id, user_id, title, description, status, created_at, updated_at,
	started_at, completed_at, due_date, estimated_duration, tags`

func scanTask(row rowScanner) (task.Task, error) {
	var (
		item                            task.Task
		status, createdAt, updatedAt    string
		startedAt, completedAt, dueDate sql.NullString
		estimate                        sql.NullInt64
		tags                            sql.NullString
	)
	err := row.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &status,
		&createdAt, &updatedAt, &startedAt, &completedAt, &dueDate, &estimate, &tags)
	if err != nil {
		return task.Task{}, err
	}
	item.Status = task.Status(status)
	item.EstimatedMinutes = parseIntPtr(estimate)

	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return task.Task{}, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return task.Task{}, err
	}
	if item.StartedAt, err = parseTimePtr(startedAt); err != nil {
		return task.Task{}, err
	}
	if item.CompletedAt, err = parseTimePtr(completedAt); err != nil {
		return task.Task{}, err
	}
	if item.DueDate, err = parseTimePtr(dueDate); err != nil {
		return task.Task{}, err
	}
	if item.Tags, err = decodeTags(tags); err != nil {
		return task.Task{}, err
	}
	return item, nil
}

// ListTasks returns the user's tasks, newest first.
func (s *Store) ListTasks(userID string) ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		item, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("read tasks: %w", err)
		}
		tasks = append(tasks, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	task.SortNewestFirst(tasks)
	return tasks, nil
}

// GetTask returns the task whose ID starts with id.
func (s *Store) GetTask(id string) (*task.Task, error) {
	item, err := getTask(s.db, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func resolveTaskID(q queryer, id string) (string, error) {
	taskIDs, err := selectIDs(q, "tasks")
	if err != nil {
		return "", fmt.Errorf("read tasks: %w", err)
	}
	return task.NewIDIndexFromIDs(taskIDs).Resolve(id)
}

func getTask(q queryer, id string) (task.Task, error) {
	resolved, err := resolveTaskID(q, id)
	if err != nil {
		return task.Task{}, err
	}
	item, err := scanTask(q.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, resolved))
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("read task %s: %w", resolved, err)
	}
	return item, nil
}

// CreateTask creates a new pending task with the given title.
func (s *Store) CreateTask(userID, title string, opts task.CreateOptions) (*task.Task, error) {
	created, err := task.New(userID, title, opts, s.now())
	if err != nil {
		return nil, err
	}
	tags, err := encodeTags(created.Tags)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.UserID, created.Title, created.Description, string(created.Status),
		formatTime(created.CreatedAt), formatTime(created.UpdatedAt),
		formatTimePtr(created.StartedAt), formatTimePtr(created.CompletedAt), formatTimePtr(created.DueDate),
		intPtr(created.EstimatedMinutes), tags)
	if err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}
	return &created, nil
}

// UpdateTask applies opts to the task whose ID starts with id.
func (s *Store) UpdateTask(id string, opts task.UpdateOptions) (*task.Task, error) {
	var updated task.Task
	err := s.inTx(func(tx *sql.Tx) error {
		item, err := getTask(tx, id)
		if err != nil {
			return err
		}
		if err := task.Apply(&item, opts, s.now()); err != nil {
			return fmt.Errorf("update task %s: %w", item.ID, err)
		}
		tags, err := encodeTags(item.Tags)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ?,
			started_at = ?, completed_at = ?, due_date = ?, estimated_duration = ?, tags = ?
			WHERE id = ?`,
			item.Title, item.Description, string(item.Status), formatTime(item.UpdatedAt),
			formatTimePtr(item.StartedAt), formatTimePtr(item.CompletedAt), formatTimePtr(item.DueDate),
			intPtr(item.EstimatedMinutes), tags, item.ID)
		if err != nil {
			return fmt.Errorf("write tasks: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask permanently removes the task whose ID starts with id.
func (s *Store) DeleteTask(id string) error {
	return s.inTx(func(tx *sql.Tx) error {
		resolved, err := resolveTaskID(tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, resolved); err != nil {
			return fmt.Errorf("write tasks: %w", err)
		}
		return nil
	})
}
