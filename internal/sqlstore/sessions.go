package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amonks/focus/internal/ids"
	"github.com/amonks/focus/session"
)

const sessionColumns = `id, user_id, task_id, session_type, start_time, end_time,
	duration, completed, planned_minutes, notes, updated_at`

func scanSession(row rowScanner) (session.Session, error) {
	var (
		item                session.Session
		taskID, endTime     sql.NullString
		typ, start, updated string
		duration, planned   sql.NullInt64
		completed           bool
	)
	err := row.Scan(&item.ID, &item.UserID, &taskID, &typ, &start, &endTime,
		&duration, &completed, &planned, &item.Notes, &updated)
	if err != nil {
		return session.Session{}, err
	}
	item.TaskID = taskID.String
	item.Type = session.Type(typ)
	item.Completed = completed
	item.Duration = parseIntPtr(duration)
	item.PlannedMinutes = parseIntPtr(planned)

	if item.StartTime, err = parseTime(start); err != nil {
		return session.Session{}, err
	}
	if item.UpdatedAt, err = parseTime(updated); err != nil {
		return session.Session{}, err
	}
	if item.EndTime, err = parseTimePtr(endTime); err != nil {
		return session.Session{}, err
	}
	return item, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// CreateSession stores a new session. Opening a second running session for
// the same user fails with session.ErrSessionAlreadyActive.
func (s *Store) CreateSession(userID string, opts session.CreateOptions) (*session.Session, error) {
	created, err := session.New(userID, opts, s.now())
	if err != nil {
		return nil, err
	}

	err = s.inTx(func(tx *sql.Tx) error {
		if created.IsOpen() {
			active, err := activeSession(tx, userID)
			if err == nil {
				return fmt.Errorf("%w: %s", session.ErrSessionAlreadyActive, active.ID)
			}
			if !errors.Is(err, session.ErrNoActiveSession) {
				return err
			}
		}

		_, err := tx.Exec(`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			created.ID, created.UserID, nullString(created.TaskID), string(created.Type),
			formatTime(created.StartTime), formatTimePtr(created.EndTime), intPtr(created.Duration),
			created.Completed, intPtr(created.PlannedMinutes), created.Notes, formatTime(created.UpdatedAt))
		if err != nil {
			return fmt.Errorf("write sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSession applies opts to the session whose ID starts with id.
func (s *Store) UpdateSession(id string, opts session.UpdateOptions) (*session.Session, error) {
	var updated session.Session
	err := s.inTx(func(tx *sql.Tx) error {
		item, err := getSession(tx, id)
		if err != nil {
			return err
		}
		if err := session.Apply(&item, opts, s.now()); err != nil {
			return fmt.Errorf("update session %s: %w", item.ID, err)
		}

		_, err = tx.Exec(`UPDATE sessions SET task_id = ?, end_time = ?, duration = ?, completed = ?,
			notes = ?, updated_at = ? WHERE id = ?`,
			nullString(item.TaskID), formatTimePtr(item.EndTime), intPtr(item.Duration), item.Completed,
			item.Notes, formatTime(item.UpdatedAt), item.ID)
		if err != nil {
			return fmt.Errorf("write sessions: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetSession returns the session whose ID starts with id.
func (s *Store) GetSession(id string) (*session.Session, error) {
	item, err := getSession(s.db, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func getSession(q queryer, id string) (session.Session, error) {
	sessionIDs, err := selectIDs(q, "sessions")
	if err != nil {
		return session.Session{}, fmt.Errorf("read sessions: %w", err)
	}
	resolved, found, ambiguous := ids.MatchPrefix(ids.NormalizeUniqueIDs(sessionIDs), id)
	if !found {
		return session.Session{}, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
	}
	if ambiguous {
		return session.Session{}, fmt.Errorf("%w: %s", session.ErrAmbiguousSessionIDPrefix, id)
	}

	item, err := scanSession(q.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, resolved))
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("read session %s: %w", resolved, err)
	}
	return item, nil
}

// ListSessions returns the user's sessions that started at or after since,
// most recent first. A zero since returns every session.
func (s *Store) ListSessions(userID string, since time.Time) ([]session.Session, error) {
	rows, err := s.db.Query(`SELECT `+sessionColumns+` FROM sessions WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	defer rows.Close()

	var result []session.Session
	for rows.Next() {
		item, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("read sessions: %w", err)
		}
		if !since.IsZero() && item.StartTime.Before(since) {
			continue
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}

	session.SortMostRecentFirst(result)
	return result, nil
}

// ActiveSession returns the user's running session.
func (s *Store) ActiveSession(userID string) (*session.Session, error) {
	item, err := activeSession(s.db, userID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func activeSession(q queryer, userID string) (session.Session, error) {
	item, err := scanSession(q.QueryRow(`SELECT `+sessionColumns+` FROM sessions
		WHERE user_id = ? AND completed = 0 ORDER BY rowid LIMIT 1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, session.ErrNoActiveSession
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("read sessions: %w", err)
	}
	return item, nil
}
