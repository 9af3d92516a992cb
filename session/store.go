package session

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/amonks/focus/internal/ids"
	"github.com/amonks/focus/internal/store"
)

// SessionsFile is the name of the JSONL file containing sessions.
const SessionsFile = "sessions.jsonl"

// Store is a session repository backed by a JSONL file.
type Store struct {
	file *store.File[Session]
	now  func() time.Time
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Now supplies timestamps. If nil, time.Now is used.
	Now func() time.Time
}

// Open returns a session store rooted at dir.
func Open(dir string, opts OpenOptions) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		file: store.NewFile[Session](filepath.Join(dir, SessionsFile)),
		now:  now,
	}
}

func (s *Store) readSessions() ([]Session, error) {
	items, err := s.file.Read()
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return items, nil
}

// CreateSession stores a new session. Opening a second running session for
// the same user fails with ErrSessionAlreadyActive.
func (s *Store) CreateSession(userID string, opts CreateOptions) (*Session, error) {
	created, err := New(userID, opts, s.now())
	if err != nil {
		return nil, err
	}

	err = s.file.Update(func(items []Session) ([]Session, error) {
		if created.IsOpen() {
			if active := findActive(items, userID); active != nil {
				return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyActive, active.ID)
			}
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSession applies opts to the session whose ID starts with id.
func (s *Store) UpdateSession(id string, opts UpdateOptions) (*Session, error) {
	var updated Session
	err := s.file.Update(func(items []Session) ([]Session, error) {
		resolved, err := resolveID(items, id)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if items[i].ID != resolved {
				continue
			}
			next := items[i].clone()
			if err := Apply(&next, opts, s.now()); err != nil {
				return nil, fmt.Errorf("update session %s: %w", resolved, err)
			}
			items[i] = next
			updated = next
			return items, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetSession returns the session whose ID starts with id.
func (s *Store) GetSession(id string) (*Session, error) {
	items, err := s.readSessions()
	if err != nil {
		return nil, err
	}
	resolved, err := resolveID(items, id)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == resolved {
			found := items[i]
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

// ListSessions returns the user's sessions that started at or after since,
// most recent first. A zero since returns every session.
func (s *Store) ListSessions(userID string, since time.Time) ([]Session, error) {
	items, err := s.readSessions()
	if err != nil {
		return nil, err
	}

	var result []Session
	for _, item := range items {
		if item.UserID != userID {
			continue
		}
		if !since.IsZero() && item.StartTime.Before(since) {
			continue
		}
		result = append(result, item)
	}
	SortMostRecentFirst(result)
	return result, nil
}

// ActiveSession returns the user's running session.
func (s *Store) ActiveSession(userID string) (*Session, error) {
	items, err := s.readSessions()
	if err != nil {
		return nil, err
	}
	active := findActive(items, userID)
	if active == nil {
		return nil, ErrNoActiveSession
	}
	found := *active
	return &found, nil
}

// SortMostRecentFirst orders sessions by start time, most recent first.
func SortMostRecentFirst(items []Session) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime.After(items[j].StartTime)
	})
}

func findActive(items []Session, userID string) *Session {
	for i := range items {
		if items[i].UserID == userID && items[i].IsOpen() {
			return &items[i]
		}
	}
	return nil
}

func resolveID(items []Session, prefix string) (string, error) {
	sessionIDs := make([]string, 0, len(items))
	for _, item := range items {
		sessionIDs = append(sessionIDs, item.ID)
	}
	match, found, ambiguous := ids.MatchPrefix(ids.NormalizeUniqueIDs(sessionIDs), prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousSessionIDPrefix, prefix)
	}
	return match, nil
}
