package task

import (
	"fmt"
	"time"

	"github.com/amonks/focus/internal/ids"
)

// GenerateID creates an 8-character base32 ID from the owner, title, and creation time.
func GenerateID(userID, title string, timestamp time.Time) string {
	return ids.GenerateWithTimestamp(timestamp, ids.DefaultLength, userID, title)
}

// IDIndex indexes task IDs for prefix matching and display.
type IDIndex struct {
	ids []string
}

// NewIDIndex builds an IDIndex from a slice of tasks.
func NewIDIndex(tasks []Task) IDIndex {
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	return NewIDIndexFromIDs(taskIDs)
}

// NewIDIndexFromIDs builds an IDIndex from raw IDs.
func NewIDIndexFromIDs(taskIDs []string) IDIndex {
	return IDIndex{ids: ids.NormalizeUniqueIDs(taskIDs)}
}

// Resolve returns the full task ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrTaskNotFound
	}

	match, found, ambiguous := ids.MatchPrefix(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousTaskIDPrefix, prefix)
	}

	return match, nil
}

// PrefixLengths returns the shortest unique prefix length for each ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengths(index.ids)
}
