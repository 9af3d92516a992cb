package tracker

import (
	"fmt"
	"time"

	"github.com/amonks/focus/priority"
	"github.com/amonks/focus/task"
)

// RankOptions filters a ranking.
type RankOptions struct {
	// Limit caps the number of returned tasks. Zero means no limit.
	Limit int
	// HideCompleted drops completed tasks.
	HideCompleted bool
	// Tag keeps only tasks carrying the tag.
	Tag string
}

// RankingService orders a user's tasks by priority score.
type RankingService struct {
	tasks  TaskRepository
	logger Logger
}

// RankingOptions configures a RankingService.
type RankingOptions struct {
	Logger Logger
}

// NewRankingService returns a service reading from tasks.
func NewRankingService(tasks TaskRepository, opts RankingOptions) *RankingService {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &RankingService{tasks: tasks, logger: logger}
}

// Rank returns the user's tasks with PriorityScore set, highest first.
// Tasks with equal scores keep the repository's order.
func (s *RankingService) Rank(userID string, now time.Time, opts RankOptions) ([]task.Task, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", ErrValidation, opts.Limit)
	}

	tasks, err := s.tasks.ListTasks(userID)
	if err != nil {
		return nil, err
	}

	filtered := make([]task.Task, 0, len(tasks))
	for _, r := range priority.RankExplained(tasks, now) {
		if notes := r.Breakdown.Notes; len(notes) > 0 {
			s.logger.Degraded(DegradedLog{Kind: "task", ID: r.Task.ID, Notes: noteStrings(notes)})
		}
		item := r.Task
		if opts.HideCompleted && item.Status == task.StatusCompleted {
			continue
		}
		if opts.Tag != "" && !hasTag(item, opts.Tag) {
			continue
		}
		filtered = append(filtered, item)
	}
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	s.logger.Ranked(RankedLog{UserID: userID, Total: len(tasks), Returned: len(filtered)})
	return filtered, nil
}

func hasTag(item task.Task, tag string) bool {
	for _, candidate := range item.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

func noteStrings(notes []priority.Note) []string {
	out := make([]string, len(notes))
	for i, note := range notes {
		out[i] = string(note)
	}
	return out
}
