package tracker

import (
	"time"

	"github.com/amonks/focus/session"
	"github.com/amonks/focus/stats"
)

// DefaultHistoryDays is the number of days in a report's history.
const DefaultHistoryDays = 7

// Report is the stats panel for one user.
type Report struct {
	Stats    stats.DailyStats `json:"stats" yaml:"stats"`
	Progress stats.Progress   `json:"progress" yaml:"progress"`
	History  []stats.DayTotal `json:"history" yaml:"history"`
}

// ProgressService summarizes a user's focus sessions.
type ProgressService struct {
	sessions    SessionRepository
	logger      Logger
	goalMinutes int
	historyDays int
}

// ProgressOptions configures a ProgressService.
type ProgressOptions struct {
	Logger Logger
	// GoalMinutes is the daily focus goal. Zero means stats.DefaultGoalMinutes.
	GoalMinutes int
	// HistoryDays is the length of the report's history. Zero means
	// DefaultHistoryDays.
	HistoryDays int
}

// NewProgressService returns a service reading from sessions.
func NewProgressService(sessions SessionRepository, opts ProgressOptions) *ProgressService {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	goal := opts.GoalMinutes
	if goal <= 0 {
		goal = stats.DefaultGoalMinutes
	}
	days := opts.HistoryDays
	if days <= 0 {
		days = DefaultHistoryDays
	}
	return &ProgressService{sessions: sessions, logger: logger, goalMinutes: goal, historyDays: days}
}

// Report computes the user's stats as of now. Day boundaries follow
// now.Location().
func (s *ProgressService) Report(userID string, now time.Time) (Report, error) {
	if err := validateUserID(userID); err != nil {
		return Report{}, err
	}

	sessions, err := s.sessions.ListSessions(userID, time.Time{})
	if err != nil {
		return Report{}, err
	}

	for _, item := range sessions {
		if !item.Completed {
			continue
		}
		if _, source := session.Minutes(item); source != session.SourceStored {
			s.logger.Degraded(DegradedLog{
				Kind:  "session",
				ID:    item.ID,
				Notes: []string{"duration " + source.String()},
			})
		}
	}

	daily := stats.Aggregate(sessions, now)
	report := Report{
		Stats:    daily,
		Progress: stats.ProgressToward(daily.TotalMinutes, s.goalMinutes),
		History:  stats.History(sessions, now, s.historyDays),
	}

	s.logger.Reported(ReportedLog{UserID: userID, Sessions: len(sessions), Stats: daily})
	return report, nil
}
