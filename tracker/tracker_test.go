package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/amonks/focus/session"
	"github.com/amonks/focus/task"
)

var now = time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)

type fakeTaskRepo struct {
	tasks  []task.Task
	err    error
	userID string
}

func (f *fakeTaskRepo) ListTasks(userID string) ([]task.Task, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

type fakeSessionRepo struct {
	sessions []session.Session
	err      error
	since    time.Time
}

func (f *fakeSessionRepo) ListSessions(userID string, since time.Time) ([]session.Session, error) {
	f.since = since
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

type recordingLogger struct {
	ranked   []RankedLog
	reported []ReportedLog
	degraded []DegradedLog
}

func (r *recordingLogger) Ranked(entry RankedLog)     { r.ranked = append(r.ranked, entry) }
func (r *recordingLogger) Reported(entry ReportedLog) { r.reported = append(r.reported, entry) }
func (r *recordingLogger) Degraded(entry DegradedLog) { r.degraded = append(r.degraded, entry) }

func TestRank_OrdersByScore(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "newest", UserID: "u", Status: task.StatusPending, CreatedAt: now.Add(-time.Hour)},
		{ID: "done", UserID: "u", Status: task.StatusCompleted, CreatedAt: now.Add(-2 * time.Hour), CompletedAt: task.TimePtr(now)},
		{ID: "tie", UserID: "u", Status: task.StatusPending, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "overdue", UserID: "u", Status: task.StatusPending, CreatedAt: now.Add(-4 * time.Hour), DueDate: task.TimePtr(now.Add(-48 * time.Hour))},
	}}
	logger := &recordingLogger{}
	service := NewRankingService(repo, RankingOptions{Logger: logger})

	ranked, err := service.Rank("u", now, RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if repo.userID != "u" {
		t.Errorf("ListTasks called with %q", repo.userID)
	}

	want := []string{"overdue", "newest", "tie", "done"}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(ranked))
	}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, ranked[i].ID, id)
		}
	}
	if ranked[0].PriorityScore != 100 {
		t.Errorf("overdue score = %v, want 100", ranked[0].PriorityScore)
	}
	if repo.tasks[0].PriorityScore != 0 {
		t.Error("Rank should not modify repository records")
	}
	if len(logger.ranked) != 1 || logger.ranked[0].Returned != 4 {
		t.Errorf("ranked log = %+v", logger.ranked)
	}
}

func TestRank_Options(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "a", Status: task.StatusPending, CreatedAt: now, Tags: []string{"work"}},
		{ID: "b", Status: task.StatusCompleted, CreatedAt: now, CompletedAt: task.TimePtr(now), Tags: []string{"work"}},
		{ID: "c", Status: task.StatusInProgress, CreatedAt: now},
		{ID: "d", Status: task.StatusPending, CreatedAt: now, Tags: []string{"work"}},
	}}
	service := NewRankingService(repo, RankingOptions{})

	ranked, err := service.Rank("u", now, RankOptions{HideCompleted: true, Tag: "work", Limit: 1})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != 1 || ranked[0].ID != "a" {
		t.Errorf("ranked = %v, want [a]", ranked)
	}

	if _, err := service.Rank("u", now, RankOptions{Limit: -1}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative limit, got %v", err)
	}
}

func TestRank_Empty(t *testing.T) {
	service := NewRankingService(&fakeTaskRepo{}, RankingOptions{})
	ranked, err := service.Rank("u", now, RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %v", ranked)
	}
}

func TestRank_MissingUserID(t *testing.T) {
	service := NewRankingService(&fakeTaskRepo{}, RankingOptions{})
	_, err := service.Rank("", now, RankOptions{})
	if !errors.Is(err, ErrMissingUserID) || !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrMissingUserID wrapping ErrValidation, got %v", err)
	}
}

func TestRank_RepositoryErrorUnchanged(t *testing.T) {
	repoErr := errors.New("disk on fire")
	service := NewRankingService(&fakeTaskRepo{err: repoErr}, RankingOptions{})
	if _, err := service.Rank("u", now, RankOptions{}); err != repoErr {
		t.Errorf("expected repository error unchanged, got %v", err)
	}
}

func TestRank_SparseRecordsDegrade(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "bare"},
		{ID: "weird", Status: task.StatusPending, CreatedAt: now.Add(time.Hour), EstimatedMinutes: task.MinutesPtr(-3)},
	}}
	logger := &recordingLogger{}
	service := NewRankingService(repo, RankingOptions{Logger: logger})

	ranked, err := service.Rank("u", now, RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for _, item := range ranked {
		if item.PriorityScore < 0 || item.PriorityScore > 100 {
			t.Errorf("score %v out of range for %s", item.PriorityScore, item.ID)
		}
	}
	if len(logger.degraded) != 2 {
		t.Errorf("expected 2 degraded records, got %+v", logger.degraded)
	}
}

func completedSession(start time.Time, minutes int) session.Session {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return session.Session{
		ID:        start.Format(time.RFC3339),
		Type:      session.TypeFocus,
		StartTime: start,
		EndTime:   &end,
		Duration:  session.MinutesPtr(minutes),
		Completed: true,
	}
}

func TestReport(t *testing.T) {
	today := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	derived := completedSession(today.Add(2*time.Hour), 20)
	derived.Duration = nil

	repo := &fakeSessionRepo{sessions: []session.Session{
		completedSession(today, 30),
		{Type: session.TypeFocus, StartTime: today.Add(time.Hour), Duration: session.MinutesPtr(25)},
		derived,
		completedSession(today.AddDate(0, 0, -1), 45),
		completedSession(today.AddDate(0, 0, -2), 45),
	}}
	logger := &recordingLogger{}
	service := NewProgressService(repo, ProgressOptions{Logger: logger, GoalMinutes: 100, HistoryDays: 3})

	report, err := service.Report("u", now)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !repo.since.IsZero() {
		t.Errorf("expected all sessions to be listed, got since=%v", repo.since)
	}

	if report.Stats.TotalMinutes != 50 {
		t.Errorf("total minutes = %d, want 50", report.Stats.TotalMinutes)
	}
	if report.Stats.CompletedSessions != 4 {
		t.Errorf("completed sessions = %d, want 4", report.Stats.CompletedSessions)
	}
	if report.Stats.StreakDays != 3 {
		t.Errorf("streak = %d, want 3", report.Stats.StreakDays)
	}
	if report.Progress.GoalMinutes != 100 || report.Progress.RemainingMinutes != 50 || report.Progress.Fraction != 0.5 {
		t.Errorf("progress = %+v", report.Progress)
	}
	if len(report.History) != 3 || report.History[2].Minutes != 50 {
		t.Errorf("history = %+v", report.History)
	}
	if len(logger.degraded) != 1 || logger.degraded[0].Notes[0] != "duration derived" {
		t.Errorf("degraded = %+v", logger.degraded)
	}
	if len(logger.reported) != 1 || logger.reported[0].Sessions != 5 {
		t.Errorf("reported = %+v", logger.reported)
	}
}

func TestReport_EmptyIsZero(t *testing.T) {
	service := NewProgressService(&fakeSessionRepo{}, ProgressOptions{})
	report, err := service.Report("u", now)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Stats.TotalMinutes != 0 || report.Stats.CompletedSessions != 0 || report.Stats.StreakDays != 0 {
		t.Errorf("stats = %+v, want zeros", report.Stats)
	}
	if report.Progress.GoalMinutes != 240 || report.Progress.RemainingMinutes != 240 {
		t.Errorf("progress = %+v, want default goal", report.Progress)
	}
	if len(report.History) != DefaultHistoryDays {
		t.Errorf("history length = %d, want %d", len(report.History), DefaultHistoryDays)
	}
}

func TestReport_Errors(t *testing.T) {
	service := NewProgressService(&fakeSessionRepo{}, ProgressOptions{})
	if _, err := service.Report("", now); !errors.Is(err, ErrMissingUserID) {
		t.Errorf("expected ErrMissingUserID, got %v", err)
	}

	repoErr := errors.New("offline")
	service = NewProgressService(&fakeSessionRepo{err: repoErr}, ProgressOptions{})
	if _, err := service.Report("u", now); err != repoErr {
		t.Errorf("expected repository error unchanged, got %v", err)
	}
}

func TestRank_EmptyIsNotNil(t *testing.T) {
	service := NewRankingService(&fakeTaskRepo{tasks: []task.Task{
		{ID: "done", Status: task.StatusCompleted, CreatedAt: now},
	}}, RankingOptions{})

	ranked, err := service.Rank("u", now, RankOptions{HideCompleted: true})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked == nil || len(ranked) != 0 {
		t.Errorf("expected empty non-nil ranking, got %#v", ranked)
	}
}
