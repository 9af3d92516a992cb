package tracker

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/stats"
	"github.com/charmbracelet/lipgloss"
)

const logIndent = 4

// Logger receives service events.
type Logger interface {
	Ranked(RankedLog)
	Reported(ReportedLog)
	Degraded(DegradedLog)
}

// RankedLog describes a completed ranking.
type RankedLog struct {
	UserID   string
	Total    int
	Returned int
}

// ReportedLog describes a completed progress report.
type ReportedLog struct {
	UserID   string
	Sessions int
	Stats    stats.DailyStats
}

// DegradedLog describes a record that was scored or counted with defaults.
type DegradedLog struct {
	// Kind is "task" or "session".
	Kind  string
	ID    string
	Notes []string
}

type noopLogger struct{}

func (noopLogger) Ranked(RankedLog)     {}
func (noopLogger) Reported(ReportedLog) {}
func (noopLogger) Degraded(DegradedLog) {}

// ConsoleLogger writes formatted log output.
type ConsoleLogger struct {
	writer      io.Writer
	headerStyle lipgloss.Style
	warnStyle   lipgloss.Style
}

// NewConsoleLogger builds a styled logger for interactive output.
func NewConsoleLogger(writer io.Writer) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:      writer,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		warnStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}
}

// Ranked logs a ranking summary.
func (logger *ConsoleLogger) Ranked(entry RankedLog) {
	if logger == nil {
		return
	}
	logger.writeLine(logger.headerStyle.Render("ranked:"),
		fmt.Sprintf("%d of %d tasks for %s", entry.Returned, entry.Total, entry.UserID))
}

// Reported logs a stats summary.
func (logger *ConsoleLogger) Reported(entry ReportedLog) {
	if logger == nil {
		return
	}
	logger.writeLine(logger.headerStyle.Render("reported:"),
		fmt.Sprintf("%d sessions for %s: %d min today, %d completed, %d day streak",
			entry.Sessions, entry.UserID,
			entry.Stats.TotalMinutes, entry.Stats.CompletedSessions, entry.Stats.StreakDays))
}

// Degraded logs a record that was handled with defaults.
func (logger *ConsoleLogger) Degraded(entry DegradedLog) {
	if logger == nil {
		return
	}
	logger.writeLine(logger.warnStyle.Render("degraded:"),
		fmt.Sprintf("%s %s: %s", entry.Kind, entry.ID, strings.Join(entry.Notes, "; ")))
}

func (logger *ConsoleLogger) writeLine(label, body string) {
	fmt.Fprintln(logger.writer, label)
	fmt.Fprintln(logger.writer, ui.WrapIndented(body, ui.LineWidth, logIndent))
}
