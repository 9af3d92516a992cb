package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	panelLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	barFilledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	barEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	goalStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
)

const (
	barFilled     = "█"
	barEmpty      = "░"
	panelBarWidth = 30
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// HistoryBar is one day in the stats history.
type HistoryBar struct {
	Label   string
	Minutes int
}

// StatsView is the data shown in the stats panel.
type StatsView struct {
	TodayMinutes      int
	GoalMinutes       int
	Fraction          float64
	RemainingMinutes  int
	GoalReached       bool
	CompletedSessions int
	StreakDays        int
	History           []HistoryBar
}

// ProgressBar renders fraction (0..1) as a bar width cells wide.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))
	return barFilledStyle.Render(strings.Repeat(barFilled, filled)) +
		barEmptyStyle.Render(strings.Repeat(barEmpty, width-filled))
}

// Sparkline renders values as block characters scaled to the largest value.
// Zero renders as a dot.
func Sparkline(values []int) string {
	peak := 0
	for _, value := range values {
		peak = max(peak, value)
	}

	var builder strings.Builder
	for _, value := range values {
		if value <= 0 || peak == 0 {
			builder.WriteRune('·')
			continue
		}
		level := (value*len(sparkLevels) - 1) / peak
		builder.WriteRune(sparkLevels[min(level, len(sparkLevels)-1)])
	}
	return builder.String()
}

// GoalMessage describes progress toward the daily goal.
func GoalMessage(view StatsView) string {
	if view.GoalReached {
		return "Daily goal reached!"
	}
	return fmt.Sprintf("%d minutes left to reach your goal", view.RemainingMinutes)
}

// RenderStats renders the stats panel.
func RenderStats(view StatsView) string {
	label := func(text string) string {
		return panelLabelStyle.Render(fmt.Sprintf("%-10s", text))
	}
	plural := func(n int, word string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, word)
		}
		return fmt.Sprintf("%d %ss", n, word)
	}

	message := GoalMessage(view)
	if view.GoalReached {
		message = goalStyle.Render(message)
	}

	lines := []string{
		panelTitleStyle.Render("Daily progress"),
		label("Today") + fmt.Sprintf("%d / %d min", view.TodayMinutes, view.GoalMinutes),
		label("") + ProgressBar(view.Fraction, panelBarWidth),
		label("") + message,
		label("Sessions") + plural(view.CompletedSessions, "session") + " completed",
		label("Streak") + plural(view.StreakDays, "day"),
	}

	if len(view.History) > 0 {
		values := make([]int, len(view.History))
		for i, bar := range view.History {
			values[i] = bar.Minutes
		}
		first, last := view.History[0].Label, view.History[len(view.History)-1].Label
		lines = append(lines, label("History")+Sparkline(values)+"  "+panelLabelStyle.Render(first+" to "+last))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}
