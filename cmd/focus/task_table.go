package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/focus/internal/markdown"
	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/priority"
	"github.com/amonks/focus/task"
)

func formatTaskTable(tasks []task.Task, prefixLengths map[string]int, highlight func(string, int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "DUE", "EST", "AGE", "TITLE"}, len(tasks)).AlignRight(3, 4)

	for _, t := range tasks {
		builder.AddRow(
			highlight(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			t.Status.Label(),
			ui.FormatDue(t.DueDate, now),
			ui.FormatMinutesPtr(t.EstimatedMinutes),
			formatTaskAge(t, now),
			t.Title,
		)
	}

	return builder.String()
}

func formatRankTable(tasks []task.Task, prefixLengths map[string]int, highlight func(string, int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"#", "SCORE", "ID", "STATUS", "DUE", "EST", "TITLE"}, len(tasks)).AlignRight(0, 1, 5)

	for i, t := range tasks {
		builder.AddRow(
			fmt.Sprintf("%d", i+1),
			formatScore(t.PriorityScore),
			highlight(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			t.Status.Label(),
			ui.FormatDue(t.DueDate, now),
			ui.FormatMinutesPtr(t.EstimatedMinutes),
			t.Title,
		)
	}

	return builder.String()
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

func formatTaskAge(item task.Task, now time.Time) string {
	age, ok := task.AgeData(item, now)
	if !ok {
		return "-"
	}
	return ui.FormatDurationShort(age)
}

func formatTaskDetail(t task.Task, breakdown priority.Breakdown, highlight func(string) string, now time.Time, loc *time.Location, width int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID:        %s\n", highlight(t.ID))
	fmt.Fprintf(&b, "Title:     %s\n", t.Title)
	fmt.Fprintf(&b, "Status:    %s\n", t.Status.Label())
	fmt.Fprintf(&b, "Created:   %s (%s)\n", ui.FormatClock(t.CreatedAt, loc), ui.FormatTimeAgo(t.CreatedAt, now))
	fmt.Fprintf(&b, "Updated:   %s\n", ui.FormatClock(t.UpdatedAt, loc))
	if t.StartedAt != nil {
		fmt.Fprintf(&b, "Started:   %s\n", ui.FormatClock(*t.StartedAt, loc))
	}
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "Completed: %s\n", ui.FormatClock(*t.CompletedAt, loc))
	}
	if worked, ok := task.DurationData(t, now); ok {
		fmt.Fprintf(&b, "Worked:    %s\n", ui.FormatDurationShort(worked))
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "Due:       %s (%s)\n", ui.FormatClock(*t.DueDate, loc), ui.FormatDue(t.DueDate, now))
	}
	fmt.Fprintf(&b, "Estimate:  %s\n", ui.FormatMinutesPtr(t.EstimatedMinutes))
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:      %s\n", strings.Join(t.Tags, ", "))
	}

	fmt.Fprintf(&b, "Priority:  %s\n", formatBreakdown(breakdown))

	if t.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", markdown.RenderOrDash(t.Description, width))
	}
	return b.String()
}

// formatBreakdown renders "64.0 (status 50 + due 0 + effort 10 + age 4)".
func formatBreakdown(b priority.Breakdown) string {
	parts := fmt.Sprintf("status %g + due %g + effort %g + age %g", b.Status, b.Due, b.Effort, b.Age)
	out := fmt.Sprintf("%s (%s)", formatScore(b.Score), parts)
	if b.Raw != b.Score {
		out += fmt.Sprintf(", capped from %g", b.Raw)
	}
	if len(b.Notes) > 0 {
		notes := make([]string, len(b.Notes))
		for i, note := range b.Notes {
			notes[i] = string(note)
		}
		out += "; " + strings.Join(notes, "; ")
	}
	return out
}
