package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/amonks/focus/task"
)

// DueLayout is the date format used for due dates in the editor.
const DueLayout = "2006-01-02"

// TaskData is the data rendered into the editable TOML document.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	ID       string
	Title    string
	// Status is only shown for updates.
	Status string
	// Due is a DueLayout date, or empty for none.
	Due string
	// Estimate is in minutes; zero means none.
	Estimate    int
	Tags        []string
	Description string
}

// DataFromTask creates TaskData from an existing task, formatting dates in loc.
func DataFromTask(t *task.Task, loc *time.Location) TaskData {
	data := TaskData{
		IsUpdate:    true,
		ID:          t.ID,
		Title:       t.Title,
		Status:      string(t.Status),
		Tags:        t.Tags,
		Description: t.Description,
	}
	if t.DueDate != nil {
		data.Due = t.DueDate.In(loc).Format(DueLayout)
	}
	if t.EstimatedMinutes != nil {
		data.Estimate = *t.EstimatedMinutes
	}
	return data
}

var taskTemplate = template.Must(template.New("task").Funcs(template.FuncMap{
	"tags": func(tags []string) string {
		quoted := make([]string, len(tags))
		for i, tag := range tags {
			quoted[i] = fmt.Sprintf("%q", tag)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	},
}).Parse(`title = {{ printf "%q" .Title }}
{{- if .IsUpdate }}
status = {{ printf "%q" .Status }} # pending, in_progress, completed
{{- end }}
due = {{ printf "%q" .Due }} # YYYY-MM-DD, empty for none
estimate = {{ .Estimate }} # minutes, 0 for none
tags = {{ tags .Tags }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data as a TOML document for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask is the result of editing a task document.
type ParsedTask struct {
	Title       string   `toml:"title"`
	Status      *string  `toml:"status"`
	Due         string   `toml:"due"`
	Estimate    int      `toml:"estimate"`
	Tags        []string `toml:"tags"`
	Description string   `toml:"-"`

	DueDate *time.Time `toml:"-"`
}

// ParseTaskTOML parses an edited task document. Due dates are read as
// midnight in loc.
func ParseTaskTOML(content string, loc *time.Location) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Title = internalstrings.NormalizeWhitespace(parsed.Title)
	parsed.Description = internalstrings.TrimTrailingNewlines(strings.TrimLeft(body, "\n"))

	if err := task.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if parsed.Status != nil {
		status, err := task.ParseStatus(*parsed.Status)
		if err != nil {
			return nil, err
		}
		value := string(status)
		parsed.Status = &value
	}
	if parsed.Estimate < 0 {
		return nil, fmt.Errorf("%w: got %d", task.ErrNegativeEstimate, parsed.Estimate)
	}
	if due := strings.TrimSpace(parsed.Due); due != "" {
		date, err := time.ParseInLocation(DueLayout, due, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: use YYYY-MM-DD", due)
		}
		parsed.DueDate = &date
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

// EditTask opens the editor with data and returns the parsed result.
func EditTask(data TaskData, loc *time.Location) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "focus-task-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}
	return ParseTaskTOML(string(edited), loc)
}

func (p *ParsedTask) estimate() *int {
	if p.Estimate == 0 {
		return nil
	}
	return task.MinutesPtr(p.Estimate)
}

// ToCreateOptions converts a ParsedTask to task.CreateOptions.
func (p *ParsedTask) ToCreateOptions() task.CreateOptions {
	return task.CreateOptions{
		Description:      p.Description,
		DueDate:          p.DueDate,
		EstimatedMinutes: p.estimate(),
		Tags:             p.Tags,
	}
}

// ToUpdateOptions converts a ParsedTask to task.UpdateOptions. Every
// field is written, so clearing a value in the editor clears it on the task.
func (p *ParsedTask) ToUpdateOptions() task.UpdateOptions {
	tags := p.Tags
	opts := task.UpdateOptions{
		Title:            &p.Title,
		Description:      &p.Description,
		DueDate:          p.DueDate,
		EstimatedMinutes: p.estimate(),
		Tags:             &tags,
		ClearDueDate:     p.DueDate == nil,
		ClearEstimate:    p.Estimate == 0,
	}
	if p.Status != nil {
		status := task.Status(*p.Status)
		opts.Status = &status
	}
	return opts
}
