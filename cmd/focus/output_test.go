package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/amonks/focus/task"
)

func TestOutputFormat_Set(t *testing.T) {
	var format outputFormat
	if format.String() != "table" {
		t.Errorf("default format = %q", format.String())
	}
	if err := format.Set("yaml"); err != nil || format != formatYAML {
		t.Errorf("Set(yaml) = %v, format %q", err, format)
	}

	err := format.Set("xml")
	if !errors.Is(err, errInvalidFormat) {
		t.Fatalf("expected errInvalidFormat, got %v", err)
	}
	if want := `invalid format: "xml" (valid: table, json, yaml)`; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestWriteStructured(t *testing.T) {
	item := task.Task{ID: "abc12345", Title: "Write report", Status: task.StatusPending}

	var buf bytes.Buffer
	handled, err := writeStructured(&buf, formatYAML, []task.Task{item})
	if err != nil || !handled {
		t.Fatalf("writeStructured(yaml) = %v, %v", handled, err)
	}
	for _, want := range []string{"- id: abc12345", "  title: Write report", "  status: pending"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("yaml missing %q:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "priority_score") {
		t.Errorf("zero priority score should be omitted:\n%s", buf.String())
	}

	buf.Reset()
	handled, err = writeStructured(&buf, formatJSON, item)
	if err != nil || !handled {
		t.Fatalf("writeStructured(json) = %v, %v", handled, err)
	}
	if !strings.Contains(buf.String(), `"title": "Write report"`) {
		t.Errorf("json missing title:\n%s", buf.String())
	}

	buf.Reset()
	handled, err = writeStructured(&buf, formatTable, item)
	if err != nil || handled || buf.Len() != 0 {
		t.Errorf("table format should not be handled: %v, %v, %q", handled, err, buf.String())
	}
}
