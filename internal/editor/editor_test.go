package editor

import (
	"reflect"
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		visual string
		editor string
		want   []string
	}{
		{"", "", []string{"vi"}},
		{"", "nano", []string{"nano"}},
		{"code --wait", "nano", []string{"code", "--wait"}},
		{"   ", "hx", []string{"hx"}},
	}

	for _, tt := range tests {
		t.Setenv("VISUAL", tt.visual)
		t.Setenv("EDITOR", tt.editor)
		if got := command(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("command() with VISUAL=%q EDITOR=%q = %v, want %v", tt.visual, tt.editor, got, tt.want)
		}
	}
}

func TestEdit_ReportsExitStatus(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	err := Edit(t.TempDir() + "/draft.md")
	if err == nil || !strings.Contains(err.Error(), "exited with status 1") {
		t.Fatalf("expected exit status error, got %v", err)
	}
}
