package session

import (
	"errors"
	"testing"
)

func TestType_IsFocus(t *testing.T) {
	tests := []struct {
		typ   Type
		focus bool
	}{
		{TypeFocus, true},
		{Type(""), true},
		{TypeBreak, false},
		{Type("nap"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.IsFocus(); got != tt.focus {
				t.Errorf("Type(%q).IsFocus() = %v, want %v", tt.typ, got, tt.focus)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for input, want := range map[string]Type{"": TypeFocus, "Focus": TypeFocus, " break ": TypeBreak} {
		got, err := ParseType(input)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("ParseType(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseType("nap"); !errors.Is(err, ErrInvalidSessionType) {
		t.Errorf("expected ErrInvalidSessionType, got %v", err)
	}
}
