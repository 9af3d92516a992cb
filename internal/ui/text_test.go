package ui

import "testing"

func TestWrapIndented(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		width  int
		margin int
		want   string
	}{
		{"blank", " \n\n ", 20, 2, ""},
		{"fits", "12 sessions   for alice", 40, 2, "  12 sessions for alice"},
		{"wraps", "one two three four", 10, 2, "  one two\n  three\n  four"},
		{"paragraphs", "first\r\n\r\nsecond", 20, 0, "first\n\nsecond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapIndented(tt.text, tt.width, tt.margin); got != tt.want {
				t.Errorf("WrapIndented = %q, want %q", got, tt.want)
			}
		})
	}
}
