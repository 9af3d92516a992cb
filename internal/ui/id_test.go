package ui

import "testing"

func TestPrefixLength(t *testing.T) {
	lengths := map[string]int{"q7mz2k4a": 2, "q7xx9p0d": 3}

	tests := []struct {
		lengths map[string]int
		id      string
		want    int
	}{
		{lengths, "q7mz2k4a", 2},
		{lengths, "Q7XX9P0D", 3},
		{lengths, "zzzzzzzz", 0},
		{lengths, "", 0},
		{nil, "q7mz2k4a", 0},
	}

	for _, tt := range tests {
		if got := PrefixLength(tt.lengths, tt.id); got != tt.want {
			t.Errorf("PrefixLength(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestHighlightID(t *testing.T) {
	tests := []struct {
		name   string
		prefix int
		color  bool
		want   string
	}{
		{"colored prefix", 2, true, ansiBold + ansiCyan + "q7" + ansiReset + "mz2k4a"},
		{"whole id", 8, true, ansiBold + ansiCyan + "q7mz2k4a" + ansiReset},
		{"no color", 2, false, "q7mz2k4a"},
		{"no prefix", 0, true, "q7mz2k4a"},
		{"prefix longer than id", 12, true, "q7mz2k4a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := highlightID("q7mz2k4a", tt.prefix, tt.color); got != tt.want {
				t.Errorf("highlightID = %q, want %q", got, tt.want)
			}
		})
	}
}
