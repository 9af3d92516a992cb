package main

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

var flagNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.FixedZone("EST", -5*60*60))

func TestParseMoment(t *testing.T) {
	loc := flagNow.Location()
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, loc)},
		{"2024-03-15 14:30", time.Date(2024, 3, 15, 14, 30, 0, 0, loc)},
		{"08:15", time.Date(2024, 3, 14, 8, 15, 0, 0, loc)},
		{"2024-03-14T12:00:00Z", time.Date(2024, 3, 14, 7, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		got, err := parseMoment(tt.input, flagNow)
		if err != nil {
			t.Errorf("parseMoment(%q) error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseMoment(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseMoment("next tuesday", flagNow); err == nil {
		t.Error("expected error for free-form text")
	}
}

func TestParseSpan(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"3d", 72 * time.Hour, true},
		{"90m", 90 * time.Minute, true},
		{"1h30m", 90 * time.Minute, true},
		{"xd", 0, false},
		{"soon", 0, false},
	}

	for _, tt := range tests {
		got, err := parseSpan(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("parseSpan(%q) error = %v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSpan(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDueValue(t *testing.T) {
	var due dueValue
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Var(&due, "due", "")

	if err := flags.Parse([]string{"--due", "2d"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := due.Resolve(flagNow)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := flagNow.Add(48 * time.Hour); got == nil || !got.Equal(want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}

	if err := flags.Parse([]string{"--due", "whenever"}); err == nil {
		t.Error("expected parse error for invalid due")
	}
}

func TestDueValue_Unset(t *testing.T) {
	var due dueValue
	got, err := due.Resolve(flagNow)
	if err != nil || got != nil {
		t.Errorf("Resolve = %v, %v; want nil, nil", got, err)
	}
}

func TestParseSince(t *testing.T) {
	got, err := parseSince("7d", flagNow)
	if err != nil {
		t.Fatalf("parseSince: %v", err)
	}
	want := time.Date(2024, 3, 7, 0, 0, 0, 0, flagNow.Location())
	if !got.Equal(want) {
		t.Errorf("parseSince(7d) = %v, want %v", got, want)
	}

	zero, err := parseSince("", flagNow)
	if err != nil || !zero.IsZero() {
		t.Errorf("parseSince(\"\") = %v, %v", zero, err)
	}
}
