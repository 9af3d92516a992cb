package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	clockLayout    = "15:04"
)

// parseSpan parses a Go duration or a whole number of days ("3d").
func parseSpan(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}

// parseMoment parses an absolute time in now's location. A bare date is
// midnight and a bare clock time is today.
func parseMoment(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	loc := now.Location()

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(dateTimeLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(clockLayout, value, loc); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", HH:MM, or RFC 3339", value)
}

// dueValue is a pflag.Value for --due. It accepts an absolute time or a
// span from now ("3d", "90m"). The value is resolved against the clock
// when the command runs.
type dueValue struct {
	raw string
}

func (v *dueValue) String() string { return v.raw }

func (v *dueValue) Type() string { return "date|duration" }

func (v *dueValue) Set(value string) error {
	if _, err := v.resolve(value, time.Now()); err != nil {
		return err
	}
	v.raw = value
	return nil
}

// Resolve returns the due time relative to now, or nil when unset.
func (v *dueValue) Resolve(now time.Time) (*time.Time, error) {
	if v.raw == "" {
		return nil, nil
	}
	t, err := v.resolve(v.raw, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (v *dueValue) resolve(value string, now time.Time) (time.Time, error) {
	if t, err := parseMoment(value, now); err == nil {
		return t, nil
	}
	span, err := parseSpan(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due %q: use a date (YYYY-MM-DD) or a duration (3d, 90m)", value)
	}
	return now.Add(span), nil
}

// parseSince resolves --since: an absolute time, or a span back from now
// rounded down to midnight ("7d" is the last seven days plus today).
func parseSince(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := parseMoment(value, now); err == nil {
		return t, nil
	}
	span, err := parseSpan(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since %q: use a date (YYYY-MM-DD) or a duration (7d)", value)
	}
	y, m, d := now.Add(-span).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
}
