package session

import internalage "github.com/amonks/focus/internal/age"

// Source describes where a session's minute count came from.
type Source int

const (
	// SourceStored means the recorded duration was used.
	SourceStored Source = iota
	// SourceDerived means the duration was computed from start and end times.
	SourceDerived
	// SourceMissing means neither was usable and the session counts as zero.
	SourceMissing
)

func (s Source) String() string {
	switch s {
	case SourceStored:
		return "stored"
	case SourceDerived:
		return "derived"
	default:
		return "missing"
	}
}

// Minutes returns the number of minutes a session counts for.
// A stored non-negative duration wins; otherwise the rounded distance from
// start to end is used; otherwise the session counts as zero.
func Minutes(s Session) (int, Source) {
	if s.Duration != nil && *s.Duration >= 0 {
		return *s.Duration, SourceStored
	}
	if s.EndTime != nil && !s.StartTime.IsZero() {
		elapsed := s.EndTime.Sub(s.StartTime)
		if elapsed >= 0 {
			return internalage.RoundMinutes(elapsed), SourceDerived
		}
	}
	return 0, SourceMissing
}
