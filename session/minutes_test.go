package session

import (
	"testing"
	"time"
)

func TestMinutes(t *testing.T) {
	start := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(29*time.Minute + 31*time.Second)
	before := start.Add(-time.Minute)

	tests := []struct {
		name       string
		session    Session
		want       int
		wantSource Source
	}{
		{"stored wins over timestamps", Session{StartTime: start, EndTime: &end, Duration: MinutesPtr(45)}, 45, SourceStored},
		{"stored zero", Session{StartTime: start, Duration: MinutesPtr(0)}, 0, SourceStored},
		{"derived rounds", Session{StartTime: start, EndTime: &end}, 30, SourceDerived},
		{"negative stored falls back", Session{StartTime: start, EndTime: &end, Duration: MinutesPtr(-5)}, 30, SourceDerived},
		{"end before start", Session{StartTime: start, EndTime: &before}, 0, SourceMissing},
		{"nothing", Session{StartTime: start}, 0, SourceMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := Minutes(tt.session)
			if got != tt.want || source != tt.wantSource {
				t.Errorf("Minutes() = %d (%s), want %d (%s)", got, source, tt.want, tt.wantSource)
			}
		})
	}
}
