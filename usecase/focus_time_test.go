package usecase

import (
	"testing"
	"time"

	"main/model"
)

func TestRemainingSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name               string
		durationMinutes    int
		totalPausedSeconds int64
		pausedAt           *time.Time
		now                time.Time
		want               int64
	}{
		{
			name:            "just started",
			durationMinutes: 15,
			now:             start,
			want:            900,
		},
		{
			name:            "ten minutes into a 25 minute session",
			durationMinutes: 25,
			now:             start.Add(10 * time.Minute),
			want:            900,
		},
		{
			name:               "21 minutes wall time with 10 paused",
			durationMinutes:    25,
			totalPausedSeconds: 600,
			now:                start.Add(21 * time.Minute),
			want:               840,
		},
		{
			name:               "pause time excluded",
			durationMinutes:    15,
			totalPausedSeconds: 120,
			now:                start.Add(5 * time.Minute),
			want:               900 - (300 - 120),
		},
		{
			name:            "paused clock is frozen",
			durationMinutes: 15,
			pausedAt:        timePtr(start.Add(4 * time.Minute)),
			now:             start.Add(50 * time.Minute),
			want:            900 - 240,
		},
		{
			name:            "overtime goes negative",
			durationMinutes: 1,
			now:             start.Add(90 * time.Second),
			want:            -30,
		},
		{
			name:            "sub-second elapsed floors to zero",
			durationMinutes: 15,
			now:             start.Add(999 * time.Millisecond),
			want:            900,
		},
		{
			name:            "partial second floors toward elapsed",
			durationMinutes: 15,
			now:             start.Add(1500 * time.Millisecond),
			want:            899,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingSeconds(start, tt.durationMinutes, tt.totalPausedSeconds, tt.pausedAt, tt.now)
			if got != tt.want {
				t.Errorf("RemainingSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestElapsedActiveSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	session := &model.FocusSession{
		StartedAt:          start,
		DurationMinutes:    25,
		TotalPausedSeconds: 60,
	}

	got := ElapsedActiveSeconds(session, start.Add(10*time.Minute))
	if got != 540 {
		t.Errorf("ElapsedActiveSeconds() = %d, want 540", got)
	}

	// Paused sessions stop accruing active time.
	session.PausedAt = timePtr(start.Add(3 * time.Minute))
	got = ElapsedActiveSeconds(session, start.Add(10*time.Minute))
	if got != 120 {
		t.Errorf("ElapsedActiveSeconds() while paused = %d, want 120", got)
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
