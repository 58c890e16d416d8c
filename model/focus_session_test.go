package model

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// The partial unique index on focus_sessions filters on
// {in_progress: true}, so the field must be present on non-terminal
// documents and absent on terminal ones.
func TestFocusSessionInProgressMarker(t *testing.T) {
	tests := []struct {
		status    FocusStatus
		wantInDoc bool
	}{
		{FocusActive, true},
		{FocusPaused, true},
		{FocusCompleted, false},
		{FocusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			session := &FocusSession{
				SessionID:       "s1",
				UserID:          "u1",
				DurationMinutes: 25,
				StartedAt:       time.Now().UTC(),
				Status:          tt.status,
				InProgress:      !tt.status.IsTerminal(),
			}

			data, err := bson.Marshal(session)
			if err != nil {
				t.Fatalf("bson.Marshal: %v", err)
			}
			_, err = bson.Raw(data).LookupErr("in_progress")
			got := err == nil
			if got != tt.wantInDoc {
				t.Errorf("in_progress present = %v, want %v", got, tt.wantInDoc)
			}
		})
	}
}
