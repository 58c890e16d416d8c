package usecase

import (
	"time"

	"main/model"
)

// RemainingSeconds computes how many seconds of a session's planned
// duration are left at the given wall-clock time. While the session is
// paused the reference point is the pause timestamp, so the value is
// frozen until resume. The result may be negative (overtime); callers
// treat <= 0 as "duration elapsed, awaiting completion".
func RemainingSeconds(startedAt time.Time, durationMinutes int, totalPausedSeconds int64, pausedAt *time.Time, now time.Time) int64 {
	reference := now
	if pausedAt != nil {
		reference = *pausedAt
	}

	elapsed := reference.Sub(startedAt).Milliseconds()/1000 - totalPausedSeconds
	return int64(durationMinutes)*60 - elapsed
}

// SessionRemainingSeconds is RemainingSeconds applied to a session record.
func SessionRemainingSeconds(session *model.FocusSession, now time.Time) int64 {
	return RemainingSeconds(session.StartedAt, session.DurationMinutes,
		session.TotalPausedSeconds, session.PausedAt, now)
}

// ElapsedActiveSeconds is the time a session has actually been running,
// wall time minus time spent paused.
func ElapsedActiveSeconds(session *model.FocusSession, now time.Time) int64 {
	reference := now
	if session.PausedAt != nil {
		reference = *session.PausedAt
	}
	return reference.Sub(session.StartedAt).Milliseconds()/1000 - session.TotalPausedSeconds
}
