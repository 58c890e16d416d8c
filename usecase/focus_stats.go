package usecase

import (
	"sort"
	"time"

	"main/model"
)

type dayBucket struct {
	totalMinutes int
	sessions     int
}

// utcDate truncates a timestamp to its UTC calendar day. All streak
// and record-day bucketing keys on this, never on local time.
func utcDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeFocusStats derives the full statistics snapshot from a user's
// completed sessions. It is pure: same sessions and clock in, same
// stats out, which is what makes the recompute safe to rerun after
// every mutation. Sessions count on the UTC day they started.
func ComputeFocusStats(userID string, sessions []*model.FocusSession, now time.Time) *model.FocusStats {
	stats := &model.FocusStats{
		UserID:    userID,
		UpdatedAt: now,
	}

	buckets := make(map[time.Time]*dayBucket)
	for _, session := range sessions {
		if session.Status != model.FocusCompleted {
			continue
		}
		day := utcDate(session.StartedAt)
		bucket, ok := buckets[day]
		if !ok {
			bucket = &dayBucket{}
			buckets[day] = bucket
		}
		bucket.totalMinutes += session.DurationMinutes
		bucket.sessions++
	}

	if len(buckets) == 0 {
		return stats
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Record days. Strict > keeps the earliest day on ties.
	for _, day := range days {
		bucket := buckets[day]
		if bucket.totalMinutes > stats.HighestDailyMinutes {
			stats.HighestDailyMinutes = bucket.totalMinutes
			highest := day
			stats.HighestDailyDate = &highest
		}
		if bucket.sessions > stats.BestSessionsInDay {
			stats.BestSessionsInDay = bucket.sessions
		}
	}

	// Best streak: ascending walk, reset on any gap.
	running := 1
	stats.BestStreak = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			running++
		} else {
			running = 1
		}
		if running > stats.BestStreak {
			stats.BestStreak = running
		}
	}

	// Current streak: only alive if the most recent day is today or
	// yesterday in UTC, then walk backward until the first gap.
	today := utcDate(now)
	yesterday := today.AddDate(0, 0, -1)
	latest := days[len(days)-1]
	if latest.Equal(today) || latest.Equal(yesterday) {
		streak := 1
		for i := len(days) - 2; i >= 0; i-- {
			if days[i+1].Sub(days[i]) != 24*time.Hour {
				break
			}
			streak++
		}
		stats.CurrentStreak = streak
		last := latest
		stats.LastStreakDate = &last
	}

	return stats
}
