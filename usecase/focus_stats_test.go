package usecase

import (
	"testing"
	"time"

	"main/model"

	"github.com/google/uuid"
)

func completedSession(userID string, startedAt time.Time, minutes int) *model.FocusSession {
	return &model.FocusSession{
		SessionID:       uuid.New().String(),
		UserID:          userID,
		DurationMinutes: minutes,
		StartedAt:       startedAt,
		Status:          model.FocusCompleted,
	}
}

func TestComputeFocusStatsEmpty(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	stats := ComputeFocusStats("user-1", nil, now)

	if stats.CurrentStreak != 0 || stats.BestStreak != 0 {
		t.Errorf("expected zero streaks, got current=%d best=%d", stats.CurrentStreak, stats.BestStreak)
	}
	if stats.HighestDailyMinutes != 0 || stats.HighestDailyDate != nil {
		t.Errorf("expected no record day, got %d at %v", stats.HighestDailyMinutes, stats.HighestDailyDate)
	}
	if stats.LastStreakDate != nil {
		t.Errorf("expected nil LastStreakDate, got %v", stats.LastStreakDate)
	}
}

func TestComputeFocusStatsStreaks(t *testing.T) {
	userID := "user-1"
	now := time.Date(2025, 6, 4, 20, 0, 0, 0, time.UTC)

	// June 1, 2 and 4: a broken two-day streak, then a fresh one-day
	// streak that is still alive because June 4 is today.
	sessions := []*model.FocusSession{
		completedSession(userID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), 25),
	}

	stats := ComputeFocusStats(userID, sessions, now)

	if stats.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", stats.BestStreak)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
	if stats.LastStreakDate == nil || !stats.LastStreakDate.Equal(time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("LastStreakDate = %v, want 2025-06-04", stats.LastStreakDate)
	}
}

func TestComputeFocusStatsStaleStreak(t *testing.T) {
	userID := "user-1"
	// Last completed day is June 2, today is June 5: streak is dead.
	now := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)

	sessions := []*model.FocusSession{
		completedSession(userID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 25),
	}

	stats := ComputeFocusStats(userID, sessions, now)

	if stats.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", stats.CurrentStreak)
	}
	if stats.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", stats.BestStreak)
	}
	if stats.LastStreakDate != nil {
		t.Errorf("LastStreakDate = %v, want nil", stats.LastStreakDate)
	}
}

func TestComputeFocusStatsYesterdayKeepsStreakAlive(t *testing.T) {
	userID := "user-1"
	now := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)

	sessions := []*model.FocusSession{
		completedSession(userID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 25),
	}

	stats := ComputeFocusStats(userID, sessions, now)

	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", stats.CurrentStreak)
	}
}

func TestComputeFocusStatsRecordDayTies(t *testing.T) {
	userID := "user-1"
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// Both days total 50 minutes; the record must stay on the earlier day.
	sessions := []*model.FocusSession{
		completedSession(userID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), 50),
	}

	stats := ComputeFocusStats(userID, sessions, now)

	if stats.HighestDailyMinutes != 50 {
		t.Errorf("HighestDailyMinutes = %d, want 50", stats.HighestDailyMinutes)
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if stats.HighestDailyDate == nil || !stats.HighestDailyDate.Equal(want) {
		t.Errorf("HighestDailyDate = %v, want %v", stats.HighestDailyDate, want)
	}
	if stats.BestSessionsInDay != 2 {
		t.Errorf("BestSessionsInDay = %d, want 2", stats.BestSessionsInDay)
	}
}

func TestComputeFocusStatsUTCMidnightBucketing(t *testing.T) {
	userID := "user-1"
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	// 23:50 and 00:10 straddle the UTC boundary: two different days,
	// a two-day streak, never a single 50-minute day.
	sessions := []*model.FocusSession{
		completedSession(userID, time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 2, 0, 10, 0, 0, time.UTC), 25),
	}

	stats := ComputeFocusStats(userID, sessions, now)

	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", stats.CurrentStreak)
	}
	if stats.HighestDailyMinutes != 25 {
		t.Errorf("HighestDailyMinutes = %d, want 25", stats.HighestDailyMinutes)
	}
}

func TestComputeFocusStatsIgnoresNonCompleted(t *testing.T) {
	userID := "user-1"
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cancelled := completedSession(userID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 25)
	cancelled.Status = model.FocusCancelled
	active := completedSession(userID, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), 25)
	active.Status = model.FocusActive

	stats := ComputeFocusStats(userID, []*model.FocusSession{cancelled, active}, now)

	if stats.BestStreak != 0 || stats.HighestDailyMinutes != 0 {
		t.Errorf("non-completed sessions must not count, got best=%d minutes=%d",
			stats.BestStreak, stats.HighestDailyMinutes)
	}
}

func TestComputeFocusStatsIdempotent(t *testing.T) {
	userID := "user-1"
	now := time.Date(2025, 6, 4, 20, 0, 0, 0, time.UTC)

	sessions := []*model.FocusSession{
		completedSession(userID, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 25),
		completedSession(userID, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), 40),
		completedSession(userID, time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), 15),
	}

	first := ComputeFocusStats(userID, sessions, now)
	second := ComputeFocusStats(userID, sessions, now)

	if first.CurrentStreak != second.CurrentStreak ||
		first.BestStreak != second.BestStreak ||
		first.HighestDailyMinutes != second.HighestDailyMinutes ||
		first.BestSessionsInDay != second.BestSessionsInDay {
		t.Errorf("recompute changed results: %+v vs %+v", first, second)
	}
}
