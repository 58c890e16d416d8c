package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
	"main/repository"
)

// The Mongo repos must keep satisfying the store interfaces.
var (
	_ FocusSessionStore = (*repository.FocusSessionsRepo)(nil)
	_ FocusStatsStore   = (*repository.FocusStatsRepo)(nil)
)

// memorySessionStore is an in-memory FocusSessionStore mirroring the
// repository's visibility rules: soft-deleted sessions only surface
// through the trash listing and purge.
type memorySessionStore struct {
	sessions map[string]*model.FocusSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*model.FocusSession)}
}

func (s *memorySessionStore) FindActiveSession(_ context.Context, userID string) (*model.FocusSession, error) {
	for _, session := range s.sessions {
		if session.UserID == userID && session.DeletedAt == nil &&
			(session.Status == model.FocusActive || session.Status == model.FocusPaused) {
			return session, nil
		}
	}
	return nil, nil
}

func (s *memorySessionStore) FindSession(_ context.Context, sessionID, userID string) (*model.FocusSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID || session.DeletedAt != nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *memorySessionStore) CreateSession(_ context.Context, session *model.FocusSession) error {
	for _, existing := range s.sessions {
		if existing.UserID == session.UserID && existing.DeletedAt == nil &&
			(existing.Status == model.FocusActive || existing.Status == model.FocusPaused) {
			return ErrSessionConflict
		}
	}
	s.sessions[session.SessionID] = session
	return nil
}

func (s *memorySessionStore) UpdateSession(_ context.Context, session *model.FocusSession) error {
	if _, ok := s.sessions[session.SessionID]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[session.SessionID] = session
	return nil
}

func (s *memorySessionStore) ListCompletedSessions(_ context.Context, userID string) ([]*model.FocusSession, error) {
	var out []*model.FocusSession
	for _, session := range s.sessions {
		if session.UserID == userID && session.DeletedAt == nil && session.Status == model.FocusCompleted {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *memorySessionStore) ListTrashedSessions(_ context.Context, userID string) ([]*model.FocusSession, error) {
	var out []*model.FocusSession
	for _, session := range s.sessions {
		if session.UserID == userID && session.DeletedAt != nil {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *memorySessionStore) PurgeSession(_ context.Context, sessionID, userID string) error {
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID || session.DeletedAt == nil {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

type memoryStatsStore struct {
	stats map[string]*model.FocusStats
}

func newMemoryStatsStore() *memoryStatsStore {
	return &memoryStatsStore{stats: make(map[string]*model.FocusStats)}
}

func (s *memoryStatsStore) GetStats(_ context.Context, userID string) (*model.FocusStats, error) {
	return s.stats[userID], nil
}

func (s *memoryStatsStore) UpsertStats(_ context.Context, stats *model.FocusStats) error {
	s.stats[stats.UserID] = stats
	return nil
}

// newTestFocusService builds the service without the background worker
// so recomputes run inline, and with a controllable clock.
func newTestFocusService(start time.Time) (*FocusService, *memorySessionStore, *memoryStatsStore, *time.Time) {
	sessions := newMemorySessionStore()
	stats := newMemoryStatsStore()
	clock := start
	svc := &FocusService{
		Sessions: sessions,
		Stats:    stats,
		Now:      func() time.Time { return clock },
	}
	return svc, sessions, stats, &clock
}

func TestStartSessionConflict(t *testing.T) {
	svc, _, _, _ := newTestFocusService(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, "user-1", "write report", 25); err != nil {
		t.Fatalf("first start failed: %v", err)
	}

	_, err := svc.StartSession(ctx, "user-1", "another", 25)
	if !errors.Is(err, ErrSessionConflict) {
		t.Errorf("second start: got %v, want ErrSessionConflict", err)
	}

	// A different user is unaffected.
	if _, err := svc.StartSession(ctx, "user-2", "read", 25); err != nil {
		t.Errorf("other user start failed: %v", err)
	}
}

func TestStartSessionRejectsNonPositiveDuration(t *testing.T) {
	svc, _, _, _ := newTestFocusService(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	for _, minutes := range []int{0, -5} {
		if _, err := svc.StartSession(context.Background(), "user-1", "x", minutes); !errors.Is(err, ErrInvalidState) {
			t.Errorf("duration %d: got %v, want ErrInvalidState", minutes, err)
		}
	}
}

func TestPauseResumeAccounting(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTestFocusService(start)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "user-1", "deep work", 25)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Pause 5 minutes in, stay paused for 3 minutes.
	*clock = start.Add(5 * time.Minute)
	if _, err := svc.PauseSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("pause: %v", err)
	}

	// Remaining is frozen at the pause point regardless of wall time.
	*clock = start.Add(8 * time.Minute)
	paused, _ := svc.GetActiveSession(ctx, "user-1")
	if got := SessionRemainingSeconds(paused, *clock); got != 20*60 {
		t.Errorf("remaining while paused = %d, want %d", got, 20*60)
	}

	resumed, err := svc.ResumeSession(ctx, "user-1", session.SessionID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.TotalPausedSeconds != 180 {
		t.Errorf("TotalPausedSeconds = %d, want 180", resumed.TotalPausedSeconds)
	}
	if resumed.PausedAt != nil {
		t.Error("PausedAt not cleared on resume")
	}
	if got := SessionRemainingSeconds(resumed, *clock); got != 20*60 {
		t.Errorf("remaining after resume = %d, want %d", got, 20*60)
	}
}

func TestPauseRequiresActive(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)
	*clock = start.Add(time.Minute)
	if _, err := svc.PauseSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("pause: %v", err)
	}

	if _, err := svc.PauseSession(ctx, "user-1", session.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double pause: got %v, want ErrInvalidState", err)
	}
	if _, err := svc.ResumeSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if _, err := svc.ResumeSession(ctx, "user-1", session.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double resume: got %v, want ErrInvalidState", err)
	}
}

func TestCompleteRequiresElapsedDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, stats, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	*clock = start.Add(10 * time.Minute)
	if _, err := svc.CompleteSession(ctx, "user-1", session.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("early complete: got %v, want ErrInvalidState", err)
	}

	// Overtime completion credits the planned duration.
	*clock = start.Add(30 * time.Minute)
	completed, err := svc.CompleteSession(ctx, "user-1", session.SessionID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != model.FocusCompleted {
		t.Errorf("status = %s, want COMPLETED", completed.Status)
	}
	if completed.DurationMinutes != 25 {
		t.Errorf("DurationMinutes = %d, want 25", completed.DurationMinutes)
	}
	if completed.CompletedAt == nil || !completed.CompletedAt.Equal(*clock) {
		t.Errorf("CompletedAt = %v, want %v", completed.CompletedAt, *clock)
	}

	// Inline recompute picked the session up.
	snapshot := stats.stats["user-1"]
	if snapshot == nil || snapshot.HighestDailyMinutes != 25 {
		t.Errorf("stats not recomputed after complete: %+v", snapshot)
	}
}

func TestEndSessionEarlyRecomputesDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, stats, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	// 10m30s of active time floors to 10 credited minutes.
	*clock = start.Add(10*time.Minute + 30*time.Second)
	ended, err := svc.EndSessionEarly(ctx, "user-1", session.SessionID)
	if err != nil {
		t.Fatalf("end early: %v", err)
	}
	if ended.DurationMinutes != 10 {
		t.Errorf("DurationMinutes = %d, want 10", ended.DurationMinutes)
	}
	if ended.Status != model.FocusCompleted {
		t.Errorf("status = %s, want COMPLETED", ended.Status)
	}

	snapshot := stats.stats["user-1"]
	if snapshot == nil || snapshot.HighestDailyMinutes != 10 {
		t.Errorf("stats credit actual minutes, got %+v", snapshot)
	}
}

func TestEndSessionEarlyClampsToOneMinute(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	*clock = start.Add(20 * time.Second)
	ended, err := svc.EndSessionEarly(ctx, "user-1", session.SessionID)
	if err != nil {
		t.Fatalf("end early: %v", err)
	}
	if ended.DurationMinutes != 1 {
		t.Errorf("DurationMinutes = %d, want 1", ended.DurationMinutes)
	}
}

func TestEndSessionEarlyRejectedInOvertime(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	*clock = start.Add(25 * time.Minute)
	if _, err := svc.EndSessionEarly(ctx, "user-1", session.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("end early in overtime: got %v, want ErrInvalidState", err)
	}
}

func TestEndSessionEarlyExcludesPausedTime(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	*clock = start.Add(5 * time.Minute)
	if _, err := svc.PauseSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("pause: %v", err)
	}
	*clock = start.Add(9 * time.Minute)
	if _, err := svc.ResumeSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("resume: %v", err)
	}

	// 12 minutes of wall time, 4 of them paused: 8 active minutes.
	*clock = start.Add(12 * time.Minute)
	ended, err := svc.EndSessionEarly(ctx, "user-1", session.SessionID)
	if err != nil {
		t.Fatalf("end early: %v", err)
	}
	if ended.DurationMinutes != 8 {
		t.Errorf("DurationMinutes = %d, want 8", ended.DurationMinutes)
	}
}

func TestCancelSession(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, stats, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	*clock = start.Add(5 * time.Minute)
	cancelled, err := svc.CancelSession(ctx, "user-1", session.SessionID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.FocusCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}

	// Cancelled sessions never reach the stats.
	if snapshot := stats.stats["user-1"]; snapshot != nil && snapshot.BestStreak != 0 {
		t.Errorf("cancelled session leaked into stats: %+v", snapshot)
	}

	// Terminal sessions cannot be cancelled again.
	if _, err := svc.CancelSession(ctx, "user-1", session.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("cancel terminal: got %v, want ErrInvalidState", err)
	}

	// The slot is free for a new session.
	if _, err := svc.StartSession(ctx, "user-1", "again", 25); err != nil {
		t.Errorf("start after cancel: %v", err)
	}
}

func TestSessionNotFoundAndOwnership(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	if _, err := svc.PauseSession(ctx, "user-1", "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("missing id: got %v, want ErrSessionNotFound", err)
	}
	// Another user's session is indistinguishable from a missing one.
	if _, err := svc.PauseSession(ctx, "user-2", session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("foreign session: got %v, want ErrSessionNotFound", err)
	}
}

func TestTrashRestorePurgeLifecycle(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, stats, clock := newTestFocusService(start)
	ctx := context.Background()

	session, _ := svc.StartSession(ctx, "user-1", "x", 25)

	// Active sessions cannot be trashed.
	if _, err := svc.TrashSession(ctx, "user-1", session.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("trash active: got %v, want ErrInvalidState", err)
	}

	*clock = start.Add(25 * time.Minute)
	if _, err := svc.CompleteSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if stats.stats["user-1"].HighestDailyMinutes != 25 {
		t.Fatalf("stats missing completed session")
	}

	// Trashing a completed session removes it from the stats input.
	if _, err := svc.TrashSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if got := stats.stats["user-1"].HighestDailyMinutes; got != 0 {
		t.Errorf("stats after trash = %d, want 0", got)
	}

	trash, err := svc.ListTrash(ctx, "user-1")
	if err != nil || len(trash) != 1 {
		t.Fatalf("trash listing = %v, %v; want one session", trash, err)
	}

	// Trashed sessions are invisible to normal lookups.
	if _, err := svc.PauseSession(ctx, "user-1", session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("lookup of trashed session: got %v, want ErrSessionNotFound", err)
	}

	// Restore brings it back into the stats.
	if _, err := svc.RestoreSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := stats.stats["user-1"].HighestDailyMinutes; got != 25 {
		t.Errorf("stats after restore = %d, want 25", got)
	}

	// Purge is only valid for trashed sessions.
	if err := svc.PurgeSession(ctx, "user-1", session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("purge of live session: got %v, want ErrSessionNotFound", err)
	}

	if _, err := svc.TrashSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("trash again: %v", err)
	}
	if err := svc.PurgeSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("purge: %v", err)
	}
	trash, _ = svc.ListTrash(ctx, "user-1")
	if len(trash) != 0 {
		t.Errorf("trash not empty after purge: %v", trash)
	}
}

func TestGetStatsLazyInit(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, stats, _ := newTestFocusService(start)

	snapshot, err := svc.GetStats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if snapshot.UserID != "user-1" || snapshot.CurrentStreak != 0 {
		t.Errorf("unexpected zero snapshot: %+v", snapshot)
	}
	if stats.stats["user-1"] == nil {
		t.Error("zero snapshot not persisted")
	}
}

func TestCloseDrainsPendingRecompute(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := start

	sessions := newMemorySessionStore()
	stats := newMemoryStatsStore()
	svc := NewFocusService(sessions, stats)
	svc.Now = func() time.Time { return clock }
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "user-1", "write report", 25)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	clock = start.Add(25 * time.Minute)
	if _, err := svc.CompleteSession(ctx, "user-1", session.SessionID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Close waits for the queued recompute before stopping the worker.
	svc.Close()

	snapshot := stats.stats["user-1"]
	if snapshot == nil {
		t.Fatal("recompute did not run before Close returned")
	}
	if snapshot.HighestDailyMinutes != 25 {
		t.Errorf("HighestDailyMinutes = %d, want 25", snapshot.HighestDailyMinutes)
	}

	// A second Close and a post-Close transition must not panic.
	svc.Close()
	if _, err := svc.StartSession(ctx, "user-1", "read", 10); err != nil {
		t.Fatalf("start after close: %v", err)
	}
	clock = clock.Add(10 * time.Minute)
	if _, err := svc.CompleteSession(ctx, "user-1", "focus-"); err == nil {
		t.Error("expected not found for unknown session id")
	}
}
