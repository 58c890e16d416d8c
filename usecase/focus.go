package usecase

import (
	"context"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// FocusSessionStore is the persistence contract for focus sessions.
// Lookups are always scoped to the owning user; soft-deleted sessions
// are invisible to every method except the trash listing and purge.
type FocusSessionStore interface {
	FindActiveSession(ctx context.Context, userID string) (*model.FocusSession, error)
	FindSession(ctx context.Context, sessionID, userID string) (*model.FocusSession, error)
	CreateSession(ctx context.Context, session *model.FocusSession) error
	UpdateSession(ctx context.Context, session *model.FocusSession) error
	ListCompletedSessions(ctx context.Context, userID string) ([]*model.FocusSession, error)
	ListTrashedSessions(ctx context.Context, userID string) ([]*model.FocusSession, error)
	PurgeSession(ctx context.Context, sessionID, userID string) error
}

// FocusStatsStore persists the denormalized statistics snapshot.
// GetStats returns nil when no snapshot exists yet.
type FocusStatsStore interface {
	GetStats(ctx context.Context, userID string) (*model.FocusStats, error)
	UpsertStats(ctx context.Context, stats *model.FocusStats) error
}

type FocusService struct {
	Sessions FocusSessionStore
	Stats    FocusStatsStore

	// Clock override for tests; nil means time.Now.
	Now func() time.Time

	recalc *statsRecalculator

	lockMu    sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewFocusService wires the service and starts the background stats
// recompute worker.
func NewFocusService(sessions FocusSessionStore, stats FocusStatsStore) *FocusService {
	svc := &FocusService{
		Sessions: sessions,
		Stats:    stats,
	}
	svc.recalc = newStatsRecalculator(svc)
	svc.recalc.start()
	return svc
}

// Close drains pending recomputes and stops the background worker.
// Safe to call more than once.
func (svc *FocusService) Close() {
	if svc.recalc != nil {
		svc.recalc.stop()
	}
}

func (svc *FocusService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

// userLock serializes session transitions per user. Combined with the
// partial unique index on non-terminal sessions this keeps the
// "at most one active session" invariant under concurrent requests.
func (svc *FocusService) userLock(userID string) *sync.Mutex {
	svc.lockMu.Lock()
	defer svc.lockMu.Unlock()
	if svc.userLocks == nil {
		svc.userLocks = make(map[string]*sync.Mutex)
	}
	lock, ok := svc.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		svc.userLocks[userID] = lock
	}
	return lock
}

// StartSession creates a new ACTIVE session. Fails with
// ErrSessionConflict if the user already has an active or paused one.
func (svc *FocusService) StartSession(ctx context.Context, userID, task string, durationMinutes int) (*model.FocusSession, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidState
	}

	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := svc.Sessions.FindActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSessionConflict
	}

	now := svc.now()
	session := &model.FocusSession{
		SessionID:       utils.GenerateID(),
		UserID:          userID,
		Task:            task,
		DurationMinutes: durationMinutes,
		StartedAt:       now,
		Status:          model.FocusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := svc.Sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	utils.TrackFocusTransition("start")
	return session, nil
}

// PauseSession freezes an ACTIVE session's countdown.
func (svc *FocusService) PauseSession(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.Sessions.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.FocusActive {
		return nil, ErrInvalidState
	}

	now := svc.now()
	session.PausedAt = &now
	session.Status = model.FocusPaused
	session.UpdatedAt = now

	if err := svc.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	utils.TrackFocusTransition("pause")
	return session, nil
}

// ResumeSession folds the time spent paused into TotalPausedSeconds
// and returns the session to ACTIVE.
func (svc *FocusService) ResumeSession(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.Sessions.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.FocusPaused || session.PausedAt == nil {
		return nil, ErrInvalidState
	}

	now := svc.now()
	session.TotalPausedSeconds += now.Sub(*session.PausedAt).Milliseconds() / 1000
	session.PausedAt = nil
	session.Status = model.FocusActive
	session.UpdatedAt = now

	if err := svc.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	utils.TrackFocusTransition("resume")
	return session, nil
}

// CompleteSession saves a session whose planned duration has fully
// elapsed. The full planned duration is credited even in overtime.
func (svc *FocusService) CompleteSession(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.Sessions.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.FocusActive && session.Status != model.FocusPaused {
		return nil, ErrInvalidState
	}

	now := svc.now()
	if SessionRemainingSeconds(session, now) > 0 {
		return nil, ErrInvalidState
	}

	session.Status = model.FocusCompleted
	session.CompletedAt = &now
	session.PausedAt = nil
	session.UpdatedAt = now

	if err := svc.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	utils.TrackFocusTransition("complete")
	svc.enqueueRecalc(userID)
	return session, nil
}

// EndSessionEarly completes a session before its planned duration has
// elapsed, shrinking DurationMinutes to the actual active time so the
// statistics credit real focused minutes, not the plan. Whole minutes,
// floored, never below one.
func (svc *FocusService) EndSessionEarly(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.Sessions.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.FocusActive && session.Status != model.FocusPaused {
		return nil, ErrInvalidState
	}

	now := svc.now()
	if SessionRemainingSeconds(session, now) <= 0 {
		return nil, ErrInvalidState
	}

	actualMinutes := int(ElapsedActiveSeconds(session, now) / 60)
	if actualMinutes < 1 {
		actualMinutes = 1
	}

	session.DurationMinutes = actualMinutes
	session.Status = model.FocusCompleted
	session.CompletedAt = &now
	session.PausedAt = nil
	session.UpdatedAt = now

	if err := svc.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	utils.TrackFocusTransition("end_early")
	svc.enqueueRecalc(userID)
	return session, nil
}

// CancelSession discards a session from any non-terminal state.
// Cancelled sessions never appear in statistics.
func (svc *FocusService) CancelSession(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.Sessions.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() {
		return nil, ErrInvalidState
	}

	now := svc.now()
	session.Status = model.FocusCancelled
	session.PausedAt = nil
	session.UpdatedAt = now

	if err := svc.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	utils.TrackFocusTransition("cancel")
	return session, nil
}

// GetActiveSession returns the user's ACTIVE or PAUSED session, or nil.
func (svc *FocusService) GetActiveSession(ctx context.Context, userID string) (*model.FocusSession, error) {
	return svc.Sessions.FindActiveSession(ctx, userID)
}

// GetHistory returns the user's completed sessions.
func (svc *FocusService) GetHistory(ctx context.Context, userID string) ([]*model.FocusSession, error) {
	return svc.Sessions.ListCompletedSessions(ctx, userID)
}

// GetStats reads the cached statistics snapshot, lazily creating a
// zero-valued one on first read.
func (svc *FocusService) GetStats(ctx context.Context, userID string) (*model.FocusStats, error) {
	stats, err := svc.Stats.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		return stats, nil
	}

	stats = &model.FocusStats{
		UserID:    userID,
		UpdatedAt: svc.now(),
	}
	if err := svc.Stats.UpsertStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// TrashSession soft-deletes a terminal session. Removing a completed
// session changes the stats input set, so a recompute follows.
func (svc *FocusService) TrashSession(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.Sessions.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if !session.Status.IsTerminal() {
		return nil, ErrInvalidState
	}

	now := svc.now()
	session.DeletedAt = &now
	session.UpdatedAt = now

	if err := svc.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	if session.Status == model.FocusCompleted {
		svc.enqueueRecalc(userID)
	}
	return session, nil
}

// ListTrash returns the user's soft-deleted sessions.
func (svc *FocusService) ListTrash(ctx context.Context, userID string) ([]*model.FocusSession, error) {
	return svc.Sessions.ListTrashedSessions(ctx, userID)
}

// RestoreSession clears the soft-delete marker and, for completed
// sessions, brings the record back into the statistics input set.
func (svc *FocusService) RestoreSession(ctx context.Context, userID, sessionID string) (*model.FocusSession, error) {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.findTrashed(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.DeletedAt = nil
	session.UpdatedAt = svc.now()

	if err := svc.Sessions.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	if session.Status == model.FocusCompleted {
		svc.enqueueRecalc(userID)
	}
	return session, nil
}

// PurgeSession permanently deletes a trashed session.
func (svc *FocusService) PurgeSession(ctx context.Context, userID, sessionID string) error {
	lock := svc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := svc.findTrashed(ctx, sessionID, userID)
	if err != nil {
		return err
	}

	if err := svc.Sessions.PurgeSession(ctx, sessionID, userID); err != nil {
		return err
	}

	if session.Status == model.FocusCompleted {
		svc.enqueueRecalc(userID)
	}
	return nil
}

func (svc *FocusService) findTrashed(ctx context.Context, sessionID, userID string) (*model.FocusSession, error) {
	trashed, err := svc.Sessions.ListTrashedSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, session := range trashed {
		if session.SessionID == sessionID {
			return session, nil
		}
	}
	return nil, ErrSessionNotFound
}

// RecalculateStats scans the user's completed sessions and replaces
// the cached snapshot whole. Idempotent; a failure leaves the previous
// snapshot untouched.
func (svc *FocusService) RecalculateStats(ctx context.Context, userID string) (*model.FocusStats, error) {
	sessions, err := svc.Sessions.ListCompletedSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := ComputeFocusStats(userID, sessions, svc.now())
	if err := svc.Stats.UpsertStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// enqueueRecalc hands the recompute to the background worker. Without
// one (tests construct the service bare) it runs inline so session
// state and stats never drift.
func (svc *FocusService) enqueueRecalc(userID string) {
	if svc.recalc != nil {
		svc.recalc.enqueue(userID)
		return
	}
	if _, err := svc.RecalculateStats(context.Background(), userID); err != nil {
		utils.TrackStatsRecalculation(false)
	} else {
		utils.TrackStatsRecalculation(true)
	}
}
