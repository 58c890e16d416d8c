package model

import (
	"errors"
	"time"
)

var (
	// ErrSessionConflict is returned when starting a focus session
	// while the user already has one in a non-terminal state.
	ErrSessionConflict = errors.New("an active focus session already exists")

	// ErrInvalidState is returned for transitions that are illegal
	// from the session's current state.
	ErrInvalidState = errors.New("operation not allowed in the session's current state")

	// ErrSessionNotFound covers missing sessions, sessions owned by
	// another user and soft-deleted sessions alike.
	ErrSessionNotFound = errors.New("focus session not found")
)

type FocusStatus string

const (
	FocusActive    FocusStatus = "ACTIVE"
	FocusPaused    FocusStatus = "PAUSED"
	FocusCompleted FocusStatus = "COMPLETED"
	FocusCancelled FocusStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are legal.
func (s FocusStatus) IsTerminal() bool {
	return s == FocusCompleted || s == FocusCancelled
}

type FocusSession struct {
	SessionID          string      `bson:"_id" json:"id"`
	UserID             string      `bson:"user_id" json:"user_id"`
	Task               string      `bson:"task,omitempty" json:"task,omitempty"`
	DurationMinutes    int         `bson:"duration_minutes" json:"duration_minutes"`
	StartedAt          time.Time   `bson:"started_at" json:"started_at"`
	PausedAt           *time.Time  `bson:"paused_at,omitempty" json:"paused_at,omitempty"`
	TotalPausedSeconds int64       `bson:"total_paused_seconds" json:"total_paused_seconds"`
	Status             FocusStatus `bson:"status" json:"status"`
	// InProgress mirrors Status for the partial unique index. The
	// repository sets it on every write; omitempty keeps terminal
	// sessions out of the index entirely.
	InProgress  bool       `bson:"in_progress,omitempty" json:"-"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	DeletedAt   *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
