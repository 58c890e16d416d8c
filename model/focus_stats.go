package model

import "time"

// FocusStats is a denormalized per-user snapshot of the statistics
// engine's last full recompute. It is always replaced whole, never
// patched field by field.
type FocusStats struct {
	UserID              string     `bson:"user_id" json:"user_id"`
	CurrentStreak       int        `bson:"current_streak" json:"current_streak"`
	BestStreak          int        `bson:"best_streak" json:"best_streak"`
	LastStreakDate      *time.Time `bson:"last_streak_date,omitempty" json:"last_streak_date,omitempty"`
	HighestDailyMinutes int        `bson:"highest_daily_minutes" json:"highest_daily_minutes"`
	HighestDailyDate    *time.Time `bson:"highest_daily_date,omitempty" json:"highest_daily_date,omitempty"`
	BestSessionsInDay   int        `bson:"best_sessions_in_day" json:"best_sessions_in_day"`
	UpdatedAt           time.Time  `bson:"updated_at" json:"updated_at"`
}
