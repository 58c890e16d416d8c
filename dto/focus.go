package dto

import (
	"time"

	"main/model"
	"main/usecase"
	"main/utils"
)

type FocusSessionResponse struct {
	ID                 string            `json:"id"`
	Task               string            `json:"task,omitempty"`
	DurationMinutes    int               `json:"duration_minutes"`
	StartedAt          time.Time         `json:"started_at"`
	PausedAt           *time.Time        `json:"paused_at,omitempty"`
	TotalPausedSeconds int64             `json:"total_paused_seconds"`
	Status             model.FocusStatus `json:"status"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	DeletedAt          *time.Time        `json:"deleted_at,omitempty"`
	RemainingSeconds   *int64            `json:"remaining_seconds,omitempty"`
	RemainingDisplay   string            `json:"remaining_display,omitempty"`
}

// ToFocusSessionResponse renders a session for the API. Remaining time
// is only meaningful for non-terminal sessions.
func ToFocusSessionResponse(session *model.FocusSession, now time.Time) FocusSessionResponse {
	response := FocusSessionResponse{
		ID:                 session.SessionID,
		Task:               session.Task,
		DurationMinutes:    session.DurationMinutes,
		StartedAt:          session.StartedAt,
		PausedAt:           session.PausedAt,
		TotalPausedSeconds: session.TotalPausedSeconds,
		Status:             session.Status,
		CompletedAt:        session.CompletedAt,
		DeletedAt:          session.DeletedAt,
	}

	if !session.Status.IsTerminal() {
		remaining := usecase.SessionRemainingSeconds(session, now)
		response.RemainingSeconds = &remaining
		response.RemainingDisplay = utils.FormatSeconds(remaining)
	}

	return response
}

func ToFocusSessionResponses(sessions []*model.FocusSession, now time.Time) []FocusSessionResponse {
	responses := make([]FocusSessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = ToFocusSessionResponse(session, now)
	}
	return responses
}

type FocusStatsResponse struct {
	CurrentStreak       int    `json:"current_streak"`
	BestStreak          int    `json:"best_streak"`
	LastStreakDate      string `json:"last_streak_date,omitempty"`
	HighestDailyMinutes int    `json:"highest_daily_minutes"`
	HighestDailyDate    string `json:"highest_daily_date,omitempty"`
	BestSessionsInDay   int    `json:"best_sessions_in_day"`
}

// ToFocusStatsResponse renders the cached snapshot; dates are UTC
// calendar days in YYYY-MM-DD form.
func ToFocusStatsResponse(stats *model.FocusStats) FocusStatsResponse {
	response := FocusStatsResponse{
		CurrentStreak:       stats.CurrentStreak,
		BestStreak:          stats.BestStreak,
		HighestDailyMinutes: stats.HighestDailyMinutes,
		BestSessionsInDay:   stats.BestSessionsInDay,
	}

	if stats.LastStreakDate != nil {
		response.LastStreakDate = stats.LastStreakDate.UTC().Format("2006-01-02")
	}
	if stats.HighestDailyDate != nil {
		response.HighestDailyDate = stats.HighestDailyDate.UTC().Format("2006-01-02")
	}

	return response
}
