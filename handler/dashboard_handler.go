package handler

import (
	"log"
	"time"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	userRepo    *repository.UserRepo
	tasksRepo   *repository.TasksRepo
	sessionRepo *repository.SessionRepo
	focus       *usecase.FocusService
}

func NewDashboardHandler(
	userRepo *repository.UserRepo,
	tasksRepo *repository.TasksRepo,
	sessionRepo *repository.SessionRepo,
	focus *usecase.FocusService,
) *DashboardHandler {
	return &DashboardHandler{
		userRepo:    userRepo,
		tasksRepo:   tasksRepo,
		sessionRepo: sessionRepo,
		focus:       focus,
	}
}

// GetDashboard aggregates the per-user overview shown on the home
// screen: task counts, focus statistics and account activity.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	user, err := h.userRepo.FindUser(ctx, userID.(string))
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	totalTasks, err := h.tasksRepo.CountAllTasks(ctx, userID.(string))
	if err != nil {
		log.Printf("Error counting tasks: %v", err)
		utils.InternalError(c, "Failed to count tasks")
		return
	}

	completedTasks, err := h.tasksRepo.CompletedCount(ctx, userID.(string))
	if err != nil {
		log.Printf("Error getting completed tasks: %v", err)
		utils.InternalError(c, "Failed to get completed tasks")
		return
	}

	pendingTasks, err := h.tasksRepo.PendingCount(ctx, userID.(string))
	if err != nil {
		log.Printf("Error getting pending tasks: %v", err)
		utils.InternalError(c, "Failed to get pending tasks")
		return
	}

	focusStats, err := h.focus.GetStats(ctx, userID.(string))
	if err != nil {
		log.Printf("Error getting focus stats: %v", err)
		utils.InternalError(c, "Failed to get focus stats")
		return
	}

	activeSession, err := h.focus.GetActiveSession(ctx, userID.(string))
	if err != nil {
		log.Printf("Error getting active focus session: %v", err)
		utils.InternalError(c, "Failed to get active focus session")
		return
	}

	sessions, err := h.sessionRepo.GetUserActiveSessions(ctx, userID.(string))
	if err != nil {
		log.Printf("Error getting sessions: %v", err)
		utils.InternalError(c, "Failed to get sessions")
		return
	}

	var lastActive time.Time
	for _, session := range sessions {
		if session.LastActivityAt.After(lastActive) {
			lastActive = session.LastActivityAt
		}
	}

	dashboard := gin.H{
		"tasks": gin.H{
			"total":     totalTasks,
			"completed": completedTasks,
			"pending":   pendingTasks,
		},
		"focus": dto.ToFocusStatsResponse(focusStats),
		"activity": gin.H{
			"account_created": user.CreatedAt,
			"device_sessions": len(sessions),
			"last_active":     lastActive,
		},
	}

	if activeSession != nil {
		dashboard["active_focus_session"] = dto.ToFocusSessionResponse(activeSession, time.Now())
	}

	utils.Success(c, gin.H{"dashboard": dashboard})
}
