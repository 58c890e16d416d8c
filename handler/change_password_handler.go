package handler

import (
	"errors"
	"strings"

	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func ChangePasswordHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format")
		return
	}

	userService := usecase.NewUserService(repository.GetUserRepo(utils.MongoClient))

	if err := userService.ChangePassword(c.Request.Context(), userID.(string), req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			utils.NotFound(c, "User not found")
		case strings.Contains(err.Error(), "current password is incorrect"):
			utils.Unauthorized(c, "Current password is incorrect")
		case strings.Contains(err.Error(), "does not meet requirements"):
			utils.BadRequest(c, "New password does not meet requirements")
		default:
			utils.InternalError(c, "Failed to change password")
		}
		return
	}

	// Force re-authentication on all devices after a password change.
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	if err := sessionRepo.EndAllUserSessions(c.Request.Context(), userID.(string)); err != nil {
		utils.TrackError("session", "end_all_failed")
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{"message": "Password changed successfully. Please log in again."})
}
