package handler

import (
	"log"
	"time"

	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

const MaxActiveSessions = 5

func LoginHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	start := time.Now()
	defer func() {
		utils.HTTPRequestDuration.WithLabelValues("POST", "/auth/login").Observe(time.Since(start).Seconds())
	}()

	var loginReq model.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackError("auth", "invalid_request")
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	ctx := c.Request.Context()
	userService := usecase.NewUserService(repository.GetUserRepo(utils.MongoClient))

	dbTimer := utils.TrackDBOperation("find", "users")
	user, err := userService.FindUserByUsername(ctx, loginReq.Username)
	dbTimer.ObserveDuration()

	if err != nil {
		utils.TrackError("auth", "user_lookup")
		utils.TrackAuthAttempt("failure", "invalid_username")
		utils.Unauthorized(c, "Invalid username")
		return
	}
	if user == nil {
		utils.TrackError("auth", "user_not_found")
		utils.TrackAuthAttempt("failure", "user_not_found")
		utils.Unauthorized(c, "Invalid username")
		return
	}

	checkPassword, err := services.VerifyPassword(user.Password, loginReq.Password)
	if err != nil {
		utils.TrackError("auth", "password_verification")
		utils.TrackAuthAttempt("failure", "password_verification_error")
		utils.Unauthorized(c, "Incorrect Password")
		return
	}
	if !checkPassword {
		utils.TrackAuthAttempt("failure", "invalid_password")
		utils.Unauthorized(c, "Incorrect Password")
		return
	}

	if user.TwoFactorEnabled {
		if loginReq.TwoFactorCode == "" {
			utils.TrackAuthAttempt("pending", "2fa_required")
			utils.Success(c, gin.H{
				"requires_2fa": true,
				"message":      "2FA code required",
				"user_id":      user.UserID,
			})
			return
		}

		if !totp.Validate(loginReq.TwoFactorCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "invalid_2fa")
			utils.TrackError("auth", "invalid_2fa_code")
			utils.Unauthorized(c, "Invalid 2FA code")
			return
		}
		utils.TrackAuthAttempt("success", "2fa")
	}

	activeCount, err := sessionRepo.CountActiveSessions(ctx, user.UserID)
	if err != nil {
		utils.TrackError("session", "count_check")
		utils.InternalError(c, "Failed to check session count")
		return
	}

	var notice string
	if activeCount >= MaxActiveSessions {
		if err := sessionRepo.EndLeastActiveSession(ctx, user.UserID); err != nil {
			utils.TrackError("session", "session_cleanup")
			utils.InternalError(c, "Failed to manage sessions")
			return
		}
		notice = "Logged out of least active session due to session limit"
		log.Printf("Ended least active session for user %s due to session limit", user.UserID)
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
		utils.TrackError("session", "creation")
		utils.InternalError(c, "Failed to create session")
		return
	}

	utils.TrackAuthAttempt("success", "login")

	response := gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
		"user": gin.H{
			"id":       user.UserID,
			"username": user.Username,
			"email":    user.Email,
		},
	}
	if notice != "" {
		response["notice"] = notice
	}

	utils.Success(c, response)
}
