package middleware

import (
	"fmt"
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionInactivityLimit ends device sessions that have gone quiet.
const sessionInactivityLimit = 48 * time.Hour

func SessionMiddleware(sessionRepo *repository.SessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		session, err := sessionRepo.GetSession(ctx, sessionID)
		if err != nil || !session.IsActive {
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		if time.Since(session.LastActivityAt) > sessionInactivityLimit {
			session.IsActive = false
			if err := sessionRepo.UpdateSession(ctx, session); err != nil {
				utils.TrackError("session", "deactivate_failed")
			}
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		session.LastActivityAt = time.Now()
		if err := sessionRepo.UpdateSession(ctx, session); err != nil {
			utils.TrackError("session", "activity_update_failed")
		}

		c.Set("session", session)
		c.Next()
	}
}

func CreateSession(c *gin.Context, userID string, sessionRepo *repository.SessionRepo) error {
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)

	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, os, device),
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		LastActivityAt: time.Now(),
		IPAddress:      c.ClientIP(),
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(c.Request.Context(), session); err != nil {
		return err
	}

	c.SetCookie(
		"session_id",
		session.SessionID,
		int(24*time.Hour.Seconds()),
		"/",
		"",
		true,
		true,
	)

	return nil
}
