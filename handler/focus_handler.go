package handler

import (
	"errors"
	"time"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type FocusHandler struct {
	service *usecase.FocusService
}

func NewFocusHandler(service *usecase.FocusService) *FocusHandler {
	return &FocusHandler{service: service}
}

// respondFocusError maps the focus error taxonomy onto HTTP statuses.
// Not-found deliberately covers foreign and trashed sessions too.
func respondFocusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSessionConflict):
		utils.Conflict(c, "A focus session is already in progress")
	case errors.Is(err, usecase.ErrInvalidState):
		utils.BadRequest(c, "Operation not allowed in the session's current state")
	case errors.Is(err, usecase.ErrSessionNotFound):
		utils.NotFound(c, "Focus session not found")
	default:
		utils.InternalError(c, err.Error())
	}
}

func (h *FocusHandler) StartSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Task            string `json:"task"`
		DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.service.StartSession(c.Request.Context(), userID.(string), req.Task, req.DurationMinutes)
	if err != nil {
		respondFocusError(c, err)
		return
	}

	utils.Created(c, dto.ToFocusSessionResponse(session, time.Now()))
}

func (h *FocusHandler) GetActiveSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	session, err := h.service.GetActiveSession(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	if session == nil {
		utils.Success(c, nil)
		return
	}

	utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
}

// transition wraps the shared shape of the pause/resume/complete/
// end-early/cancel endpoints.
func (h *FocusHandler) transition(c *gin.Context, op func(c *gin.Context, userID, sessionID string) error) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		utils.BadRequest(c, "Missing session ID")
		return
	}

	if err := op(c, userID.(string), sessionID); err != nil {
		respondFocusError(c, err)
	}
}

func (h *FocusHandler) PauseSession(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		session, err := h.service.PauseSession(c.Request.Context(), userID, sessionID)
		if err != nil {
			return err
		}
		utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
		return nil
	})
}

func (h *FocusHandler) ResumeSession(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		session, err := h.service.ResumeSession(c.Request.Context(), userID, sessionID)
		if err != nil {
			return err
		}
		utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
		return nil
	})
}

func (h *FocusHandler) CompleteSession(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		session, err := h.service.CompleteSession(c.Request.Context(), userID, sessionID)
		if err != nil {
			return err
		}
		utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
		return nil
	})
}

func (h *FocusHandler) EndSessionEarly(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		session, err := h.service.EndSessionEarly(c.Request.Context(), userID, sessionID)
		if err != nil {
			return err
		}
		utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
		return nil
	})
}

func (h *FocusHandler) CancelSession(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		session, err := h.service.CancelSession(c.Request.Context(), userID, sessionID)
		if err != nil {
			return err
		}
		utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
		return nil
	})
}

func (h *FocusHandler) GetStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToFocusStatsResponse(stats))
}

func (h *FocusHandler) RecalculateStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	stats, err := h.service.RecalculateStats(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToFocusStatsResponse(stats))
}

func (h *FocusHandler) GetHistory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	sessions, err := h.service.GetHistory(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToFocusSessionResponses(sessions, time.Now()))
}

func (h *FocusHandler) TrashSession(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		session, err := h.service.TrashSession(c.Request.Context(), userID, sessionID)
		if err != nil {
			return err
		}
		utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
		return nil
	})
}

func (h *FocusHandler) ListTrash(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	sessions, err := h.service.ListTrash(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToFocusSessionResponses(sessions, time.Now()))
}

func (h *FocusHandler) RestoreSession(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		session, err := h.service.RestoreSession(c.Request.Context(), userID, sessionID)
		if err != nil {
			return err
		}
		utils.Success(c, dto.ToFocusSessionResponse(session, time.Now()))
		return nil
	})
}

func (h *FocusHandler) PurgeSession(c *gin.Context) {
	h.transition(c, func(c *gin.Context, userID, sessionID string) error {
		if err := h.service.PurgeSession(c.Request.Context(), userID, sessionID); err != nil {
			return err
		}
		utils.Success(c, gin.H{"message": "Focus session permanently deleted"})
		return nil
	})
}
