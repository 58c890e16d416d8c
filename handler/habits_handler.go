package handler

import (
	"errors"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type HabitsHandler struct {
	service *usecase.HabitsService
}

func NewHabitsHandler(service *usecase.HabitsService) *HabitsHandler {
	return &HabitsHandler{service: service}
}

func (h *HabitsHandler) CreateHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Name        string               `json:"name" binding:"required"`
		Description string               `json:"description"`
		Frequency   model.HabitFrequency `json:"frequency"`
		Tags        []string             `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	habit := &model.Habit{
		UserID:      userID.(string),
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Tags:        req.Tags,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.service.CreateHabit(c.Request.Context(), habit); err != nil {
		if strings.Contains(err.Error(), "invalid") ||
			strings.Contains(err.Error(), "cannot exceed") ||
			strings.Contains(err.Error(), "required") {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, habit)
}

func (h *HabitsHandler) GetUserHabits(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	includeArchived := c.Query("include_archived") == "true"
	habits, err := h.service.GetUserHabits(c.Request.Context(), userID.(string), includeArchived)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, habits)
}

func (h *HabitsHandler) UpdateHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	habitID := c.Param("id")
	if habitID == "" {
		utils.BadRequest(c, "Missing habit ID")
		return
	}

	var updates model.Habit
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.UpdateHabit(c.Request.Context(), habitID, userID.(string), &updates); err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			utils.NotFound(c, "Habit not found")
			return
		}
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "cannot exceed") {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Habit updated successfully"})
}

func (h *HabitsHandler) ArchiveHabit(c *gin.Context) {
	h.setArchived(c, true, "Habit archived")
}

func (h *HabitsHandler) UnarchiveHabit(c *gin.Context) {
	h.setArchived(c, false, "Habit unarchived")
}

func (h *HabitsHandler) setArchived(c *gin.Context, archived bool, message string) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	habitID := c.Param("id")
	if habitID == "" {
		utils.BadRequest(c, "Missing habit ID")
		return
	}

	if err := h.service.ArchiveHabit(c.Request.Context(), habitID, userID.(string), archived); err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			utils.NotFound(c, "Habit not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": message})
}

func (h *HabitsHandler) DeleteHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	habitID := c.Param("id")
	if habitID == "" {
		utils.BadRequest(c, "Missing habit ID")
		return
	}

	if err := h.service.DeleteHabit(c.Request.Context(), habitID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			utils.NotFound(c, "Habit not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Habit deleted successfully"})
}
