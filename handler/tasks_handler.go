package handler

import (
	"errors"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TasksHandler struct {
	service *usecase.TasksService
}

func NewTasksHandler(service *usecase.TasksService) *TasksHandler {
	return &TasksHandler{service: service}
}

func (h *TasksHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		TaskName          string                  `json:"task_name" binding:"required"`
		Description       string                  `json:"description"`
		Priority          model.Priority          `json:"priority"`
		Tags              []string                `json:"tags"`
		DueDate           time.Time               `json:"due_date"`
		ReminderAt        time.Time               `json:"reminder_at"`
		IsRecurring       bool                    `json:"is_recurring"`
		RecurrencePattern model.RecurrencePattern `json:"recurrence_pattern,omitempty"`
		RecurrenceEndDate time.Time               `json:"recurrence_end_date,omitempty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task := &model.Task{
		UserID:            userID.(string),
		TaskName:          req.TaskName,
		Description:       req.Description,
		Priority:          req.Priority,
		Tags:              req.Tags,
		DueDate:           req.DueDate,
		ReminderAt:        req.ReminderAt,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
		RecurrenceEndDate: req.RecurrenceEndDate,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := h.service.CreateTask(c.Request.Context(), task); err != nil {
		if strings.Contains(err.Error(), "invalid priority level") ||
			strings.Contains(err.Error(), "cannot exceed 5 tags") ||
			strings.Contains(err.Error(), "tag cannot exceed 20 characters") ||
			strings.Contains(err.Error(), "cannot be in the past") ||
			strings.Contains(err.Error(), "recurrence") ||
			strings.Contains(err.Error(), "reminder") {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, dto.ToTaskResponse(task))
}

func (h *TasksHandler) GetUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks))
}

func (h *TasksHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	var updates model.Task
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.UpdateTask(c.Request.Context(), taskID, userID.(string), &updates); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task updated successfully"})
}

func (h *TasksHandler) ToggleTaskComplete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.ToggleTaskComplete(c.Request.Context(), taskID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task completion toggled"})
}

func (h *TasksHandler) TrashTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.TrashTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task moved to trash"})
}

func (h *TasksHandler) GetTrashedTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetTrashedTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks))
}

func (h *TasksHandler) RestoreTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.RestoreTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found in trash")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task restored"})
}

func (h *TasksHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found in trash")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted permanently"})
}

func (h *TasksHandler) SearchTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	searchText := c.Query("q")
	tasks, err := h.service.SearchTasks(c.Request.Context(), userID.(string), searchText)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks))
}
