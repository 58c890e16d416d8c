package dto

import (
	"main/model"
	"time"
)

type TaskResponse struct {
	ID                string                  `json:"id"`
	TaskName          string                  `json:"task_name"`
	Description       string                  `json:"description"`
	Complete          bool                    `json:"complete"`
	Priority          model.Priority          `json:"priority,omitempty"`
	Tags              []string                `json:"tags,omitempty"`
	DueDate           *time.Time              `json:"due_date,omitempty"`
	ReminderAt        *time.Time              `json:"reminder_at,omitempty"`
	IsRecurring       bool                    `json:"is_recurring"`
	RecurrencePattern model.RecurrencePattern `json:"recurrence_pattern,omitempty"`
	RecurrenceEndDate *time.Time              `json:"recurrence_end_date,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
	DeletedAt         *time.Time              `json:"deleted_at,omitempty"`
	TimeUntilDue      string                  `json:"time_until_due,omitempty"`
}

// Convert model.Task to TaskResponse
func ToTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:                task.TaskID,
		TaskName:          task.TaskName,
		Description:       task.Description,
		Complete:          task.Complete,
		Priority:          task.Priority,
		Tags:              task.Tags,
		IsRecurring:       task.IsRecurring,
		RecurrencePattern: task.RecurrencePattern,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
		DeletedAt:         task.DeletedAt,
	}

	// Handle nullable time fields
	if !task.DueDate.IsZero() {
		response.DueDate = &task.DueDate
		if !task.Complete {
			if task.DueDate.Before(time.Now()) {
				response.TimeUntilDue = "Overdue"
			} else {
				response.TimeUntilDue = time.Until(task.DueDate).Round(time.Hour).String()
			}
		}
	}

	if !task.ReminderAt.IsZero() {
		response.ReminderAt = &task.ReminderAt
	}

	if !task.RecurrenceEndDate.IsZero() {
		response.RecurrenceEndDate = &task.RecurrenceEndDate
	}

	return response
}

// Convert slice of model.Task to slice of TaskResponse
func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
