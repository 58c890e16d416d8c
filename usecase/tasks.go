package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

type TasksService struct {
	repo *repository.TasksRepo
}

func NewTasksService(repo *repository.TasksRepo) *TasksService {
	return &TasksService{repo: repo}
}

func getPriorityWeight(priority model.Priority) int {
	switch priority {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	default:
		return 0
	}
}

func validatePriority(priority model.Priority) error {
	switch priority {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return nil
	default:
		return errors.New("invalid priority level")
	}
}

// GetUserTasks returns the user's live tasks, most urgent first.
func (svc *TasksService) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(tasks, func(i, j int) bool {
		// Incomplete first
		if tasks[i].Complete != tasks[j].Complete {
			return !tasks[i].Complete
		}

		// Overdue items float to the top of the incomplete set
		if !tasks[i].Complete && !tasks[j].Complete {
			iOverdue := !tasks[i].DueDate.IsZero() && tasks[i].DueDate.Before(time.Now())
			jOverdue := !tasks[j].DueDate.IsZero() && tasks[j].DueDate.Before(time.Now())
			if iOverdue != jOverdue {
				return iOverdue
			}
		}

		if tasks[i].Priority != tasks[j].Priority {
			return getPriorityWeight(tasks[i].Priority) > getPriorityWeight(tasks[j].Priority)
		}

		if !tasks[i].DueDate.IsZero() && !tasks[j].DueDate.IsZero() {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		}

		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// CreateTask validates and stores a new task.
func (svc *TasksService) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if task.TaskName == "" {
		return errors.New("task name is required")
	}

	if err := validatePriority(task.Priority); err != nil {
		return err
	}

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	if task.TaskID == "" {
		task.TaskID = utils.GenerateID()
	}

	if !task.DueDate.IsZero() && task.DueDate.Before(now) {
		return errors.New("due date cannot be in the past")
	}
	if !task.ReminderAt.IsZero() {
		if task.ReminderAt.Before(now) {
			return errors.New("reminder time cannot be in the past")
		}
		if !task.DueDate.IsZero() && task.ReminderAt.After(task.DueDate) {
			return errors.New("reminder time cannot be after due date")
		}
	}

	if task.IsRecurring {
		switch task.RecurrencePattern {
		case model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceMonthly, model.RecurrenceYearly:
		default:
			return errors.New("invalid recurrence pattern")
		}
		if task.DueDate.IsZero() {
			return errors.New("due date is required for recurring tasks")
		}
	}

	return svc.repo.CreateTask(ctx, task)
}

// UpdateTask applies non-empty fields from updates onto the task.
func (svc *TasksService) UpdateTask(ctx context.Context, taskID string, userID string, updates *model.Task) error {
	if updates.Priority != "" {
		if err := validatePriority(updates.Priority); err != nil {
			return err
		}
	}
	return svc.repo.UpdateTask(ctx, taskID, userID, updates)
}

func (svc *TasksService) ToggleTaskComplete(ctx context.Context, taskID string, userID string) error {
	return svc.repo.ToggleTaskComplete(ctx, taskID, userID)
}

// TrashTask moves a task into the trash.
func (svc *TasksService) TrashTask(ctx context.Context, taskID string, userID string) error {
	return svc.repo.TrashTask(ctx, taskID, userID)
}

// RestoreTask brings a trashed task back.
func (svc *TasksService) RestoreTask(ctx context.Context, taskID string, userID string) error {
	return svc.repo.RestoreTask(ctx, taskID, userID)
}

// GetTrashedTasks lists the user's trash.
func (svc *TasksService) GetTrashedTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return svc.repo.GetTrashedTasks(ctx, userID)
}

// DeleteTask permanently removes a trashed task.
func (svc *TasksService) DeleteTask(ctx context.Context, taskID string, userID string) error {
	return svc.repo.DeleteTask(ctx, taskID, userID)
}

// SearchTasks filters the user's live tasks by name or description.
func (svc *TasksService) SearchTasks(ctx context.Context, userID string, searchText string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	if searchText == "" {
		return []*model.Task{}, nil
	}

	searchText = strings.ToLower(searchText)
	var results []*model.Task
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.TaskName), searchText) ||
			strings.Contains(strings.ToLower(task.Description), searchText) {
			results = append(results, task)
		}
	}

	return results, nil
}
