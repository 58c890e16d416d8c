package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

type HabitsService struct {
	repo *repository.HabitsRepo
}

func NewHabitsService(repo *repository.HabitsRepo) *HabitsService {
	return &HabitsService{repo: repo}
}

func (svc *HabitsService) validateHabit(habit *model.Habit) error {
	habit.Name = strings.TrimSpace(habit.Name)
	if habit.Name == "" {
		return errors.New("habit name is required")
	}
	if len(habit.Name) > 100 {
		return errors.New("habit name exceeds maximum length")
	}

	switch habit.Frequency {
	case model.HabitDaily, model.HabitWeekly, model.HabitMonthly:
	case "":
		habit.Frequency = model.HabitDaily
	default:
		return errors.New("invalid habit frequency")
	}

	if len(habit.Tags) > 5 {
		return errors.New("cannot exceed 5 tags per habit")
	}
	return nil
}

func (svc *HabitsService) CreateHabit(ctx context.Context, habit *model.Habit) error {
	if habit.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := svc.validateHabit(habit); err != nil {
		return err
	}

	now := time.Now()
	habit.ID = utils.GenerateID()
	habit.CreatedAt = now
	habit.UpdatedAt = now

	return svc.repo.CreateHabit(ctx, habit)
}

func (svc *HabitsService) GetUserHabits(ctx context.Context, userID string, includeArchived bool) ([]*model.Habit, error) {
	return svc.repo.GetUserHabits(ctx, userID, includeArchived)
}

func (svc *HabitsService) UpdateHabit(ctx context.Context, habitID string, userID string, updates *model.Habit) error {
	if err := svc.validateHabit(updates); err != nil {
		return err
	}
	return svc.repo.UpdateHabit(ctx, habitID, userID, updates)
}

func (svc *HabitsService) ArchiveHabit(ctx context.Context, habitID string, userID string, archived bool) error {
	return svc.repo.SetHabitArchived(ctx, habitID, userID, archived)
}

func (svc *HabitsService) DeleteHabit(ctx context.Context, habitID string, userID string) error {
	return svc.repo.DeleteHabit(ctx, habitID, userID)
}
