package model

import (
	"time"
)

type HabitFrequency string

const (
	HabitDaily   HabitFrequency = "DAILY"
	HabitWeekly  HabitFrequency = "WEEKLY"
	HabitMonthly HabitFrequency = "MONTHLY"
)

type Habit struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	UserID      string         `bson:"user_id" json:"user_id"`
	Name        string         `bson:"name" json:"name" binding:"required"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Frequency   HabitFrequency `bson:"frequency" json:"frequency"`
	Tags        []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	IsArchived  bool           `bson:"is_archived" json:"is_archived"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}
