package model

import (
	"time"
)

type Habit struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index" json:"household_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Schedule    string    `gorm:"type:varchar(50);default:'daily'" json:"schedule"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Habit) TableName() string {
	return "habits"
}

type CompletionStatus string

const (
	CompletionCompleted CompletionStatus = "completed"
	CompletionSkipped   CompletionStatus = "skipped" // requires a non-empty reason
)

// HabitCompletion records one habit on one day. The composite unique
// index makes a second completion for the same (habit, date) a
// constraint violation. Dates are normalized to midnight UTC before
// insert. Streaks are a read-time aggregation, never stored.
type HabitCompletion struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	HabitID   uint             `gorm:"not null;index:idx_habit_completion_day,unique" json:"habit_id"`
	Date      time.Time        `gorm:"type:date;not null;index:idx_habit_completion_day,unique" json:"date"`
	Status    CompletionStatus `gorm:"type:varchar(20);not null" json:"status"`
	Reason    string           `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (HabitCompletion) TableName() string {
	return "habit_completions"
}
