package model

import (
	"time"
)

type TaskType string

const (
	TaskGeneral TaskType = "general"
	TaskTrip    TaskType = "trip" // linked to a Trip; date mirrors the trip's date
)

// Task is a calendar entry. A trip task owns its trip: deleting the task
// deletes the trip and the full stop/purchase/entry cascade.
type Task struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index" json:"household_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Time        string    `gorm:"type:varchar(10)" json:"time"` // "HH:MM", empty for all-day
	TaskType    TaskType  `gorm:"type:varchar(20);default:'general';not null" json:"task_type"`
	TripID      *uint     `gorm:"uniqueIndex" json:"trip_id,omitempty"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	Position    int       `gorm:"default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Steps []TaskStep `gorm:"foreignKey:TaskID" json:"steps,omitempty"`
	Tags  []Tag      `gorm:"many2many:task_tags;" json:"tags,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

type TaskStep struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	Label     string    `gorm:"not null" json:"label"`
	Done      bool      `gorm:"default:false" json:"done"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TaskStep) TableName() string {
	return "task_steps"
}
