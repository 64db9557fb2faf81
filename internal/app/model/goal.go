package model

import (
	"time"
)

type GoalCategory struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index" json:"household_id"`
	Name        string    `gorm:"not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (GoalCategory) TableName() string {
	return "goal_categories"
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalPaused    GoalStatus = "paused"
	GoalAchieved  GoalStatus = "achieved"
	GoalAbandoned GoalStatus = "abandoned"
)

type Goal struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	HouseholdID uint          `gorm:"not null;index" json:"household_id"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	CategoryID  *uint         `gorm:"index" json:"category_id,omitempty"`
	Category    *GoalCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Title       string        `gorm:"not null" json:"title"`
	Status      GoalStatus    `gorm:"type:varchar(20);default:'active';not null" json:"status"`
	TargetDate  *time.Time    `gorm:"type:date" json:"target_date,omitempty"`
	Progress    int           `gorm:"default:0" json:"progress"` // 0-100
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Milestones []Milestone   `gorm:"foreignKey:GoalID" json:"milestones,omitempty"`
	History    []GoalHistory `gorm:"foreignKey:GoalID" json:"history,omitempty"`
	Tags       []Tag         `gorm:"many2many:goal_tags;" json:"tags,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}

type Milestone struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	GoalID    uint      `gorm:"not null;index" json:"goal_id"`
	Title     string    `gorm:"not null" json:"title"`
	Done      bool      `gorm:"default:false" json:"done"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Milestone) TableName() string {
	return "milestones"
}

// GoalHistory is an append-only record of status/progress changes.
type GoalHistory struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	GoalID    uint       `gorm:"not null;index" json:"goal_id"`
	Status    GoalStatus `gorm:"type:varchar(20);not null" json:"status"`
	Progress  int        `json:"progress"`
	Note      string     `gorm:"type:text" json:"note"`
	CreatedAt time.Time  `json:"created_at"`
}

func (GoalHistory) TableName() string {
	return "goal_history"
}
