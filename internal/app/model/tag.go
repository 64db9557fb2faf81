package model

import (
	"time"
)

// Tag is a household-scoped label. Name is unique within the household;
// the same name may exist in different households.
type Tag struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index:idx_tag_name,unique" json:"household_id"`
	Name        string    `gorm:"type:varchar(50);not null;index:idx_tag_name,unique" json:"name"`
	Color       string    `gorm:"type:varchar(20)" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Tag) TableName() string {
	return "tags"
}

type TaskTag struct {
	TaskID    uint      `gorm:"primaryKey;index" json:"task_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Task      Task      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (TaskTag) TableName() string {
	return "task_tags"
}

type BudgetSourceTag struct {
	BudgetSourceID uint         `gorm:"primaryKey;index" json:"budget_source_id"`
	TagID          uint         `gorm:"primaryKey;index" json:"tag_id"`
	BudgetSource   BudgetSource `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag            Tag          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (BudgetSourceTag) TableName() string {
	return "budget_source_tags"
}

type InventoryItemTag struct {
	InventoryItemID uint          `gorm:"primaryKey;index" json:"inventory_item_id"`
	TagID           uint          `gorm:"primaryKey;index" json:"tag_id"`
	InventoryItem   InventoryItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag             Tag           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (InventoryItemTag) TableName() string {
	return "inventory_item_tags"
}

type GoalTag struct {
	GoalID    uint      `gorm:"primaryKey;index" json:"goal_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Goal      Goal      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (GoalTag) TableName() string {
	return "goal_tags"
}
