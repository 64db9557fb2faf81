package model

import (
	"time"

	"gorm.io/gorm"
)

type Notebook struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	HouseholdID uint           `gorm:"not null;index" json:"household_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Pages []NotebookPage `gorm:"foreignKey:NotebookID" json:"pages,omitempty"`
}

func (Notebook) TableName() string {
	return "notebooks"
}

type NotebookPage struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	NotebookID uint      `gorm:"not null;index" json:"notebook_id"`
	Title      string    `gorm:"not null" json:"title"`
	Body       string    `gorm:"type:text" json:"body"`
	Position   int       `gorm:"default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (NotebookPage) TableName() string {
	return "notebook_pages"
}
