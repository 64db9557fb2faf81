package model

import (
	"time"
)

// InventorySheet groups stock items (pantry, freezer, garage, ...).
type InventorySheet struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index" json:"household_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []InventoryItem `gorm:"foreignKey:SheetID" json:"items,omitempty"`
}

func (InventorySheet) TableName() string {
	return "inventory_sheets"
}

// InventoryItem tracks stock of one thing. PurchaseID is set when a
// purchase is "added to inventory".
type InventoryItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SheetID      uint      `gorm:"not null;index" json:"sheet_id"`
	HouseholdID  uint      `gorm:"not null;index" json:"household_id"`
	Name         string    `gorm:"not null" json:"name"`
	Quantity     float64   `gorm:"default:0" json:"quantity"`
	Unit         string    `gorm:"type:varchar(30)" json:"unit"`
	LowThreshold float64   `gorm:"default:0" json:"low_threshold"`
	PurchaseID   *uint     `gorm:"index" json:"purchase_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tags []Tag `gorm:"many2many:inventory_item_tags;" json:"tags,omitempty"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
