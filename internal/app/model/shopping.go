package model

import (
	"time"
)

type ShoppingList struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index" json:"household_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []ShoppingListItem `gorm:"foreignKey:ListID" json:"items,omitempty"`
}

func (ShoppingList) TableName() string {
	return "shopping_lists"
}

// ShoppingListItem needs either a free-text Name or a reference to an
// inventory item. The service rejects rows with neither.
type ShoppingListItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ListID          uint           `gorm:"not null;index" json:"list_id"`
	Name            string         `json:"name"`
	InventoryItemID *uint          `gorm:"index" json:"inventory_item_id,omitempty"`
	InventoryItem   *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
	Quantity        float64        `gorm:"default:1" json:"quantity"`
	Checked         bool           `gorm:"default:false" json:"checked"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}
