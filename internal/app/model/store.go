package model

import (
	"time"
)

// Store is a physical shop visited on trips. Identity within a household
// is (name, street, city) so lookup-or-create stays idempotent.
type Store struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index:idx_store_identity,unique" json:"household_id"`
	Name        string    `gorm:"not null;index:idx_store_identity,unique" json:"name"`
	Street      string    `gorm:"index:idx_store_identity,unique" json:"street"`
	City        string    `gorm:"index:idx_store_identity,unique" json:"city"`
	State       string    `gorm:"type:varchar(50)" json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}
