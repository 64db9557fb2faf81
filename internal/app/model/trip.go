package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is one shopping outing. It visits one or more stores (stops) and
// each stop yields line-item purchases.
type Trip struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	HouseholdID uint      `gorm:"not null;index" json:"household_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Driver      string    `gorm:"type:varchar(100)" json:"driver"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Stops []Stop `gorm:"foreignKey:TripID" json:"stops,omitempty"`
}

func (Trip) TableName() string {
	return "trips"
}

// Stop is one store visited during a trip.
type Stop struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TripID    uint      `gorm:"not null;index" json:"trip_id"`
	StoreID   uint      `gorm:"not null;index" json:"store_id"`
	Store     *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Purchases []Purchase `gorm:"foreignKey:StopID" json:"purchases,omitempty"`
}

func (Stop) TableName() string {
	return "stops"
}

// Purchase is a single line item bought at a stop. Every purchase is
// backed by exactly one budget entry; BudgetEntryID is required at
// creation and the entry's purchase_id is back-linked in the same
// transaction.
type Purchase struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	HouseholdID   uint            `gorm:"not null;index" json:"household_id"`
	StopID        uint            `gorm:"not null;index" json:"stop_id"`
	BudgetEntryID uint            `gorm:"not null;uniqueIndex" json:"budget_entry_id"`
	Brand         string          `gorm:"type:varchar(100)" json:"brand"`
	Name          string          `gorm:"not null" json:"name"`
	Count         int             `gorm:"default:1" json:"count"`
	Unit          string          `gorm:"type:varchar(30)" json:"unit"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Taxed         bool            `gorm:"default:false" json:"taxed"`
	PhotoKey      string          `gorm:"type:text" json:"photo_key,omitempty"` // S3 object key of the receipt photo
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}
