package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetSourceKind string

const (
	SourceKindStore  BudgetSourceKind = "store" // auto-created per store on first purchase
	SourceKindManual BudgetSourceKind = "manual"
)

// BudgetSource groups entries. Name is unique within the household so the
// lazy per-store creation can look sources up by store name.
type BudgetSource struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	HouseholdID uint             `gorm:"not null;index:idx_budget_source_name,unique" json:"household_id"`
	UserID      uint             `gorm:"not null;index" json:"user_id"`
	Name        string           `gorm:"not null;index:idx_budget_source_name,unique" json:"name"`
	Kind        BudgetSourceKind `gorm:"type:varchar(20);default:'manual';not null" json:"kind"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Entries []BudgetEntry `gorm:"foreignKey:SourceID" json:"entries,omitempty"`
	Tags    []Tag         `gorm:"many2many:budget_source_tags;" json:"tags,omitempty"`
}

func (BudgetSource) TableName() string {
	return "budget_sources"
}

type EntryType string

const (
	EntryExpense EntryType = "expense"
	EntryIncome  EntryType = "income"
)

// BudgetEntry is one ledger line. PurchaseID is the back half of the
// bidirectional 1:1 with Purchase: the entry is inserted first, the
// purchase references it, then purchase_id is set — all in one
// transaction so neither side can dangle.
type BudgetEntry struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	HouseholdID uint            `gorm:"not null;index" json:"household_id"`
	SourceID    uint            `gorm:"not null;index" json:"source_id"`
	Source      *BudgetSource   `gorm:"foreignKey:SourceID" json:"source,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	EntryType   EntryType       `gorm:"type:varchar(20);not null;index" json:"entry_type"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	PurchaseID  *uint           `gorm:"uniqueIndex" json:"purchase_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (BudgetEntry) TableName() string {
	return "budget_entries"
}
