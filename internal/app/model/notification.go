package model

import (
	"time"

	"github.com/lib/pq"
)

type NotificationType string

const (
	NotificationTaskDue       NotificationType = "task_due"
	NotificationLowInventory  NotificationType = "low_inventory"
	NotificationBudgetWarning NotificationType = "budget_warning"
	NotificationHabitReminder NotificationType = "habit_reminder"
	NotificationSystem        NotificationType = "system"
)

// NotificationLinkType enumerates the entity kinds a notification may
// point at. Together with LinkID it forms a tagged reference; anything
// outside this set is rejected at write time.
type NotificationLinkType string

const (
	LinkTask          NotificationLinkType = "task"
	LinkTrip          NotificationLinkType = "trip"
	LinkBudgetEntry   NotificationLinkType = "budget_entry"
	LinkInventoryItem NotificationLinkType = "inventory_item"
	LinkHabit         NotificationLinkType = "habit"
	LinkGoal          NotificationLinkType = "goal"
)

// ValidNotificationType reports whether t is one of the enumerated types.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTaskDue, NotificationLowInventory, NotificationBudgetWarning,
		NotificationHabitReminder, NotificationSystem:
		return true
	}
	return false
}

// ValidLinkType reports whether t is one of the enumerated link targets.
func ValidLinkType(t NotificationLinkType) bool {
	switch t {
	case LinkTask, LinkTrip, LinkBudgetEntry, LinkInventoryItem, LinkHabit, LinkGoal:
		return true
	}
	return false
}

// Notification is one row of the per-user append-only log. Delivery is
// polling-read: clients list and mark read, nothing is pushed.
type Notification struct {
	ID          uint                  `gorm:"primarykey" json:"id"`
	HouseholdID uint                  `gorm:"not null;index" json:"household_id"`
	UserID      uint                  `gorm:"not null;index" json:"user_id"`
	Type        NotificationType      `gorm:"type:varchar(30);not null;index" json:"type"`
	Title       string                `gorm:"type:text;not null" json:"title"`
	Body        string                `gorm:"type:text" json:"body"`
	LinkType    *NotificationLinkType `gorm:"type:varchar(30)" json:"link_type,omitempty"`
	LinkID      *uint                 `json:"link_id,omitempty"`
	Read        bool                  `gorm:"default:false;index" json:"read"`
	ReadAt      *time.Time            `json:"read_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationPreferences is per-user: which types get generated at all.
type NotificationPreferences struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	EnabledTypes pq.StringArray `gorm:"type:text[];default:'{}';not null" json:"enabled_types"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (NotificationPreferences) TableName() string {
	return "notification_preferences"
}

// TypeEnabled reports whether the given type is switched on. An empty
// list means everything is enabled (the default for new users).
func (p *NotificationPreferences) TypeEnabled(t NotificationType) bool {
	if len(p.EnabledTypes) == 0 {
		return true
	}
	for _, enabled := range p.EnabledTypes {
		if enabled == string(t) {
			return true
		}
	}
	return false
}
