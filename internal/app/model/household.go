package model

import (
	"time"

	"gorm.io/gorm"
)

// Household is the tenant boundary. Every other entity carries a
// household_id and every query is filtered by it.
type Household struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Users []User `gorm:"foreignKey:HouseholdID" json:"users,omitempty"`
}

func (Household) TableName() string {
	return "households"
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation lets an existing member pull another registered user into
// the household by email. The code is the opaque handle used by the
// accept/decline endpoints.
type Invitation struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	HouseholdID uint             `gorm:"not null;index" json:"household_id"`
	Household   *Household       `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	Email       string           `gorm:"not null;index" json:"email"`
	Code        string           `gorm:"uniqueIndex;not null" json:"code"`
	Status      InvitationStatus `gorm:"type:varchar(20);default:'pending';not null" json:"status"`
	InvitedByID uint             `gorm:"not null" json:"invited_by_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}
