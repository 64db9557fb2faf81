package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner  UserRole = "owner" // created the household, manages members
	RoleMember UserRole = "member"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	HouseholdID  uint           `gorm:"not null;index" json:"household_id"`
	Household    *Household     `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	Role         UserRole       `gorm:"type:varchar(20);default:'member'" json:"role"`
	FeedToken    string         `gorm:"uniqueIndex" json:"-"` // iCal feed token, rotatable
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
