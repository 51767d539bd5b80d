package models

import (
	"time"
)

type UserRole string

const (
	RoleReporter  UserRole = "reporter"
	RoleCollector UserRole = "collector"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	FullName     string   `json:"full_name" gorm:"size:255;not null"`
	Email        string   `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'reporter';check:role IN ('reporter','collector','admin')"`
	// Balance is an advisory cache only. The transactions table is the source
	// of truth; business rules must go through LedgerService.ComputeBalance.
	Balance   int       `json:"balance" gorm:"not null;default:0"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Reports       []WasteReport  `json:"reports,omitempty" gorm:"foreignKey:ReporterID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleReporter, RoleCollector, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsCollector checks if the user is a collector
func (u *User) IsCollector() bool {
	return u.Role == RoleCollector
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
