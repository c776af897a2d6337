package models

import "time"

// User represents a registered user. Users own nothing directly except
// their workspaces; all finance data hangs off a workspace.
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Memberships []WorkspaceMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
