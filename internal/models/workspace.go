package models

import "time"

// WorkspaceRole represents a member's role within a workspace
type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "owner"
	WorkspaceRoleMember WorkspaceRole = "member"
)

// Workspace is the unit of data isolation. Every account, category,
// transaction, bill, and budget belongs to exactly one workspace.
type Workspace struct {
	Base
	Name    string `gorm:"not null" json:"name"`
	OwnerID uint   `gorm:"not null" json:"owner_id"`

	Members []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
}

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	Base
	WorkspaceID uint          `gorm:"not null;uniqueIndex:idx_workspace_user" json:"workspace_id"`
	UserID      uint          `gorm:"not null;uniqueIndex:idx_workspace_user" json:"user_id"`
	Role        WorkspaceRole `gorm:"not null" json:"role"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// WorkspaceInvitation is an outstanding invite to join a workspace. The
// token is handed back to the caller; delivering it is not this service's
// concern.
type WorkspaceInvitation struct {
	Base
	WorkspaceID uint          `gorm:"not null" json:"workspace_id"`
	Email       string        `gorm:"not null" json:"email"`
	Role        WorkspaceRole `gorm:"not null" json:"role"`
	Token       string        `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt   time.Time     `gorm:"not null" json:"expires_at"`
	AcceptedAt  *time.Time    `json:"accepted_at,omitempty"`
}
