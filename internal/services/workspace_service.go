package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/config"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

// workspaceService handles workspace and membership logic.
type workspaceService struct {
	db *gorm.DB
}

// NewWorkspaceService creates a new WorkspaceServicer.
func NewWorkspaceService(db *gorm.DB) WorkspaceServicer {
	return &workspaceService{db: db}
}

// CreateWorkspace creates a workspace and enrolls the creator as its owner.
func (s *workspaceService) CreateWorkspace(ownerID uint, name string) (*models.Workspace, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "workspace name is required")
	}

	workspace := &models.Workspace{Name: name, OwnerID: ownerID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		member := &models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      ownerID,
			Role:        models.WorkspaceRoleOwner,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return workspace, nil
}

// GetUserWorkspaces returns all workspaces the user is a member of.
func (s *workspaceService) GetUserWorkspaces(userID uint) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := s.db.
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ? AND workspace_members.deleted_at IS NULL", userID).
		Find(&workspaces).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return workspaces, nil
}

// GetMembers returns the members of a workspace with their users preloaded.
func (s *workspaceService) GetMembers(workspaceID uint) ([]models.WorkspaceMember, error) {
	var members []models.WorkspaceMember
	if err := s.db.Preload("User").Where("workspace_id = ?", workspaceID).Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// InviteMember issues an invitation token for an email address. The token
// is returned to the caller; delivering it (email or otherwise) is outside
// this service.
func (s *workspaceService) InviteMember(workspaceID, inviterID uint, email string, role models.WorkspaceRole) (*models.WorkspaceInvitation, error) {
	if email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required")
	}
	if role == "" {
		role = models.WorkspaceRoleMember
	}

	// An existing member does not need an invitation.
	var count int64
	err := s.db.Model(&models.WorkspaceMember{}).
		Joins("JOIN users ON users.id = workspace_members.user_id").
		Where("workspace_members.workspace_id = ? AND users.email = ?", workspaceID, strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyMember
	}

	invitation := &models.WorkspaceInvitation{
		WorkspaceID: workspaceID,
		Email:       strings.ToLower(email),
		Role:        role,
		Token:       uuid.New(),
		ExpiresAt:   time.Now().Add(config.Get().InvitationTTL),
	}

	if err := s.db.Create(invitation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return invitation, nil
}

// AcceptInvitation redeems an invitation token for the given user. Expired,
// already-accepted, and unknown tokens are indistinguishable to the caller.
func (s *workspaceService) AcceptInvitation(userID uint, token string) (*models.WorkspaceMember, error) {
	var invitation models.WorkspaceInvitation
	err := s.db.Where("token = ? AND accepted_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var existing int64
	err = s.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", invitation.WorkspaceID, userID).
		Count(&existing).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing > 0 {
		return nil, apperrors.ErrAlreadyMember
	}

	member := &models.WorkspaceMember{
		WorkspaceID: invitation.WorkspaceID,
		UserID:      userID,
		Role:        invitation.Role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&invitation).Update("accepted_at", &now).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return member, nil
}
