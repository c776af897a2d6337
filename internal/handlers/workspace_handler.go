package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// WorkspaceHandler handles workspace and membership requests.
type WorkspaceHandler struct {
	workspaceService services.WorkspaceServicer
	auditService     services.AuditServicer
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService services.WorkspaceServicer, auditService services.AuditServicer) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService, auditService: auditService}
}

// CreateWorkspaceRequest represents the request payload for creating a workspace.
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// InviteMemberRequest represents the request payload for inviting a member.
type InviteMemberRequest struct {
	Email string               `json:"email" binding:"required,email"`
	Role  models.WorkspaceRole `json:"role" binding:"omitempty,workspace_role"`
}

// CreateWorkspace handles the creation of a new workspace.
// @Summary     Create a workspace
// @Description Create a new workspace owned by the authenticated user
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWorkspaceRequest true "Workspace details"
// @Success     201 {object} models.Workspace "Workspace created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspace.ID, userID, "CREATE_WORKSPACE", "workspace", workspace.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"workspace": workspace})
}

// GetWorkspaces lists the workspaces the authenticated user belongs to.
// @Summary     Get workspaces
// @Description Get all workspaces the authenticated user is a member of
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Workspace "Workspaces"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces [get]
func (h *WorkspaceHandler) GetWorkspaces(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspaces, err := h.workspaceService.GetUserWorkspaces(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

// GetMembers lists the members of a workspace.
// @Summary     Get workspace members
// @Description Get the members of a workspace
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int true "Workspace ID"
// @Success     200 {array}  models.WorkspaceMember "Members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/members [get]
func (h *WorkspaceHandler) GetMembers(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.workspaceService.GetMembers(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// InviteMember issues an invitation token for an email address.
// @Summary     Invite a member
// @Description Create an invitation token for an email address; delivery is up to the caller
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int                 true "Workspace ID"
// @Param       request      body InviteMemberRequest true "Invitation details"
// @Success     201 {object} models.WorkspaceInvitation "Invitation created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/invitations [post]
func (h *WorkspaceHandler) InviteMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	invitation, err := h.workspaceService.InviteMember(workspaceID, userID, req.Email, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "INVITE_MEMBER", "invitation", invitation.ID, c.ClientIP(),
		map[string]interface{}{"email": req.Email, "role": invitation.Role})

	c.JSON(http.StatusCreated, gin.H{"invitation": invitation})
}

// AcceptInvitation redeems an invitation token for the authenticated user.
// @Summary     Accept an invitation
// @Description Join a workspace using an invitation token
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Param       token path string true "Invitation token"
// @Success     200 {object} models.WorkspaceMember "Membership created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Invitation not found or expired"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /invitations/{token}/accept [post]
func (h *WorkspaceHandler) AcceptInvitation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	member, err := h.workspaceService.AcceptInvitation(userID, c.Param("token"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(member.WorkspaceID, userID, "ACCEPT_INVITATION", "workspace_member", member.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"member": member})
}
