package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// WorkspaceMiddleware resolves the :workspace_id path parameter, verifies
// that the authenticated user is a member, and sets workspaceID and
// workspaceRole in the context. Every workspace-scoped route sits behind
// it, so handlers can thread an explicit workspace ID into the services.
func WorkspaceMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		workspaceID, err := strconv.ParseUint(c.Param("workspace_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
			c.Abort()
			return
		}

		var member models.WorkspaceMember
		err = db.Where("workspace_id = ? AND user_id = ?", uint(workspaceID), userID.(uint)).
			First(&member).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Membership and existence are indistinguishable on purpose:
				// non-members must not learn whether a workspace exists.
				c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
			} else {
				logger.Get().Errorw("workspace membership lookup failed",
					"error", err.Error(),
					"workspace_id", workspaceID,
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal error occurred"})
			}
			c.Abort()
			return
		}

		c.Set("workspaceID", uint(workspaceID))
		c.Set("workspaceRole", member.Role)
		c.Next()
	}
}
