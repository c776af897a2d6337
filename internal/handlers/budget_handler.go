package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Name       string              `json:"name" binding:"omitempty,max=100"`
	Amount     int64               `json:"amount" binding:"required,gt=0"`
	Period     models.BudgetPeriod `json:"period" binding:"required,budget_period"`
	StartDate  time.Time           `json:"start_date" binding:"required"`
	EndDate    *time.Time          `json:"end_date"`
	Categories []uint              `json:"categories" binding:"required,min=1"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
// Absent fields are left unchanged.
type UpdateBudgetRequest struct {
	Name       *string              `json:"name" binding:"omitempty,max=100"`
	Amount     *int64               `json:"amount" binding:"omitempty,gt=0"`
	Period     *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	StartDate  *time.Time           `json:"start_date"`
	EndDate    *time.Time           `json:"end_date"`
	Categories []uint               `json:"categories" binding:"omitempty,min=1"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a new budget over a set of categories
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int                 true "Workspace ID"
// @Param       request      body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or category conflict"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
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

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(
		workspaceID, userID, req.Name, req.Amount, req.Period, req.StartDate, req.EndDate, req.Categories,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount, "period": req.Period})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets for the workspace.
// @Summary     Get budgets
// @Description Get a paginated list of budgets for the workspace
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path  int    true  "Workspace ID"
// @Param       period       query string false "Filter by period (weekly/monthly/yearly)"
// @Param       page         query int    false "Page number (default 1)"
// @Param       page_size    query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var budgetPeriod *models.BudgetPeriod
	if v := c.Query("period"); v != "" {
		p := models.BudgetPeriod(v)
		if !p.Unit().Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be 'weekly', 'monthly' or 'yearly'"))
			return
		}
		budgetPeriod = &p
	}

	result, err := h.budgetService.GetWorkspaceBudgets(workspaceID, page, budgetPeriod)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Description Get a specific budget by ID
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int true "Workspace ID"
// @Param       id           path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(workspaceID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles a partial update of an existing budget.
// @Summary     Update budget
// @Description Update an existing budget; only supplied fields are applied
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int                 true "Workspace ID"
// @Param       id           path int                 true "Budget ID"
// @Param       request      body UpdateBudgetRequest true "Updated budget fields"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or category conflict"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/budgets/{id} [patch]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
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

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(workspaceID, budgetID, req.Name, req.Amount, req.Period, req.StartDate, req.EndDate, req.Categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Description Delete a budget by ID (soft delete); transactions and categories are untouched
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int true "Workspace ID"
// @Param       id           path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
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

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(workspaceID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "DELETE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetBudgetProgress handles retrieving the per-window spending progress for a budget.
// @Summary     Get budget progress
// @Description Get per-period spending progress for a budget over a date range
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path  int    true  "Workspace ID"
// @Param       id           path  int    true  "Budget ID"
// @Param       from         query string false "Range start (RFC 3339, defaults to budget start)"
// @Param       to           query string false "Range end (RFC 3339, defaults to now)"
// @Success     200 {array}  services.BudgetProgress "Per-window progress, chronological"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/budgets/{id}/progress [get]
func (h *BudgetHandler) GetBudgetProgress(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.budgetService.GetBudgetProgress(workspaceID, budgetID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// GetWorkspaceProgress handles retrieving progress for every budget in the workspace.
// @Summary     Get progress for all budgets
// @Description Get per-period spending progress for every budget in the workspace
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path  int    true  "Workspace ID"
// @Param       from         query string false "Range start (RFC 3339)"
// @Param       to           query string false "Range end (RFC 3339)"
// @Success     200 {object} map[string][]services.BudgetProgress "Progress keyed by budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{workspace_id}/budgets/progress [get]
func (h *BudgetHandler) GetWorkspaceProgress(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.budgetService.GetWorkspaceProgress(workspaceID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
