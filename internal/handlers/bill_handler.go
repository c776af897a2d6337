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

// BillHandler handles recurring bill requests.
type BillHandler struct {
	billService  services.BillServicer
	auditService services.AuditServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService services.BillServicer, auditService services.AuditServicer) *BillHandler {
	return &BillHandler{billService: billService, auditService: auditService}
}

// CreateBillRequest represents the request payload for creating a recurring bill.
type CreateBillRequest struct {
	Name        string              `json:"name" binding:"required,min=1,max=100"`
	Amount      int64               `json:"amount" binding:"required,gt=0"`
	Period      models.BudgetPeriod `json:"period" binding:"required,budget_period"`
	CategoryID  *uint               `json:"category_id"`
	NextDueDate time.Time           `json:"next_due_date" binding:"required"`
}

// CreateBill handles creating a recurring bill.
// @Summary     Create a bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int               true "Workspace ID"
// @Param       request      body CreateBillRequest true "Bill details"
// @Success     201 {object} models.Bill "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /workspaces/{workspace_id}/bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.billService.CreateBill(workspaceID, req.Name, req.Amount, req.Period, req.CategoryID, req.NextDueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "CREATE_BILL", "bill", bill.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount, "period": req.Period})

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// GetBills handles listing bills ordered by next due date.
// @Summary     Get bills
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path  int true  "Workspace ID"
// @Param       page         query int false "Page number (default 1)"
// @Param       page_size    query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Bill] "Paginated bills"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /workspaces/{workspace_id}/bills [get]
func (h *BillHandler) GetBills(c *gin.Context) {
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

	result, err := h.billService.GetWorkspaceBills(workspaceID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUpcomingBills handles listing bills due within the given number of days.
// @Summary     Get upcoming bills
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path  int true  "Workspace ID"
// @Param       days         query int false "Lookahead in days (default 7)"
// @Success     200 {array}  models.Bill "Bills due soon"
// @Failure     400 {object} ErrorResponse "Invalid lookahead"
// @Router      /workspaces/{workspace_id}/bills/upcoming [get]
func (h *BillHandler) GetUpcomingBills(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := parseUintQuery(c, "days")
		if err != nil {
			respondWithError(c, err)
			return
		}
		days = int(*parsed)
	}

	bills, err := h.billService.GetUpcomingBills(workspaceID, time.Duration(days)*24*time.Hour)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// MarkBillPaid handles marking a bill paid and rolling its due date forward.
// @Summary     Mark bill paid
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int true "Workspace ID"
// @Param       id           path int true "Bill ID"
// @Success     200 {object} models.Bill "Updated bill"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /workspaces/{workspace_id}/bills/{id}/pay [post]
func (h *BillHandler) MarkBillPaid(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.MarkBillPaid(workspaceID, billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "PAY_BILL", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deleting a bill.
// @Summary     Delete bill
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int true "Workspace ID"
// @Param       id           path int true "Bill ID"
// @Success     200 {object} MessageResponse "Bill deleted"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /workspaces/{workspace_id}/bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(workspaceID, billID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "DELETE_BILL", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
