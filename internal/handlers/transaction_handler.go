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

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
// Amount is in cents and always positive; the type determines the sign applied.
type CreateTransactionRequest struct {
	AccountID   uint                   `json:"account_id" binding:"required"`
	CategoryID  *uint                  `json:"category_id"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      int64                  `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"max=500"`
	Date        time.Time              `json:"date" binding:"required"`
}

// CreateTransferRequest represents the request payload for a transfer between accounts.
type CreateTransferRequest struct {
	FromAccountID uint      `json:"from_account_id" binding:"required"`
	ToAccountID   uint      `json:"to_account_id" binding:"required"`
	Amount        int64     `json:"amount" binding:"required,gt=0"`
	Description   string    `json:"description" binding:"max=500"`
	Date          time.Time `json:"date" binding:"required"`
}

// CreateTransaction handles recording an income or expense transaction.
// @Summary     Record a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int                      true "Workspace ID"
// @Param       request      body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Router      /workspaces/{workspace_id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
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

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if req.Type == models.TransactionTypeTransfer {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Use the transfer endpoint for transfers"))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(workspaceID, userID, req.AccountID, req.CategoryID, req.Type, req.Amount, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateTransfer handles moving money between two accounts.
// @Summary     Record a transfer
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int                   true "Workspace ID"
// @Param       request      body CreateTransferRequest true "Transfer details"
// @Success     201 {object} models.Transaction "Transfer recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /workspaces/{workspace_id}/transactions/transfer [post]
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
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

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if req.FromAccountID == req.ToAccountID {
		respondWithError(c, apperrors.ErrSameAccountTransfer)
		return
	}

	transaction, err := h.transactionService.CreateTransfer(workspaceID, userID, req.FromAccountID, req.ToAccountID, req.Amount, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "CREATE_TRANSFER", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"from": req.FromAccountID, "to": req.ToAccountID, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles listing transactions with optional filters.
// @Summary     Get transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path  int    true  "Workspace ID"
// @Param       page         query int    false "Page number (default 1)"
// @Param       page_size    query int    false "Items per page (default 20, max 100)"
// @Param       from         query string false "Start of date range (RFC 3339, inclusive)"
// @Param       to           query string false "End of date range (RFC 3339, exclusive)"
// @Param       type         query string false "Transaction type (income, expense, transfer)"
// @Param       category_id  query int    false "Filter by category"
// @Param       account_id   query int    false "Filter by account"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /workspaces/{workspace_id}/transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
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

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetWorkspaceTransactions(workspaceID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction handles retrieving a specific transaction.
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int true "Workspace ID"
// @Param       id           path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /workspaces/{workspace_id}/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(workspaceID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction and reversing its balance effects.
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       workspace_id path int true "Workspace ID"
// @Param       id           path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /workspaces/{workspace_id}/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
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

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(workspaceID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// parseTransactionFilter builds a TransactionFilter from query parameters.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return filter, err
	}
	filter.FromDate = from

	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return filter, err
	}
	filter.ToDate = to

	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense && t != models.TransactionTypeTransfer {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid transaction type")
		}
		filter.Type = &t
	}

	categoryID, err := parseUintQuery(c, "category_id")
	if err != nil {
		return filter, err
	}
	filter.CategoryID = categoryID

	accountID, err := parseUintQuery(c, "account_id")
	if err != nil {
		return filter, err
	}
	filter.AccountID = accountID

	return filter, nil
}
