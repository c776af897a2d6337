package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// WorkspaceServicer defines the contract for workspace and membership logic.
type WorkspaceServicer interface {
	CreateWorkspace(ownerID uint, name string) (*models.Workspace, error)
	GetUserWorkspaces(userID uint) ([]models.Workspace, error)
	GetMembers(workspaceID uint) ([]models.WorkspaceMember, error)
	InviteMember(workspaceID, inviterID uint, email string, role models.WorkspaceRole) (*models.WorkspaceInvitation, error)
	AcceptInvitation(userID uint, token string) (*models.WorkspaceMember, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(workspaceID uint, name, description string, accountType models.AccountType, currency string, initialBalance int64) (*models.Account, error)
	GetWorkspaceAccounts(workspaceID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(workspaceID, accountID uint) (*models.Account, error)
	UpdateAccount(workspaceID, accountID uint, name, description string) (*models.Account, error)
	DeleteAccount(workspaceID, accountID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(workspaceID uint, name string, categoryType models.CategoryType, description, icon, color string, parentID *uint) (*models.Category, error)
	GetWorkspaceCategories(workspaceID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(workspaceID, categoryID uint) (*models.Category, error)
	UpdateCategory(workspaceID, categoryID uint, name, description, icon, color string, parentID *uint) (*models.Category, error)
	DeleteCategory(workspaceID, categoryID uint) error

	// ExpandWithChildren returns the closure of the given category IDs plus
	// their direct children within the workspace, de-duplicated. Nesting is
	// capped at one level, so children of children do not exist.
	ExpandWithChildren(workspaceID uint, categoryIDs []uint) ([]uint, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *uint
	AccountID  *uint
	MinAmount  *int64
	MaxAmount  *int64
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(workspaceID, userID, accountID uint, categoryID *uint, transactionType models.TransactionType, amount int64, description string, date time.Time) (*models.Transaction, error)
	CreateTransfer(workspaceID, userID, fromAccountID, toAccountID uint, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetWorkspaceTransactions(workspaceID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(workspaceID, transactionID uint) (*models.Transaction, error)
	DeleteTransaction(workspaceID, transactionID uint) error
}

// BillServicer defines the contract for recurring bill logic.
type BillServicer interface {
	CreateBill(workspaceID uint, name string, amount int64, billPeriod models.BudgetPeriod, categoryID *uint, firstDueDate time.Time) (*models.Bill, error)
	GetWorkspaceBills(workspaceID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Bill], error)
	GetUpcomingBills(workspaceID uint, within time.Duration) ([]models.Bill, error)
	MarkBillPaid(workspaceID, billID uint) (*models.Bill, error)
	DeleteBill(workspaceID, billID uint) error
}

// BudgetProgress is one period window of a budget with its aggregated spend.
// Amounts are in cents; PercentUsed is rounded to two decimal places.
type BudgetProgress struct {
	BudgetID    uint                `json:"budget_id"`
	Name        string              `json:"name"`
	Amount      int64               `json:"amount"`
	Period      models.BudgetPeriod `json:"period"`
	PeriodStart time.Time           `json:"period_start"`
	PeriodEnd   time.Time           `json:"period_end"`
	Spent       int64               `json:"spent"`
	Remaining   int64               `json:"remaining"`
	PercentUsed float64             `json:"percent_used"`
	Categories  []uint              `json:"categories"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(workspaceID, userID uint, name string, amount int64, budgetPeriod models.BudgetPeriod, startDate time.Time, endDate *time.Time, categoryIDs []uint) (*models.Budget, error)
	GetWorkspaceBudgets(workspaceID uint, page pagination.PageRequest, budgetPeriod *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(workspaceID, budgetID uint) (*models.Budget, error)
	UpdateBudget(workspaceID, budgetID uint, name *string, amount *int64, budgetPeriod *models.BudgetPeriod, startDate, endDate *time.Time, categoryIDs []uint) (*models.Budget, error)
	DeleteBudget(workspaceID, budgetID uint) error

	// GetBudgetProgress reconstructs the budget's period windows overlapping
	// [from, to) and returns one progress record per window, chronological.
	// Nil from defaults to the budget's start date and nil to defaults to
	// now; the upper bound never exceeds the end date (or now when no end
	// date is set), so explicit future ranges emit future windows.
	GetBudgetProgress(workspaceID, budgetID uint, from, to *time.Time) ([]BudgetProgress, error)

	// GetWorkspaceProgress computes progress for every budget in the
	// workspace, keyed by budget ID.
	GetWorkspaceProgress(workspaceID uint, from, to *time.Time) (map[uint][]BudgetProgress, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(workspaceID, userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
