package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWorkspace creates a workspace owned by the given user, with an
// owner membership row.
func CreateTestWorkspace(t *testing.T, db *gorm.DB, ownerID uint) *models.Workspace {
	t.Helper()

	workspace := &models.Workspace{
		Name:    fmt.Sprintf("Test Workspace %d", nextID()),
		OwnerID: ownerID,
	}
	if err := db.Create(workspace).Error; err != nil {
		t.Fatalf("failed to create test workspace: %v", err)
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      ownerID,
		Role:        models.WorkspaceRoleOwner,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test workspace owner membership: %v", err)
	}
	return workspace
}

// CreateTestAccount creates a cash account with the given balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, workspaceID uint, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		WorkspaceID: workspaceID,
		Name:        fmt.Sprintf("Test Account %d", nextID()),
		Type:        models.AccountTypeCash,
		Balance:     balance,
		Currency:    "EUR",
		IsActive:    true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a top-level category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, workspaceID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		WorkspaceID: workspaceID,
		Name:        fmt.Sprintf("Test Category %d", nextID()),
		Type:        categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestChildCategory creates an expense category nested under a parent.
func CreateTestChildCategory(t *testing.T, db *gorm.DB, workspaceID, parentID uint) *models.Category {
	t.Helper()

	category := &models.Category{
		WorkspaceID: workspaceID,
		Name:        fmt.Sprintf("Test Child Category %d", nextID()),
		Type:        models.CategoryTypeExpense,
		ParentID:    &parentID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test child category: %v", err)
	}
	return category
}

// CreateTestExpense records an expense transaction on the given date. Amount
// is in cents and positive; it is stored negated, the way the transaction
// service writes expenses.
func CreateTestExpense(t *testing.T, db *gorm.DB, workspaceID, userID, accountID uint, categoryID *uint, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		WorkspaceID: workspaceID,
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        models.TransactionTypeExpense,
		Amount:      -amount,
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return tx
}

// CreateTestTransaction creates a transaction of the given type with a raw
// signed amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, workspaceID, userID, accountID uint, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		WorkspaceID: workspaceID,
		UserID:      userID,
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBill creates an active monthly bill due on the given date.
func CreateTestBill(t *testing.T, db *gorm.DB, workspaceID uint, dueDate time.Time) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		WorkspaceID: workspaceID,
		Name:        fmt.Sprintf("Test Bill %d", nextID()),
		Amount:      5000, // 50.00
		Period:      models.BudgetPeriodMonthly,
		NextDueDate: dueDate,
		IsActive:    true,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}
