package services_test

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := services.NewTransactionService(db, services.NewAccountService(db))
	user := testutil.CreateTestUser(t, db)
	workspace := testutil.CreateTestWorkspace(t, db, user.ID)

	t.Run("expense is stored negative and debits the account", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, workspace.ID, 10000)
		category := testutil.CreateTestCategory(t, db, workspace.ID, models.CategoryTypeExpense)

		tx, err := svc.CreateTransaction(workspace.ID, user.ID, account.ID, &category.ID, models.TransactionTypeExpense, 2500, "lunch", date(2024, time.March, 1))
		testutil.AssertNoError(t, err)
		if tx.Amount != -2500 {
			t.Errorf("stored amount = %d, want -2500", tx.Amount)
		}

		var reloaded models.Account
		testutil.AssertNoError(t, db.First(&reloaded, account.ID).Error)
		if reloaded.Balance != 7500 {
			t.Errorf("balance = %d, want 7500", reloaded.Balance)
		}
	})

	t.Run("income is stored positive and credits the account", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, workspace.ID, 0)

		tx, err := svc.CreateTransaction(workspace.ID, user.ID, account.ID, nil, models.TransactionTypeIncome, 100000, "salary", date(2024, time.March, 1))
		testutil.AssertNoError(t, err)
		if tx.Amount != 100000 {
			t.Errorf("stored amount = %d, want 100000", tx.Amount)
		}

		var reloaded models.Account
		testutil.AssertNoError(t, db.First(&reloaded, account.ID).Error)
		if reloaded.Balance != 100000 {
			t.Errorf("balance = %d, want 100000", reloaded.Balance)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, workspace.ID, 0)
		_, err := svc.CreateTransaction(workspace.ID, user.ID, account.ID, nil, models.TransactionTypeExpense, 0, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects transfer type", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, workspace.ID, 0)
		_, err := svc.CreateTransaction(workspace.ID, user.ID, account.ID, nil, models.TransactionTypeTransfer, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		_, err := svc.CreateTransaction(workspace.ID, user.ID, 99999, nil, models.TransactionTypeExpense, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("rejects category from another workspace", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, workspace.ID, 0)
		other := testutil.CreateTestWorkspace(t, db, user.ID)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(workspace.ID, user.ID, account.ID, &foreign.ID, models.TransactionTypeExpense, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestCreateTransfer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := services.NewTransactionService(db, services.NewAccountService(db))
	user := testutil.CreateTestUser(t, db)
	workspace := testutil.CreateTestWorkspace(t, db, user.ID)

	t.Run("moves balance between accounts", func(t *testing.T) {
		from := testutil.CreateTestAccount(t, db, workspace.ID, 10000)
		to := testutil.CreateTestAccount(t, db, workspace.ID, 0)

		tx, err := svc.CreateTransfer(workspace.ID, user.ID, from.ID, to.ID, 4000, "savings", date(2024, time.March, 1))
		testutil.AssertNoError(t, err)
		if tx.Amount != -4000 {
			t.Errorf("source-side amount = %d, want -4000", tx.Amount)
		}
		if tx.ToAccountID == nil || *tx.ToAccountID != to.ID {
			t.Error("transfer should reference the destination account")
		}

		var fromReloaded, toReloaded models.Account
		testutil.AssertNoError(t, db.First(&fromReloaded, from.ID).Error)
		testutil.AssertNoError(t, db.First(&toReloaded, to.ID).Error)
		if fromReloaded.Balance != 6000 || toReloaded.Balance != 4000 {
			t.Errorf("balances = %d/%d, want 6000/4000", fromReloaded.Balance, toReloaded.Balance)
		}
	})

	t.Run("rejects same-account transfer", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, workspace.ID, 10000)
		_, err := svc.CreateTransfer(workspace.ID, user.ID, account.ID, account.ID, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "SAME_ACCOUNT_TRANSFER")
	})
}

func TestGetWorkspaceTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := services.NewTransactionService(db, services.NewAccountService(db))
	user := testutil.CreateTestUser(t, db)
	workspace := testutil.CreateTestWorkspace(t, db, user.ID)
	account := testutil.CreateTestAccount(t, db, workspace.ID, 0)
	category := testutil.CreateTestCategory(t, db, workspace.ID, models.CategoryTypeExpense)

	testutil.CreateTestExpense(t, db, workspace.ID, user.ID, account.ID, &category.ID, 1000, date(2024, time.January, 5))
	testutil.CreateTestExpense(t, db, workspace.ID, user.ID, account.ID, &category.ID, 2000, date(2024, time.February, 5))
	testutil.CreateTestTransaction(t, db, workspace.ID, user.ID, account.ID, models.TransactionTypeIncome, 5000, date(2024, time.January, 20))

	t.Run("orders newest first", func(t *testing.T) {
		result, err := svc.GetWorkspaceTransactions(workspace.ID, defaultPage(), services.TransactionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Fatalf("total = %d, want 3", result.TotalItems)
		}
		for i := 1; i < len(result.Data); i++ {
			if result.Data[i].Date.After(result.Data[i-1].Date) {
				t.Error("transactions should be ordered date DESC")
			}
		}
	})

	t.Run("date range is half-open", func(t *testing.T) {
		from := date(2024, time.January, 1)
		to := date(2024, time.February, 5)
		result, err := svc.GetWorkspaceTransactions(workspace.ID, defaultPage(), services.TransactionFilter{FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		// The Feb 5 expense sits exactly on the exclusive upper bound.
		if result.TotalItems != 2 {
			t.Errorf("total = %d, want 2", result.TotalItems)
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		incomeType := models.TransactionTypeIncome
		result, err := svc.GetWorkspaceTransactions(workspace.ID, defaultPage(), services.TransactionFilter{Type: &incomeType})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("total = %d, want 1", result.TotalItems)
		}
	})

	t.Run("does not leak other workspaces", func(t *testing.T) {
		other := testutil.CreateTestWorkspace(t, db, user.ID)
		result, err := svc.GetWorkspaceTransactions(other.ID, defaultPage(), services.TransactionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("total = %d, want 0", result.TotalItems)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := services.NewTransactionService(db, services.NewAccountService(db))
	user := testutil.CreateTestUser(t, db)
	workspace := testutil.CreateTestWorkspace(t, db, user.ID)

	t.Run("reverses expense balance effect", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, workspace.ID, 10000)
		tx, err := svc.CreateTransaction(workspace.ID, user.ID, account.ID, nil, models.TransactionTypeExpense, 3000, "", date(2024, time.March, 1))
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransaction(workspace.ID, tx.ID))

		var reloaded models.Account
		testutil.AssertNoError(t, db.First(&reloaded, account.ID).Error)
		if reloaded.Balance != 10000 {
			t.Errorf("balance = %d, want restored 10000", reloaded.Balance)
		}

		_, err = svc.GetTransactionByID(workspace.ID, tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("reverses both sides of a transfer", func(t *testing.T) {
		from := testutil.CreateTestAccount(t, db, workspace.ID, 5000)
		to := testutil.CreateTestAccount(t, db, workspace.ID, 0)
		tx, err := svc.CreateTransfer(workspace.ID, user.ID, from.ID, to.ID, 2000, "", date(2024, time.March, 1))
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransaction(workspace.ID, tx.ID))

		var fromReloaded, toReloaded models.Account
		testutil.AssertNoError(t, db.First(&fromReloaded, from.ID).Error)
		testutil.AssertNoError(t, db.First(&toReloaded, to.ID).Error)
		if fromReloaded.Balance != 5000 || toReloaded.Balance != 0 {
			t.Errorf("balances = %d/%d, want restored 5000/0", fromReloaded.Balance, toReloaded.Balance)
		}
	})

	t.Run("not found", func(t *testing.T) {
		err := svc.DeleteTransaction(workspace.ID, 99999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
