package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// CreateTransaction records an income or expense. The caller supplies a
// positive amount in cents; expenses are stored negative, income positive.
func (s *transactionService) CreateTransaction(
	workspaceID, userID, accountID uint,
	categoryID *uint,
	transactionType models.TransactionType,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if date.IsZero() {
		date = time.Now()
	}

	account, err := s.accountService.GetAccountByID(workspaceID, accountID)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND workspace_id = ?", *categoryID, workspaceID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}

	signed := amount
	if transactionType == models.TransactionTypeExpense {
		signed = -amount
	}

	transaction := &models.Transaction{
		WorkspaceID: workspaceID,
		UserID:      userID,
		AccountID:   account.ID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      signed,
		Description: description,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
		return tx.Model(account).Update("balance", gorm.Expr("balance + ?", signed)).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// CreateTransfer moves money between two accounts in the workspace.
// Transfers never count toward budget spend.
func (s *transactionService) CreateTransfer(
	workspaceID, userID, fromAccountID, toAccountID uint,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if date.IsZero() {
		date = time.Now()
	}

	fromAccount, err := s.accountService.GetAccountByID(workspaceID, fromAccountID)
	if err != nil {
		return nil, err
	}
	toAccount, err := s.accountService.GetAccountByID(workspaceID, toAccountID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		WorkspaceID: workspaceID,
		UserID:      userID,
		AccountID:   fromAccount.ID,
		ToAccountID: &toAccount.ID,
		Type:        models.TransactionTypeTransfer,
		Amount:      -amount,
		Description: description,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
		if err := tx.Model(fromAccount).Update("balance", gorm.Expr("balance - ?", amount)).Error; err != nil {
			return err
		}
		return tx.Model(toAccount).Update("balance", gorm.Expr("balance + ?", amount)).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetWorkspaceTransactions returns a paginated, filtered transaction list.
func (s *transactionService) GetWorkspaceTransactions(
	workspaceID uint,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("workspace_id = ?", workspaceID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date < ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}
	if filter.MinAmount != nil {
		base = base.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		base = base.Where("amount <= ?", *filter.MaxAmount)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").Order("date DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction by ID if it belongs to the workspace.
func (s *transactionService) GetTransactionByID(workspaceID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Preload("Category").
		Where("id = ? AND workspace_id = ?", transactionID, workspaceID).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (s *transactionService) DeleteTransaction(workspaceID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(workspaceID, transactionID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", transaction.AccountID).
			Update("balance", gorm.Expr("balance - ?", transaction.Amount)).Error; err != nil {
			return err
		}
		if transaction.IsTransfer() && transaction.ToAccountID != nil {
			// Amount is negative on the source side; the destination received -amount.
			return tx.Model(&models.Account{}).Where("id = ?", *transaction.ToAccountID).
				Update("balance", gorm.Expr("balance + ?", transaction.Amount)).Error
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
