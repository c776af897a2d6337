package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a financial transaction in a workspace. Amount is
// signed, in cents: expenses and outgoing transfers are negative, income is
// positive. Budget spend is the absolute value of non-transfer amounts.
type Transaction struct {
	Base
	WorkspaceID uint            `gorm:"not null;index" json:"workspace_id"`
	UserID      uint            `gorm:"not null" json:"user_id"`
	AccountID   uint            `gorm:"not null" json:"account_id"`
	CategoryID  *uint           `gorm:"index" json:"category_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	// For transfers
	ToAccountID *uint `json:"to_account_id,omitempty"`

	Account   Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	ToAccount *Account  `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsTransfer reports whether the transaction moves money between accounts
// rather than in or out of the workspace.
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}
