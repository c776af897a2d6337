package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
)

// Account represents a financial account in a workspace. Balance is stored
// in minor currency units (cents).
type Account struct {
	Base
	WorkspaceID uint        `gorm:"not null;index" json:"workspace_id"`
	Name        string      `gorm:"not null" json:"name"`
	Type        AccountType `gorm:"not null" json:"type"`
	Description string      `json:"description"`
	Balance     int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	Currency    string      `gorm:"not null;default:'EUR'" json:"currency"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
