package models

import (
	"time"

	"fintrack/internal/period"
)

// Bill is a recurring obligation (rent, subscription, utility). Amount is
// in cents. NextDueDate rolls forward by one period each time the bill is
// marked paid.
type Bill struct {
	Base
	WorkspaceID uint         `gorm:"not null;index" json:"workspace_id"`
	Name        string       `gorm:"not null" json:"name"`
	Amount      int64        `gorm:"type:bigint;not null" json:"amount"`
	Period      BudgetPeriod `gorm:"not null" json:"period"`
	CategoryID  *uint        `json:"category_id,omitempty"`
	NextDueDate time.Time    `gorm:"not null" json:"next_due_date"`
	IsActive    bool         `gorm:"default:true" json:"is_active"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Roll advances the bill's due date by one recurrence period.
func (b *Bill) Roll() {
	b.NextDueDate = period.Advance(b.NextDueDate, b.Period.Unit())
}
