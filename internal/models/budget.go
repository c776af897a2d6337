package models

import (
	"time"

	"fintrack/internal/period"
)

// BudgetPeriod represents the recurrence period of a budget
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Unit converts the period to its calendar arithmetic unit.
func (p BudgetPeriod) Unit() period.Unit {
	return period.Unit(p)
}

// Budget is a per-period spending ceiling over a set of categories. The
// start date anchors period window alignment; a nil end date means
// open-ended. Amount is in cents.
type Budget struct {
	Base
	WorkspaceID uint         `gorm:"not null;index" json:"workspace_id"`
	UserID      uint         `gorm:"not null" json:"user_id"`
	Name        string       `json:"name"`
	Amount      int64        `gorm:"type:bigint;not null" json:"amount"`
	Period      BudgetPeriod `gorm:"not null" json:"period"`
	StartDate   time.Time    `gorm:"not null" json:"start_date"`
	EndDate     *time.Time   `json:"end_date,omitempty"`

	Categories []Category `gorm:"many2many:budget_categories" json:"categories,omitempty"`
}

// CategoryIDs returns the stored (unexpanded) tracked category IDs.
func (b *Budget) CategoryIDs() []uint {
	ids := make([]uint, 0, len(b.Categories))
	for i := range b.Categories {
		ids = append(ids, b.Categories[i].ID)
	}
	return ids
}

// BudgetCategoryClaim is a denormalized row per category in a budget's
// expanded tracked set. The unique index over (workspace_id, period,
// category_id) makes the cross-budget category-uniqueness invariant atomic:
// two budgets of the same period in one workspace can never both commit a
// claim on the same category.
type BudgetCategoryClaim struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	BudgetID    uint         `gorm:"not null;index" json:"budget_id"`
	WorkspaceID uint         `gorm:"not null;uniqueIndex:idx_claim_workspace_period_category" json:"workspace_id"`
	Period      BudgetPeriod `gorm:"not null;uniqueIndex:idx_claim_workspace_period_category" json:"period"`
	CategoryID  uint         `gorm:"not null;uniqueIndex:idx_claim_workspace_period_category" json:"category_id"`
}
