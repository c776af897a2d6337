package services

import (
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, categoryService CategoryServicer) BudgetServicer {
	return &budgetService{db: db, categoryService: categoryService}
}

// CreateBudget creates a new budget over a set of categories. The budget's
// expanded category set must not overlap any other budget with the same
// period in the workspace; the claim rows written alongside the budget make
// that check atomic via their unique index.
func (s *budgetService) CreateBudget(
	workspaceID, userID uint,
	name string,
	amount int64,
	budgetPeriod models.BudgetPeriod,
	startDate time.Time,
	endDate *time.Time,
	categoryIDs []uint,
) (*models.Budget, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if len(categoryIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one category is required")
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}

	categories, err := s.resolveCategories(workspaceID, categoryIDs)
	if err != nil {
		return nil, err
	}

	expanded, err := s.categoryService.ExpandWithChildren(workspaceID, categoryIDs)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Name:        name,
		Amount:      amount,
		Period:      budgetPeriod,
		StartDate:   startDate,
		EndDate:     endDate,
		Categories:  categories,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := assertNoCategoryConflict(tx, workspaceID, budgetPeriod, expanded, 0); err != nil {
			return err
		}
		if err := tx.Create(budget).Error; err != nil {
			return err
		}
		return writeClaims(tx, budget, expanded)
	})
	if err != nil {
		return nil, translateBudgetWriteError(err)
	}

	return budget, nil
}

// GetWorkspaceBudgets returns a paginated list of budgets for the workspace
// with an optional period filter.
func (s *budgetService) GetWorkspaceBudgets(
	workspaceID uint,
	page pagination.PageRequest,
	budgetPeriod *models.BudgetPeriod,
) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("workspace_id = ?", workspaceID)
	if budgetPeriod != nil {
		base = base.Where("period = ?", *budgetPeriod)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Categories").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the workspace.
func (s *budgetService) GetBudgetByID(workspaceID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Categories").Where("id = ? AND workspace_id = ?", budgetID, workspaceID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies a partial update. Changing the start date moves the
// window anchor, so subsequent progress queries realign to it. When the
// period or the tracked categories change, the category-uniqueness check is
// re-run against the merged field values and the claim rows are rewritten
// in the same transaction as the update.
func (s *budgetService) UpdateBudget(
	workspaceID, budgetID uint,
	name *string,
	amount *int64,
	budgetPeriod *models.BudgetPeriod,
	startDate, endDate *time.Time,
	categoryIDs []uint,
) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(workspaceID, budgetID)
	if err != nil {
		return nil, err
	}

	if amount != nil && *amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	// Dates are validated against the merged record: a new start date must
	// stay compatible with the stored end date and vice versa.
	effectiveStart := budget.StartDate
	if startDate != nil {
		effectiveStart = *startDate
	}
	effectiveEnd := budget.EndDate
	if endDate != nil {
		effectiveEnd = endDate
	}
	if effectiveEnd != nil && effectiveEnd.Before(effectiveStart) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if startDate != nil {
		updates["start_date"] = *startDate
	}
	if endDate != nil {
		updates["end_date"] = endDate
	}

	// Merged values: supplied fields win, the stored record fills the rest.
	effectivePeriod := budget.Period
	if budgetPeriod != nil {
		effectivePeriod = *budgetPeriod
		updates["period"] = *budgetPeriod
	}
	effectiveCategories := budget.CategoryIDs()
	var newCategories []models.Category
	if categoryIDs != nil {
		if len(categoryIDs) == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one category is required")
		}
		newCategories, err = s.resolveCategories(workspaceID, categoryIDs)
		if err != nil {
			return nil, err
		}
		effectiveCategories = categoryIDs
	}

	claimsStale := budgetPeriod != nil || categoryIDs != nil

	var expanded []uint
	if claimsStale {
		expanded, err = s.categoryService.ExpandWithChildren(workspaceID, effectiveCategories)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if claimsStale {
			if err := assertNoCategoryConflict(tx, workspaceID, effectivePeriod, expanded, budget.ID); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(budget).Updates(updates).Error; err != nil {
				return err
			}
		}
		if categoryIDs != nil {
			if err := tx.Model(budget).Association("Categories").Replace(newCategories); err != nil {
				return err
			}
		}
		if claimsStale {
			if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.BudgetCategoryClaim{}).Error; err != nil {
				return err
			}
			budget.Period = effectivePeriod
			return writeClaims(tx, budget, expanded)
		}
		return nil
	})
	if err != nil {
		return nil, translateBudgetWriteError(err)
	}

	return s.GetBudgetByID(workspaceID, budgetID)
}

// DeleteBudget soft-deletes a budget and releases its category claims.
// Transactions and categories are untouched.
func (s *budgetService) DeleteBudget(workspaceID, budgetID uint) error {
	budget, err := s.GetBudgetByID(workspaceID, budgetID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.BudgetCategoryClaim{}).Error; err != nil {
			return err
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetProgress reconstructs the budget's period windows over the
// queried range and aggregates spend per window.
func (s *budgetService) GetBudgetProgress(workspaceID, budgetID uint, from, to *time.Time) ([]BudgetProgress, error) {
	budget, err := s.GetBudgetByID(workspaceID, budgetID)
	if err != nil {
		return nil, err
	}
	return s.computeProgress(budget, from, to)
}

// GetWorkspaceProgress computes progress for every budget in the workspace.
// Budgets are independent, so they are computed concurrently.
func (s *budgetService) GetWorkspaceProgress(workspaceID uint, from, to *time.Time) (map[uint][]BudgetProgress, error) {
	var budgets []models.Budget
	if err := s.db.Preload("Categories").Where("workspace_id = ?", workspaceID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make(map[uint][]BudgetProgress, len(budgets))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(8)

	for i := range budgets {
		budget := &budgets[i]
		g.Go(func() error {
			progress, err := s.computeProgress(budget, from, to)
			if err != nil {
				return err
			}
			mu.Lock()
			result[budget.ID] = progress
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// computeProgress is the sequential progress pipeline for one budget:
// clamp range, expand categories, generate windows, aggregate spend,
// assemble records.
func (s *budgetService) computeProgress(budget *models.Budget, from, to *time.Time) ([]BudgetProgress, error) {
	now := time.Now()

	// Clamp the queried range to the budget's lifetime. The upper bound is
	// min(to, end date), with now standing in for either bound when absent,
	// so an explicit future range yields future windows with zero spend.
	rangeStart := budget.StartDate
	if from != nil && from.After(rangeStart) {
		rangeStart = *from
	}
	rangeEnd := now
	if to != nil {
		rangeEnd = *to
	}
	lifetimeEnd := now
	if budget.EndDate != nil {
		lifetimeEnd = *budget.EndDate
	}
	if lifetimeEnd.Before(rangeEnd) {
		rangeEnd = lifetimeEnd
	}

	expanded, err := s.categoryService.ExpandWithChildren(budget.WorkspaceID, budget.CategoryIDs())
	if err != nil {
		return nil, err
	}

	windows := period.Windows(budget.StartDate, budget.Period.Unit(), rangeStart, rangeEnd)
	if len(windows) == 0 {
		return []BudgetProgress{}, nil
	}

	spent, err := s.aggregateSpend(budget.WorkspaceID, expanded, windows)
	if err != nil {
		return nil, err
	}

	return assembleProgress(budget, windows, spent), nil
}

// aggregateSpend buckets matching transaction amounts into per-window
// totals. A single range query spans all windows; each transaction is then
// assigned to the first window containing its date. Windows never overlap,
// so at most one window matches.
func (s *budgetService) aggregateSpend(workspaceID uint, categoryIDs []uint, windows []period.Window) (map[int]int64, error) {
	globalStart := windows[0].Start
	globalEnd := windows[len(windows)-1].End

	var transactions []models.Transaction
	err := s.db.
		Where("workspace_id = ? AND category_id IN ? AND type <> ? AND date >= ? AND date < ?",
			workspaceID, categoryIDs, models.TransactionTypeTransfer, globalStart, globalEnd).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent := make(map[int]int64)
	for i := range transactions {
		amount := transactions[i].Amount
		if amount < 0 {
			amount = -amount
		}
		for w := range windows {
			if windows[w].Contains(transactions[i].Date) {
				spent[w] += amount
				break
			}
		}
	}
	return spent, nil
}

// assembleProgress combines window boundaries, aggregated spend, and budget
// metadata into per-window progress records, preserving window order.
func assembleProgress(budget *models.Budget, windows []period.Window, spentByWindow map[int]int64) []BudgetProgress {
	categories := budget.CategoryIDs()
	progress := make([]BudgetProgress, 0, len(windows))
	for i, w := range windows {
		spent := spentByWindow[i]
		var percentUsed float64
		if budget.Amount > 0 {
			percentUsed = round2(float64(spent) / float64(budget.Amount) * 100)
		}
		progress = append(progress, BudgetProgress{
			BudgetID:    budget.ID,
			Name:        budget.Name,
			Amount:      budget.Amount,
			Period:      budget.Period,
			PeriodStart: w.Start,
			PeriodEnd:   w.End,
			Spent:       spent,
			Remaining:   budget.Amount - spent,
			PercentUsed: percentUsed,
			Categories:  categories,
		})
	}
	return progress
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// resolveCategories loads the given categories and verifies they all exist
// within the workspace.
func (s *budgetService) resolveCategories(workspaceID uint, categoryIDs []uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("workspace_id = ? AND id IN ?", workspaceID, categoryIDs).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	found := make(map[uint]bool, len(categories))
	for i := range categories {
		found[categories[i].ID] = true
	}
	for _, id := range categoryIDs {
		if !found[id] {
			return nil, apperrors.ErrCategoryNotFound
		}
	}
	return categories, nil
}

// assertNoCategoryConflict checks the candidate expanded category set
// against the claims of other budgets sharing the same period in the
// workspace. Claims are stored pre-expanded, so both sides of the
// comparison are expanded sets. excludeBudgetID skips the budget's own
// claims on update; zero excludes nothing.
func assertNoCategoryConflict(tx *gorm.DB, workspaceID uint, budgetPeriod models.BudgetPeriod, expanded []uint, excludeBudgetID uint) error {
	var count int64
	q := tx.Model(&models.BudgetCategoryClaim{}).
		Where("workspace_id = ? AND period = ? AND category_id IN ?", workspaceID, budgetPeriod, expanded)
	if excludeBudgetID != 0 {
		q = q.Where("budget_id <> ?", excludeBudgetID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrCategoryConflict
	}
	return nil
}

// writeClaims inserts one claim row per category in the budget's expanded
// set. The unique index over (workspace_id, period, category_id) rejects
// concurrent writers that slipped past assertNoCategoryConflict.
func writeClaims(tx *gorm.DB, budget *models.Budget, expanded []uint) error {
	claims := make([]models.BudgetCategoryClaim, 0, len(expanded))
	for _, categoryID := range expanded {
		claims = append(claims, models.BudgetCategoryClaim{
			BudgetID:    budget.ID,
			WorkspaceID: budget.WorkspaceID,
			Period:      budget.Period,
			CategoryID:  categoryID,
		})
	}
	return tx.Create(&claims).Error
}

// translateBudgetWriteError maps transaction errors from budget writes to
// AppErrors. Duplicate-key failures on the claims table are conflict
// violations, not server faults.
func translateBudgetWriteError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrCategoryConflict
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
