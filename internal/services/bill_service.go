package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// billService handles recurring bill logic.
type billService struct {
	db *gorm.DB
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB) BillServicer {
	return &billService{db: db}
}

// CreateBill creates a recurring bill. Amount is in cents.
func (s *billService) CreateBill(
	workspaceID uint,
	name string,
	amount int64,
	billPeriod models.BudgetPeriod,
	categoryID *uint,
	firstDueDate time.Time,
) (*models.Bill, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
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

	bill := &models.Bill{
		WorkspaceID: workspaceID,
		Name:        name,
		Amount:      amount,
		Period:      billPeriod,
		CategoryID:  categoryID,
		NextDueDate: firstDueDate,
		IsActive:    true,
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return bill, nil
}

// GetWorkspaceBills returns a paginated list of bills for the workspace.
func (s *billService) GetWorkspaceBills(workspaceID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Bill], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Bill{}).Where("workspace_id = ?", workspaceID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.Bill
	if err := base.Preload("Category").Order("next_due_date ASC").Scopes(pagination.Paginate(page)).Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetUpcomingBills returns active bills due within the given duration,
// soonest first.
func (s *billService) GetUpcomingBills(workspaceID uint, within time.Duration) ([]models.Bill, error) {
	cutoff := time.Now().Add(within)

	var bills []models.Bill
	err := s.db.Preload("Category").
		Where("workspace_id = ? AND is_active = ? AND next_due_date <= ?", workspaceID, true, cutoff).
		Order("next_due_date ASC").
		Find(&bills).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// MarkBillPaid rolls the bill's due date forward by one period.
func (s *billService) MarkBillPaid(workspaceID, billID uint) (*models.Bill, error) {
	bill, err := s.getBillByID(workspaceID, billID)
	if err != nil {
		return nil, err
	}

	bill.Roll()
	if err := s.db.Model(bill).Update("next_due_date", bill.NextDueDate).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// DeleteBill soft-deletes a bill.
func (s *billService) DeleteBill(workspaceID, billID uint) error {
	bill, err := s.getBillByID(workspaceID, billID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *billService) getBillByID(workspaceID, billID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.Where("id = ? AND workspace_id = ?", billID, workspaceID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}
