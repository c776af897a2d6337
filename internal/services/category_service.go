package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. A parent category must itself be
// top-level: nesting is capped at one level.
func (s *categoryService) CreateCategory(
	workspaceID uint,
	name string,
	categoryType models.CategoryType,
	description string,
	icon string,
	color string,
	parentID *uint,
) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	// Check if a category with the same name already exists in this workspace
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	if parentID != nil {
		if err := s.checkParent(workspaceID, *parentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		WorkspaceID: workspaceID,
		Name:        name,
		Type:        categoryType,
		Description: description,
		Icon:        icon,
		Color:       color,
		ParentID:    parentID,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetWorkspaceCategories retrieves a paginated list of categories for a workspace.
func (s *categoryService) GetWorkspaceCategories(workspaceID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Category{}).Where("workspace_id = ?", workspaceID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID within a workspace.
func (s *categoryService) GetCategoryByID(workspaceID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND workspace_id = ?", categoryID, workspaceID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category.
func (s *categoryService) UpdateCategory(
	workspaceID, categoryID uint,
	name string,
	description string,
	icon string,
	color string,
	parentID *uint,
) (*models.Category, error) {
	category, err := s.GetCategoryByID(workspaceID, categoryID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if *parentID == categoryID {
			return nil, apperrors.ErrSelfParentCategory
		}
		if err := s.checkParent(workspaceID, *parentID); err != nil {
			return nil, err
		}

		// A category that already has children cannot become a child itself.
		var childCount int64
		if err := s.db.Model(&models.Category{}).Where("parent_id = ?", categoryID).Count(&childCount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if childCount > 0 {
			return nil, apperrors.ErrCategoryTooDeep
		}
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}
	if parentID != nil {
		updates["parent_id"] = parentID
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory deletes a category
func (s *categoryService) DeleteCategory(workspaceID, categoryID uint) error {
	category, err := s.GetCategoryByID(workspaceID, categoryID)
	if err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", categoryID).Count(&childCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if childCount > 0 {
		return apperrors.ErrCategoryHasChildren
	}

	// Soft-delete the category. Existing transactions keep their category_id
	// reference to the soft-deleted category for historical records.
	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ExpandWithChildren returns the given category IDs plus the IDs of their
// direct children within the workspace, de-duplicated. Only one level is
// considered: nesting itself is capped at one level, so grandchildren
// cannot exist. An empty children result is normal.
func (s *categoryService) ExpandWithChildren(workspaceID uint, categoryIDs []uint) ([]uint, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var children []models.Category
	err := s.db.Select("id").
		Where("workspace_id = ? AND parent_id IN ?", workspaceID, categoryIDs).
		Find(&children).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seen := make(map[uint]bool, len(categoryIDs)+len(children))
	expanded := make([]uint, 0, len(categoryIDs)+len(children))
	for _, id := range categoryIDs {
		if !seen[id] {
			seen[id] = true
			expanded = append(expanded, id)
		}
	}
	for i := range children {
		if !seen[children[i].ID] {
			seen[children[i].ID] = true
			expanded = append(expanded, children[i].ID)
		}
	}
	return expanded, nil
}

// checkParent verifies the parent category exists in the workspace and is
// itself top-level.
func (s *categoryService) checkParent(workspaceID, parentID uint) error {
	var parent models.Category
	if err := s.db.Where("id = ? AND workspace_id = ?", parentID, workspaceID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if parent.ParentID != nil {
		return apperrors.ErrCategoryTooDeep
	}
	return nil
}
