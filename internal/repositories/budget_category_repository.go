package repositories

import (
	"errors"
	"fmt"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("budget category not found")
)

// budgetCategoryRepository implements BudgetCategoryRepositoryInterface
type budgetCategoryRepository struct {
	db *gorm.DB
}

// NewBudgetCategoryRepository creates a new budget category repository
func NewBudgetCategoryRepository(db *gorm.DB) BudgetCategoryRepositoryInterface {
	return &budgetCategoryRepository{
		db: db,
	}
}

// Create creates a new budget category
func (r *budgetCategoryRepository) Create(category *models.BudgetCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create budget category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *budgetCategoryRepository) GetByID(id uuid.UUID) (*models.BudgetCategory, error) {
	category := &models.BudgetCategory{ID: id}
	if err := r.db.First(category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get budget category: %w", err)
	}
	return category, nil
}

// GetByIDForOwner retrieves a category by ID scoped to an owner
func (r *budgetCategoryRepository) GetByIDForOwner(id, ownerID uuid.UUID) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get budget category for owner: %w", err)
	}
	return &category, nil
}

// GetByOwnerID retrieves all categories for an owner
func (r *budgetCategoryRepository) GetByOwnerID(ownerID uuid.UUID) ([]models.BudgetCategory, error) {
	var categories []models.BudgetCategory
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get budget categories: %w", err)
	}
	return categories, nil
}

// FindByName retrieves an owner's category by name, compared on the
// normalized form
func (r *budgetCategoryRepository) FindByName(ownerID uuid.UUID, name string) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := r.db.Where("owner_id = ? AND normalized_name = ?", ownerID, models.NormalizeText(name)).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find budget category by name: %w", err)
	}
	return &category, nil
}

// ListNames returns the owner's category names, sorted
func (r *budgetCategoryRepository) ListNames(ownerID uuid.UUID) ([]string, error) {
	var names []string
	if err := r.db.Model(&models.BudgetCategory{}).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list budget category names: %w", err)
	}
	return names, nil
}
