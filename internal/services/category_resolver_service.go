package services

import (
	"errors"
	"fmt"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryRefUnresolvable = errors.New("category reference cannot be resolved")
)

// categoryResolverService implements CategoryResolverServiceInterface
type categoryResolverService struct {
	categoryRepo repositories.BudgetCategoryRepositoryInterface
}

// NewCategoryResolverService creates a new category resolver
func NewCategoryResolverService(categoryRepo repositories.BudgetCategoryRepositoryInterface) CategoryResolverServiceInterface {
	return &categoryResolverService{
		categoryRepo: categoryRepo,
	}
}

// Resolve resolves a category reference for an owner. Resolution order: an
// existing ID wins; otherwise an existing category with the same normalized
// name; otherwise a new category is created with zero budget and variable
// type. The name lookup is re-checked before creating so that a second call
// with the same name returns the category created by the first.
func (s *categoryResolverService) Resolve(ref models.CategoryRef, ownerID uuid.UUID) (*models.BudgetCategory, error) {
	name := ref.Name

	if ref.Kind == models.CategoryRefExisting {
		category, err := s.categoryRepo.GetByIDForOwner(ref.ID, ownerID)
		if err == nil {
			return category, nil
		}
		if !errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to resolve category by ID: %w", err)
		}
		// The ID may belong to another owner's category (a shared system
		// rule carrying a foreign ID). Fall back to the name, if we have
		// one, or fail resolution.
		if name == "" {
			return nil, ErrCategoryRefUnresolvable
		}
	}

	if models.NormalizeText(name) == "" {
		return nil, ErrCategoryRefUnresolvable
	}

	category, err := s.categoryRepo.FindByName(ownerID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, repositories.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to resolve category by name: %w", err)
	}

	created := &models.BudgetCategory{
		OwnerID: ownerID,
		Name:    name,
		Type:    models.CategoryTypeVariable,
	}
	if err := s.categoryRepo.Create(created); err != nil {
		// A concurrent create for the same name loses the unique-index
		// race; re-check the name before giving up.
		if existing, findErr := s.categoryRepo.FindByName(ownerID, name); findErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return created, nil
}

// ResolveRaw parses a stored reference string and resolves it
func (s *categoryResolverService) ResolveRaw(raw string, ownerID uuid.UUID) (*models.BudgetCategory, error) {
	ref, err := models.ParseCategoryRef(raw)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ref, ownerID)
}
