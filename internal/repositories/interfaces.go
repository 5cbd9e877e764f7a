package repositories

import (
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines the contract for transaction
// repository operations. All reads and writes are owner-partitioned.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByOwnerID(ownerID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetAllByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error)
	GetUnmappedByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error)
	GetWithSuggestionsByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error)

	// UpdateCategorization persists the categorization columns of a single
	// transaction, including clearing them back to NULL on reversion.
	UpdateCategorization(transaction *models.Transaction) error

	// UpdateCategorizationBatch persists the categorization columns of the
	// given transactions as one atomic commit. Callers chunk to the store's
	// per-commit write limit.
	UpdateCategorizationBatch(transactions []models.Transaction) error
}

// MappingRuleRepositoryInterface is the rule store: a thin repository with
// no precedence logic. Callers merge scopes and pick winners.
type MappingRuleRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.MappingRule, error)
	ListByScope(scope string) ([]models.MappingRule, error)
	FindByNormalizedText(scope, normalizedText string) (*models.MappingRule, error)

	// Upsert creates the rule, or updates the existing rule in place when
	// one with the same scope and normalized match text already exists.
	Upsert(rule *models.MappingRule) error
	Delete(id uuid.UUID) error

	// SeedSystemRules bulk-upserts SYSTEM default rules
	SeedSystemRules(rules []models.MappingRule) error
}

// BudgetCategoryRepositoryInterface defines the contract for budget
// category repository operations
type BudgetCategoryRepositoryInterface interface {
	Create(category *models.BudgetCategory) error
	GetByID(id uuid.UUID) (*models.BudgetCategory, error)
	GetByIDForOwner(id, ownerID uuid.UUID) (*models.BudgetCategory, error)
	GetByOwnerID(ownerID uuid.UUID) ([]models.BudgetCategory, error)
	FindByName(ownerID uuid.UUID, name string) (*models.BudgetCategory, error)
	ListNames(ownerID uuid.UUID) ([]string, error)
}
