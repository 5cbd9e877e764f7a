package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// GetByOwnerID retrieves transactions for an owner with pagination
func (r *transactionRepository) GetByOwnerID(ownerID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	if err := r.db.Model(&models.Transaction{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if err := r.db.Where("owner_id = ?", ownerID).
		Offset(offset).Limit(limit).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// GetAllByOwnerID retrieves the owner's full transaction history, oldest
// first. Used by rule reapplication which scans every row.
func (r *transactionRepository) GetAllByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get owner transactions: %w", err)
	}
	return transactions, nil
}

// GetUnmappedByOwnerID retrieves the owner's transactions with no assigned
// category
func (r *transactionRepository) GetUnmappedByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("owner_id = ? AND category_id IS NULL", ownerID).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get unmapped transactions: %w", err)
	}
	return transactions, nil
}

// GetWithSuggestionsByOwnerID retrieves the owner's transactions carrying
// classifier proposals awaiting review
func (r *transactionRepository) GetWithSuggestionsByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("owner_id = ? AND (suggested_category_id IS NOT NULL OR suggested_category_name <> '' OR suggested_merchant <> '')", ownerID).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions with suggestions: %w", err)
	}
	return transactions, nil
}

// categorizationColumns builds the column map for a categorization write.
// A plain struct update would skip zero values, so clearing a category back
// to NULL has to go through an explicit map.
func categorizationColumns(transaction *models.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"category_id":             transaction.CategoryID,
		"category_name":           transaction.CategoryName,
		"mapped_description":      transaction.MappedDescription,
		"suggested_category_id":   transaction.SuggestedCategoryID,
		"suggested_category_name": transaction.SuggestedCategoryName,
		"suggested_merchant":      transaction.SuggestedMerchant,
		"updated_at":              time.Now(),
	}
}

// UpdateCategorization persists the categorization columns of a single
// transaction
func (r *transactionRepository) UpdateCategorization(transaction *models.Transaction) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ?", transaction.ID).
		Updates(categorizationColumns(transaction))

	if result.Error != nil {
		return fmt.Errorf("failed to update transaction categorization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// UpdateCategorizationBatch persists the categorization columns of the given
// transactions as one atomic commit
func (r *transactionRepository) UpdateCategorizationBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range transactions {
			if err := tx.Model(&models.Transaction{}).
				Where("id = ?", transactions[i].ID).
				Updates(categorizationColumns(&transactions[i])).Error; err != nil {
				return fmt.Errorf("failed to update transaction %s: %w", transactions[i].ID, err)
			}
		}
		return nil
	})
}
