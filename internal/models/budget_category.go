package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CategoryTypeIncome   = "income"
	CategoryTypeFixed    = "fixed"
	CategoryTypeVariable = "variable"
)

var (
	ErrCategoryNameRequired  = errors.New("category name is required")
	ErrCategoryOwnerRequired = errors.New("category owner ID is required")
	ErrInvalidCategoryType   = errors.New("invalid category type")
)

// BudgetCategory is an owner's named spending bucket. Names are unique per
// owner after normalization; NormalizedName is derived and enforces that.
type BudgetCategory struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_categories_owner_name,unique" json:"owner_id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	NormalizedName string          `gorm:"type:varchar(255);not null;index:idx_categories_owner_name,unique" json:"-"`
	Type           string          `gorm:"type:varchar(20);not null;default:'variable'" json:"type"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for BudgetCategory
func (c *BudgetCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	if c.Type == "" {
		c.Type = CategoryTypeVariable
	}

	c.NormalizedName = NormalizeText(c.Name)
	return c.Validate()
}

// BeforeUpdate hook for BudgetCategory
func (c *BudgetCategory) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	c.NormalizedName = NormalizeText(c.Name)
	return c.Validate()
}

// Validate validates the category fields
func (c *BudgetCategory) Validate() error {
	if c.OwnerID == uuid.Nil {
		return ErrCategoryOwnerRequired
	}
	if NormalizeText(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	if !IsValidCategoryType(c.Type) {
		return ErrInvalidCategoryType
	}
	return nil
}

// IsValidCategoryType checks if the category type is valid
func IsValidCategoryType(categoryType string) bool {
	switch categoryType {
	case CategoryTypeIncome, CategoryTypeFixed, CategoryTypeVariable:
		return true
	default:
		return false
	}
}

// TableName returns the table name for BudgetCategory
func (c *BudgetCategory) TableName() string {
	return "budget_categories"
}
