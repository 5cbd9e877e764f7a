package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOwnerRequired          = errors.New("transaction owner ID is required")
	ErrDescriptionRequired    = errors.New("transaction raw description is required")
	ErrInconsistentCategory   = errors.New("category ID and category name must be set together")
	ErrSuggestionWithCategory = errors.New("suggestion fields must be cleared when a category is set")
)

// Transaction represents a single imported bank movement. RawDescription is
// immutable after import; the amount sign convention is fixed at import time
// (positive = credit, negative = debit).
type Transaction struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	StatementID    *uuid.UUID      `gorm:"type:uuid;index" json:"statement_id,omitempty"`
	Date           time.Time       `gorm:"not null;index" json:"date"`
	RawDescription string          `gorm:"type:text;not null" json:"raw_description"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`

	// Authoritative categorization. CategoryName is a point-in-time cache of
	// the category name at assignment, not a live join.
	CategoryID        *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CategoryName      string     `gorm:"type:varchar(255)" json:"category_name,omitempty"`
	MappedDescription string     `gorm:"type:text" json:"mapped_description,omitempty"`

	// Non-authoritative classifier proposals awaiting review.
	SuggestedCategoryID   *uuid.UUID `gorm:"type:uuid" json:"suggested_category_id,omitempty"`
	SuggestedCategoryName string     `gorm:"type:varchar(255)" json:"suggested_category_name,omitempty"`
	SuggestedMerchant     string     `gorm:"type:varchar(255)" json:"suggested_merchant,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.Date.IsZero() {
		t.Date = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate checks transaction consistency: owner and raw description are
// required, category ID/name are both absent or both present, and suggestion
// fields never coexist with an assigned category.
func (t *Transaction) Validate() error {
	if t.OwnerID == uuid.Nil {
		return ErrOwnerRequired
	}
	if t.RawDescription == "" {
		return ErrDescriptionRequired
	}
	if (t.CategoryID == nil) != (t.CategoryName == "") {
		return ErrInconsistentCategory
	}
	if t.CategoryID != nil && t.HasSuggestion() {
		return ErrSuggestionWithCategory
	}
	return nil
}

// IsCategorized returns true if an authoritative category is assigned
func (t *Transaction) IsCategorized() bool {
	return t.CategoryID != nil
}

// IsCredit returns true for money in (positive amount)
func (t *Transaction) IsCredit() bool {
	return t.Amount.GreaterThan(decimal.Zero)
}

// HasSuggestion returns true if the transaction carries a pending
// classifier proposal
func (t *Transaction) HasSuggestion() bool {
	return t.SuggestedCategoryID != nil || t.SuggestedCategoryName != "" || t.SuggestedMerchant != ""
}

// ApplyCategory assigns a category and display description. Suggestion
// fields are cleared on every path that sets a category.
func (t *Transaction) ApplyCategory(categoryID uuid.UUID, categoryName, mappedDescription string) {
	t.CategoryID = &categoryID
	t.CategoryName = categoryName
	t.MappedDescription = mappedDescription
	t.ClearSuggestion()
}

// ClearCategory reverts the transaction to its unmapped state: the display
// description falls back to the raw import text.
func (t *Transaction) ClearCategory() {
	t.CategoryID = nil
	t.CategoryName = ""
	t.MappedDescription = t.RawDescription
}

// SetSuggestion records a classifier proposal without touching the
// authoritative category fields.
func (t *Transaction) SetSuggestion(categoryID uuid.UUID, categoryName, merchant string) {
	t.SuggestedCategoryID = &categoryID
	t.SuggestedCategoryName = categoryName
	t.SuggestedMerchant = merchant
}

// ClearSuggestion drops any pending proposal
func (t *Transaction) ClearSuggestion() {
	t.SuggestedCategoryID = nil
	t.SuggestedCategoryName = ""
	t.SuggestedMerchant = ""
}

// AcceptSuggestion promotes the pending proposal into the authoritative
// category fields and clears the proposal. Returns false if there is no
// complete suggestion to accept.
func (t *Transaction) AcceptSuggestion() bool {
	if t.SuggestedCategoryID == nil || t.SuggestedCategoryName == "" {
		return false
	}
	mapped := t.SuggestedMerchant
	if mapped == "" {
		mapped = t.RawDescription
	}
	t.ApplyCategory(*t.SuggestedCategoryID, t.SuggestedCategoryName, mapped)
	return true
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
