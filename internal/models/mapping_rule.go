package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeSystem marks rules that apply to every owner. Personal rules carry
// the owner's UUID as their scope and shadow system rules with the same
// normalized match text.
const ScopeSystem = "SYSTEM"

var (
	ErrMatchTextRequired = errors.New("rule match text is required")
	ErrScopeRequired     = errors.New("rule owner scope is required")
)

// MappingRule maps a fragment of bank statement text to a clean display
// description and a budget category. NormalizedMatchText is derived from
// MatchText and is the natural key within a scope; all comparisons use it,
// never the raw text.
type MappingRule struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MatchText           string    `gorm:"type:text;not null" json:"match_text"`
	NormalizedMatchText string    `gorm:"type:text;not null;index:idx_rules_scope_text,unique" json:"normalized_match_text"`
	MappedDescription   string    `gorm:"type:text" json:"mapped_description"`

	// CategoryRef holds a category ID, a bare category name, or a pending
	// default placeholder. Resolved through ParseCategoryRef only.
	CategoryRef string `gorm:"type:text" json:"category_ref,omitempty"`

	OwnerScope string    `gorm:"type:varchar(64);not null;index:idx_rules_scope_text,unique" json:"owner_scope"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// ScopeForOwner returns the scope tag for an owner's personal rules
func ScopeForOwner(ownerID uuid.UUID) string {
	return ownerID.String()
}

// BeforeCreate hook for MappingRule
func (r *MappingRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}

	r.NormalizedMatchText = NormalizeText(r.MatchText)
	return r.Validate()
}

// BeforeUpdate hook for MappingRule
func (r *MappingRule) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	r.NormalizedMatchText = NormalizeText(r.MatchText)
	return r.Validate()
}

// Validate validates the rule fields
func (r *MappingRule) Validate() error {
	if NormalizeText(r.MatchText) == "" {
		return ErrMatchTextRequired
	}
	if r.OwnerScope == "" {
		return ErrScopeRequired
	}
	return nil
}

// IsSystem returns true for rules in the SYSTEM scope
func (r *MappingRule) IsSystem() bool {
	return r.OwnerScope == ScopeSystem
}

// HasCategory returns true if the rule carries a category reference
func (r *MappingRule) HasCategory() bool {
	return r.CategoryRef != ""
}

// TableName returns the table name for MappingRule
func (r *MappingRule) TableName() string {
	return "mapping_rules"
}
