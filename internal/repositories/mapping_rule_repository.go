package repositories

import (
	"errors"
	"fmt"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRuleNotFound = errors.New("mapping rule not found")
)

// mappingRuleRepository implements MappingRuleRepositoryInterface
type mappingRuleRepository struct {
	db *gorm.DB
}

// NewMappingRuleRepository creates a new mapping rule repository
func NewMappingRuleRepository(db *gorm.DB) MappingRuleRepositoryInterface {
	return &mappingRuleRepository{
		db: db,
	}
}

// GetByID retrieves a rule by ID
func (r *mappingRuleRepository) GetByID(id uuid.UUID) (*models.MappingRule, error) {
	rule := &models.MappingRule{ID: id}
	if err := r.db.First(rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return rule, nil
}

// ListByScope retrieves all rules in a scope (SYSTEM or an owner ID)
func (r *mappingRuleRepository) ListByScope(scope string) ([]models.MappingRule, error) {
	var rules []models.MappingRule
	if err := r.db.Where("owner_scope = ?", scope).
		Order("normalized_match_text ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list rules for scope %s: %w", scope, err)
	}
	return rules, nil
}

// FindByNormalizedText retrieves the rule with the given normalized match
// text in a scope. Normalized match text is the natural key within a scope.
func (r *mappingRuleRepository) FindByNormalizedText(scope, normalizedText string) (*models.MappingRule, error) {
	var rule models.MappingRule
	if err := r.db.Where("owner_scope = ? AND normalized_match_text = ?", scope, normalizedText).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to find rule by normalized text: %w", err)
	}
	return &rule, nil
}

// Upsert creates the rule, or updates the existing rule in place when one
// with the same scope and normalized match text already exists. Two rules
// with the same normalized key must never coexist in a scope.
func (r *mappingRuleRepository) Upsert(rule *models.MappingRule) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return upsertRule(tx, rule)
	})
}

func upsertRule(tx *gorm.DB, rule *models.MappingRule) error {
	normalized := models.NormalizeText(rule.MatchText)

	var existing models.MappingRule
	err := tx.Where("owner_scope = ? AND normalized_match_text = ?", rule.OwnerScope, normalized).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for duplicate rule: %w", err)
	}

	if err == nil {
		// The key is already held. When an edit moved a different rule
		// onto it, the edited row is removed so the scope keeps exactly
		// one rule per normalized key.
		if rule.ID != uuid.Nil && rule.ID != existing.ID {
			if err := tx.Delete(&models.MappingRule{}, "id = ?", rule.ID).Error; err != nil {
				return fmt.Errorf("failed to remove superseded rule: %w", err)
			}
		}
		existing.MatchText = rule.MatchText
		existing.MappedDescription = rule.MappedDescription
		existing.CategoryRef = rule.CategoryRef
		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update existing rule: %w", err)
		}
		*rule = existing
		return nil
	}

	// No rule holds the key. An edited rule keeps its ID and moves to the
	// new key; otherwise a new rule is created.
	if rule.ID != uuid.Nil {
		if err := tx.Save(rule).Error; err != nil {
			return fmt.Errorf("failed to update rule: %w", err)
		}
		return nil
	}

	if err := tx.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	return nil
}

// Delete removes a rule. Deleting a personal rule exposes the SYSTEM rule
// with the same normalized key again.
func (r *mappingRuleRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.MappingRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// SeedSystemRules bulk-upserts SYSTEM default rules in one transaction
func (r *mappingRuleRepository) SeedSystemRules(rules []models.MappingRule) error {
	if len(rules) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range rules {
			rules[i].OwnerScope = models.ScopeSystem
			if err := upsertRule(tx, &rules[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
