package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/google/uuid"
)

// ResolvedRuleSet is a merged, precedence-ordered view of the rules that
// apply to one owner: an exact-match index keyed by normalized match text
// plus the same rules sorted by key length descending for substring
// matching. Personal rules have already shadowed system rules with the same
// key by the time the set is built.
type ResolvedRuleSet struct {
	OwnerID uuid.UUID

	byText map[string]*models.MappingRule
	sorted []*models.MappingRule
}

// Match resolves a raw description against the rule set. The input is
// normalized, then matched in two phases: an exact key lookup first, then a
// scan of the length-sorted list for the first rule whose key is a
// substring of the input. Longer keys sort first, so "checkers hyper" beats
// "checkers" on "CHECKERS HYPER MENLYN". Returns nil when nothing matches.
func (rs *ResolvedRuleSet) Match(rawDescription string) *models.MappingRule {
	normalized := models.NormalizeText(rawDescription)
	if normalized == "" {
		return nil
	}

	if rule, ok := rs.byText[normalized]; ok {
		return rule
	}

	for _, rule := range rs.sorted {
		if strings.Contains(normalized, rule.NormalizedMatchText) {
			return rule
		}
	}
	return nil
}

// Len returns the number of rules in the set
func (rs *ResolvedRuleSet) Len() int {
	return len(rs.sorted)
}

// Rules returns the precedence-ordered rules, longest key first
func (rs *ResolvedRuleSet) Rules() []*models.MappingRule {
	return rs.sorted
}

// ruleResolverService implements RuleResolverServiceInterface
type ruleResolverService struct {
	ruleRepo repositories.MappingRuleRepositoryInterface
}

// NewRuleResolverService creates a new rule resolver
func NewRuleResolverService(ruleRepo repositories.MappingRuleRepositoryInterface) RuleResolverServiceInterface {
	return &ruleResolverService{
		ruleRepo: ruleRepo,
	}
}

// BuildIndex fetches SYSTEM rules and the owner's personal rules and merges
// them into a ResolvedRuleSet. The personal scope is merged second so it
// shadows system rules key by key.
func (s *ruleResolverService) BuildIndex(ownerID uuid.UUID) (*ResolvedRuleSet, error) {
	systemRules, err := s.ruleRepo.ListByScope(models.ScopeSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to load system rules: %w", err)
	}

	personalRules, err := s.ruleRepo.ListByScope(models.ScopeForOwner(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to load personal rules: %w", err)
	}

	return NewResolvedRuleSet(ownerID, systemRules, personalRules), nil
}

// NewResolvedRuleSet merges system and personal rules into a matchable set.
// Exposed for callers that already hold the rules in memory.
func NewResolvedRuleSet(ownerID uuid.UUID, systemRules, personalRules []models.MappingRule) *ResolvedRuleSet {
	byText := make(map[string]*models.MappingRule, len(systemRules)+len(personalRules))
	for i := range systemRules {
		rule := systemRules[i]
		byText[rule.NormalizedMatchText] = &rule
	}
	for i := range personalRules {
		rule := personalRules[i]
		byText[rule.NormalizedMatchText] = &rule
	}

	sorted := make([]*models.MappingRule, 0, len(byText))
	for _, rule := range byText {
		sorted = append(sorted, rule)
	}
	// Longest key first; ties broken by rule ID so ordering is stable
	// across rebuilds.
	sort.Slice(sorted, func(i, j int) bool {
		li, lj := len(sorted[i].NormalizedMatchText), len(sorted[j].NormalizedMatchText)
		if li != lj {
			return li > lj
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	return &ResolvedRuleSet{
		OwnerID: ownerID,
		byText:  byText,
		sorted:  sorted,
	}
}
