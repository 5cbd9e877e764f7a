package handlers

import (
	"net/http"

	"github.com/heinrichwest/Personal-budget-sub000/internal/dto"
	"github.com/heinrichwest/Personal-budget-sub000/internal/errors"
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"
	"github.com/heinrichwest/Personal-budget-sub000/internal/services"

	"github.com/labstack/echo/v4"
)

// RuleHandler handles mapping rule HTTP requests. Every write triggers a
// retroactive reapplication run for the affected match text so historical
// transactions stay consistent with the rule set.
type RuleHandler struct {
	ruleRepo      repositories.MappingRuleRepositoryInterface
	reapplication services.ReapplicationServiceInterface
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(
	ruleRepo repositories.MappingRuleRepositoryInterface,
	reapplication services.ReapplicationServiceInterface,
) *RuleHandler {
	return &RuleHandler{
		ruleRepo:      ruleRepo,
		reapplication: reapplication,
	}
}

// ListRules returns the rules visible to an owner: SYSTEM defaults plus
// the owner's personal rules. The scope query parameter narrows the
// listing to "system" or "personal".
func (h *RuleHandler) ListRules(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	scope := c.QueryParam("scope")

	var rules []models.MappingRule
	if scope == "" || scope == "system" {
		systemRules, err := h.ruleRepo.ListByScope(models.ScopeSystem)
		if err != nil {
			return SendSystemError(c, err)
		}
		rules = append(rules, systemRules...)
	}
	if scope == "" || scope == "personal" {
		personalRules, err := h.ruleRepo.ListByScope(models.ScopeForOwner(ownerID))
		if err != nil {
			return SendSystemError(c, err)
		}
		rules = append(rules, personalRules...)
	}
	if scope != "" && scope != "system" && scope != "personal" {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("scope must be 'system' or 'personal'"))
	}

	response := dto.ListRulesResponse{
		Rules: make([]dto.RuleResponse, 0, len(rules)),
		Total: len(rules),
	}
	for i := range rules {
		response.Rules = append(response.Rules, toRuleResponse(&rules[i]))
	}

	return c.JSON(http.StatusOK, response)
}

// CreateRule creates a mapping rule and reapplies it to the owner's
// transaction history. Creating a rule whose normalized match text
// already exists in the same scope updates that rule in place.
func (h *RuleHandler) CreateRule(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	var req dto.CreateRuleRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if models.NormalizeText(req.MatchText) == "" {
		return SendError(c, errors.RuleTextRequired)
	}

	scope := models.ScopeForOwner(ownerID)
	if req.System {
		scope = models.ScopeSystem
	}

	rule := &models.MappingRule{
		MatchText:         req.MatchText,
		MappedDescription: req.MappedDescription,
		CategoryRef:       req.CategoryRef,
		OwnerScope:        scope,
	}

	if err := h.ruleRepo.Upsert(rule); err != nil {
		return SendSystemError(c, err)
	}

	report, reapplyErr := h.reapplication.ReapplyForText(c.Request().Context(), ownerID, rule.NormalizedMatchText)

	ruleResp := toRuleResponse(rule)
	response := dto.RuleChangeResponse{
		Rule:          &ruleResp,
		Reapplication: toReapplicationSummary(report),
	}

	if reapplyErr != nil {
		return SendError(c, errors.SystemPartialWrite,
			errors.WithDetails("Rule saved but reapplication did not complete; re-run categorization"))
	}

	return c.JSON(http.StatusCreated, response)
}

// UpdateRule replaces the match text, mapped description and category
// reference of an existing rule, then reapplies both the old and the new
// match text so stale matches revert and new matches take effect.
func (h *RuleHandler) UpdateRule(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	ruleID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateRuleRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if models.NormalizeText(req.MatchText) == "" {
		return SendError(c, errors.RuleTextRequired)
	}

	rule, err := h.ruleRepo.GetByID(ruleID)
	if err != nil {
		if err == repositories.ErrRuleNotFound {
			return SendError(c, errors.RuleNotFound)
		}
		return SendSystemError(c, err)
	}

	if rule.OwnerScope != models.ScopeForOwner(ownerID) {
		return SendError(c, errors.RuleInvalidScope,
			errors.WithDetails("Only personal rules can be edited"))
	}

	oldNormalized := rule.NormalizedMatchText

	rule.MatchText = req.MatchText
	rule.MappedDescription = req.MappedDescription
	rule.CategoryRef = req.CategoryRef

	if err := h.ruleRepo.Upsert(rule); err != nil {
		return SendSystemError(c, err)
	}

	ctx := c.Request().Context()

	// Transactions matched under the old text must be recomputed first,
	// otherwise a narrowed rule leaves stale categorizations behind.
	if oldNormalized != rule.NormalizedMatchText {
		if _, err := h.reapplication.ReapplyForText(ctx, ownerID, oldNormalized); err != nil {
			return SendError(c, errors.SystemPartialWrite,
				errors.WithDetails("Rule saved but reapplication did not complete; re-run categorization"))
		}
	}

	report, reapplyErr := h.reapplication.ReapplyForText(ctx, ownerID, rule.NormalizedMatchText)
	if reapplyErr != nil {
		return SendError(c, errors.SystemPartialWrite,
			errors.WithDetails("Rule saved but reapplication did not complete; re-run categorization"))
	}

	ruleResp := toRuleResponse(rule)
	return c.JSON(http.StatusOK, dto.RuleChangeResponse{
		Rule:          &ruleResp,
		Reapplication: toReapplicationSummary(report),
	})
}

// DeleteRule removes a personal rule and reapplies its match text. When a
// SYSTEM rule with the same normalized text exists it becomes the winner
// again; otherwise affected transactions revert to unmapped.
func (h *RuleHandler) DeleteRule(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	ruleID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	rule, err := h.ruleRepo.GetByID(ruleID)
	if err != nil {
		if err == repositories.ErrRuleNotFound {
			return SendError(c, errors.RuleNotFound)
		}
		return SendSystemError(c, err)
	}

	if rule.OwnerScope != models.ScopeForOwner(ownerID) {
		return SendError(c, errors.RuleInvalidScope,
			errors.WithDetails("Only personal rules can be deleted"))
	}

	normalizedText := rule.NormalizedMatchText

	if err := h.ruleRepo.Delete(ruleID); err != nil {
		if err == repositories.ErrRuleNotFound {
			return SendError(c, errors.RuleNotFound)
		}
		return SendSystemError(c, err)
	}

	report, reapplyErr := h.reapplication.ReapplyForText(c.Request().Context(), ownerID, normalizedText)
	if reapplyErr != nil {
		return SendError(c, errors.SystemPartialWrite,
			errors.WithDetails("Rule deleted but reapplication did not complete; re-run categorization"))
	}

	return c.JSON(http.StatusOK, dto.RuleChangeResponse{
		Reapplication: toReapplicationSummary(report),
	})
}

// toRuleResponse converts a rule model to its API representation
func toRuleResponse(rule *models.MappingRule) dto.RuleResponse {
	return dto.RuleResponse{
		ID:                  rule.ID,
		MatchText:           rule.MatchText,
		NormalizedMatchText: rule.NormalizedMatchText,
		MappedDescription:   rule.MappedDescription,
		CategoryRef:         rule.CategoryRef,
		OwnerScope:          rule.OwnerScope,
		CreatedAt:           rule.CreatedAt,
		UpdatedAt:           rule.UpdatedAt,
	}
}

// toReapplicationSummary converts a reapplication report to its API
// representation
func toReapplicationSummary(report *services.ReapplicationReport) *dto.ReapplicationSummary {
	if report == nil {
		return nil
	}
	return &dto.ReapplicationSummary{
		NormalizedText: report.NormalizedText,
		HasWinner:      report.HasWinner,
		Affected:       report.Affected,
		Updated:        report.Updated,
		Remaining:      report.Remaining,
	}
}
