package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateRuleRequest is the payload for creating or replacing a mapping
// rule. CategoryRef accepts a category UUID, a category name, or empty
// when the rule only renames the description.
type CreateRuleRequest struct {
	MatchText         string `json:"matchText" validate:"required,min=1,max=255"`
	MappedDescription string `json:"mappedDescription" validate:"max=255"`
	CategoryRef       string `json:"categoryRef" validate:"max=255"`
	System            bool   `json:"system"`
}

// UpdateRuleRequest is the payload for updating an existing rule
type UpdateRuleRequest struct {
	MatchText         string `json:"matchText" validate:"required,min=1,max=255"`
	MappedDescription string `json:"mappedDescription" validate:"max=255"`
	CategoryRef       string `json:"categoryRef" validate:"max=255"`
}

// RuleResponse represents a mapping rule in API responses
type RuleResponse struct {
	ID                  uuid.UUID `json:"id"`
	MatchText           string    `json:"matchText"`
	NormalizedMatchText string    `json:"normalizedMatchText"`
	MappedDescription   string    `json:"mappedDescription,omitempty"`
	CategoryRef         string    `json:"categoryRef,omitempty"`
	OwnerScope          string    `json:"ownerScope"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// RuleChangeResponse is returned from rule writes that trigger
// retroactive reapplication
type RuleChangeResponse struct {
	Rule          *RuleResponse         `json:"rule,omitempty"`
	Reapplication *ReapplicationSummary `json:"reapplication,omitempty"`
}

// ReapplicationSummary reports what a retroactive reapplication run did
type ReapplicationSummary struct {
	NormalizedText string `json:"normalizedText"`
	HasWinner      bool   `json:"hasWinner"`
	Affected       int    `json:"affected"`
	Updated        int    `json:"updated"`
	Remaining      int    `json:"remaining"`
}

// ListRulesResponse represents the response for listing rules
type ListRulesResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}
