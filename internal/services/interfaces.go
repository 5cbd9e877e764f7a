package services

import (
	"context"
	"time"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/google/uuid"
)

// CategoryResolverServiceInterface resolves category references (existing
// ID, bare name, or pending-default placeholder) to a concrete owner-scoped
// budget category, creating one when needed.
type CategoryResolverServiceInterface interface {
	// Resolve resolves a tagged category reference for an owner. Creates at
	// most one category per unresolved name; calling twice with the same
	// name never creates duplicates.
	Resolve(ref models.CategoryRef, ownerID uuid.UUID) (*models.BudgetCategory, error)

	// ResolveRaw parses a stored reference string and resolves it
	ResolveRaw(raw string, ownerID uuid.UUID) (*models.BudgetCategory, error)
}

// RuleResolverServiceInterface builds merged, precedence-ordered rule views
type RuleResolverServiceInterface interface {
	// BuildIndex merges SYSTEM rules with the owner's personal rules into a
	// ResolvedRuleSet. A personal rule shadows a system rule with the same
	// normalized match text.
	BuildIndex(ownerID uuid.UUID) (*ResolvedRuleSet, error)
}

// CategorizationServiceInterface applies resolved rules to transactions
type CategorizationServiceInterface interface {
	// CategorizeUnmapped runs the rule set over the owner's uncategorized
	// transactions only
	CategorizeUnmapped(ctx context.Context, ownerID uuid.UUID) (*CategorizationReport, error)

	// RescanAll re-runs the rule set over the owner's full history. Only
	// transactions that positively match a rule are touched; manual
	// mappings without a matching rule are left alone.
	RescanAll(ctx context.Context, ownerID uuid.UUID) (*CategorizationReport, error)
}

// ReapplicationServiceInterface propagates rule changes to historical
// transactions
type ReapplicationServiceInterface interface {
	// ReapplyForText recomputes the winner rule for the given normalized
	// match text and rewrites every affected transaction of the owner.
	// Idempotent; a second run with no further edits writes nothing.
	ReapplyForText(ctx context.Context, ownerID uuid.UUID, normalizedText string) (*ReapplicationReport, error)
}

// SuggestionServiceInterface drives the classifier proposal pipeline and
// the review/approval workflow
type SuggestionServiceInterface interface {
	RequestSuggestions(ctx context.Context, ownerID uuid.UUID) (*SuggestionReport, error)
	GetReviewBatch(ownerID uuid.UUID) (models.SuggestionBatch, error)
	AcceptOne(ctx context.Context, ownerID, transactionID uuid.UUID) (*models.Transaction, error)
	RejectOne(ctx context.Context, ownerID, transactionID uuid.UUID) (*models.Transaction, error)
	BulkApprove(ctx context.Context, ownerID uuid.UUID, selectedIDs, ruleFlagIDs []uuid.UUID) (*BulkApproveReport, error)
}

// ClassifierItem is one description sent to the external classifier
type ClassifierItem struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
}

// ClassifierProposal is one classification returned by the external
// classifier
type ClassifierProposal struct {
	ID       uuid.UUID `json:"id"`
	Merchant string    `json:"merchant"`
	Category string    `json:"category"`
}

// ClassifierInterface is the external text-classification service. The
// caller chunks requests; one call carries one chunk.
type ClassifierInterface interface {
	Classify(ctx context.Context, items []ClassifierItem, categoryNames []string) ([]ClassifierProposal, error)
}

// CategorizationLoggerInterface provides structured logging for the
// categorization engine and its batch jobs
type CategorizationLoggerInterface interface {
	LogCategorizationCompleted(ctx context.Context, ownerID uuid.UUID, mode string, matched, unmapped int, durationMs int64)
	LogResolutionFailed(ctx context.Context, ownerID, transactionID uuid.UUID, categoryRef string, errorMsg string)
	LogReapplicationStarted(ctx context.Context, ownerID uuid.UUID, normalizedText string, hasWinner bool)
	LogReapplicationCompleted(ctx context.Context, ownerID uuid.UUID, affected, updated int, durationMs int64)
	LogReapplicationChunkFailed(ctx context.Context, ownerID uuid.UUID, chunkIndex, remaining int, errorMsg string)
	LogClassifierChunkFailed(ctx context.Context, ownerID uuid.UUID, chunkIndex, chunkSize int, errorMsg string)
	LogSuggestionsApplied(ctx context.Context, ownerID uuid.UUID, proposed, applied, skipped int)
	LogRuleChanged(ctx context.Context, scope string, ruleID uuid.UUID, action string, normalizedText string)
}

// MetricsRecorderInterface records operational metrics
type MetricsRecorderInterface interface {
	RecordCategorization(mode string, matched, unmapped int)
	RecordCategorizationDuration(duration time.Duration)
	RecordReapplication(status string, written int)
	RecordClassifierCall(status string)
	RecordSuggestionOutcome(outcome string, count int)
}
