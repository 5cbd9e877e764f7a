package services

import (
	"context"
	"fmt"
	"time"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/google/uuid"
)

const (
	// CategorizeModeUnmapped touches uncategorized transactions only
	CategorizeModeUnmapped = "unmapped"
	// CategorizeModeRescan re-evaluates the full history after bulk rule
	// changes
	CategorizeModeRescan = "rescan"
)

// CategorizationReport summarizes one categorization run
type CategorizationReport struct {
	Mode       string `json:"mode"`
	Scanned    int    `json:"scanned"`
	Matched    int    `json:"matched"`
	Updated    int    `json:"updated"`
	Unmapped   int    `json:"unmapped"`
	Unresolved int    `json:"unresolved"`
}

// categorizationService implements CategorizationServiceInterface
type categorizationService struct {
	transactionRepo  repositories.TransactionRepositoryInterface
	ruleResolver     RuleResolverServiceInterface
	categoryResolver CategoryResolverServiceInterface
	logger           CategorizationLoggerInterface
	metrics          MetricsRecorderInterface
	commitLimit      int
}

// NewCategorizationService creates a new categorization service.
// commitLimit is the store's per-commit write ceiling; writes are chunked
// to it.
func NewCategorizationService(
	transactionRepo repositories.TransactionRepositoryInterface,
	ruleResolver RuleResolverServiceInterface,
	categoryResolver CategoryResolverServiceInterface,
	logger CategorizationLoggerInterface,
	metrics MetricsRecorderInterface,
	commitLimit int,
) CategorizationServiceInterface {
	return &categorizationService{
		transactionRepo:  transactionRepo,
		ruleResolver:     ruleResolver,
		categoryResolver: categoryResolver,
		logger:           logger,
		metrics:          metrics,
		commitLimit:      commitLimit,
	}
}

// CategorizeUnmapped runs the merged rule set over the owner's
// uncategorized transactions
func (s *categorizationService) CategorizeUnmapped(ctx context.Context, ownerID uuid.UUID) (*CategorizationReport, error) {
	transactions, err := s.transactionRepo.GetUnmappedByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unmapped transactions: %w", err)
	}
	return s.run(ctx, ownerID, CategorizeModeUnmapped, transactions)
}

// RescanAll re-runs the merged rule set over the owner's full history.
// Transactions that match no rule keep whatever categorization they have;
// manual mappings are never cleared here.
func (s *categorizationService) RescanAll(ctx context.Context, ownerID uuid.UUID) (*CategorizationReport, error) {
	transactions, err := s.transactionRepo.GetAllByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return s.run(ctx, ownerID, CategorizeModeRescan, transactions)
}

func (s *categorizationService) run(ctx context.Context, ownerID uuid.UUID, mode string, transactions []models.Transaction) (*CategorizationReport, error) {
	start := time.Now()

	ruleSet, err := s.ruleResolver.BuildIndex(ownerID)
	if err != nil {
		return nil, err
	}

	report := &CategorizationReport{Mode: mode, Scanned: len(transactions)}
	writes := make([]models.Transaction, 0, len(transactions))

	for i := range transactions {
		txn := &transactions[i]

		rule := ruleSet.Match(txn.RawDescription)
		if rule == nil {
			if !txn.IsCategorized() {
				report.Unmapped++
			}
			continue
		}
		report.Matched++

		categoryID, categoryName, err := s.resolveRuleCategory(ctx, rule, txn, ownerID)
		if err != nil {
			// Resolution failures leave the transaction unmapped rather
			// than miscategorized.
			report.Unresolved++
			continue
		}

		mapped := rule.MappedDescription
		if mapped == "" {
			mapped = txn.RawDescription
		}

		if sameCategorization(txn, categoryID, categoryName, mapped) {
			continue
		}

		if categoryID != nil {
			txn.ApplyCategory(*categoryID, categoryName, mapped)
		} else {
			txn.MappedDescription = mapped
			txn.ClearSuggestion()
		}
		writes = append(writes, *txn)
	}

	if err := s.flush(writes); err != nil {
		return report, err
	}
	report.Updated = len(writes)

	if s.logger != nil {
		s.logger.LogCategorizationCompleted(ctx, ownerID, mode, report.Matched, report.Unmapped, time.Since(start).Milliseconds())
	}
	if s.metrics != nil {
		s.metrics.RecordCategorization(mode, report.Matched, report.Unmapped)
		s.metrics.RecordCategorizationDuration(time.Since(start))
	}
	return report, nil
}

// resolveRuleCategory materializes the rule's category reference for the
// owner. Rules without a category only rewrite the display description.
func (s *categorizationService) resolveRuleCategory(ctx context.Context, rule *models.MappingRule, txn *models.Transaction, ownerID uuid.UUID) (*uuid.UUID, string, error) {
	if !rule.HasCategory() {
		return nil, "", nil
	}

	category, err := s.categoryResolver.ResolveRaw(rule.CategoryRef, ownerID)
	if err != nil {
		if s.logger != nil {
			s.logger.LogResolutionFailed(ctx, ownerID, txn.ID, rule.CategoryRef, err.Error())
		}
		return nil, "", err
	}
	return &category.ID, category.Name, nil
}

// sameCategorization reports whether the write would be a no-op, keeping
// repeated runs free of redundant writes.
func sameCategorization(txn *models.Transaction, categoryID *uuid.UUID, categoryName, mapped string) bool {
	if txn.MappedDescription != mapped {
		return false
	}
	if txn.CategoryName != categoryName {
		return false
	}
	if (txn.CategoryID == nil) != (categoryID == nil) {
		return false
	}
	if txn.CategoryID != nil && *txn.CategoryID != *categoryID {
		return false
	}
	return true
}

func (s *categorizationService) flush(writes []models.Transaction) error {
	for start := 0; start < len(writes); start += s.commitLimit {
		end := start + s.commitLimit
		if end > len(writes) {
			end = len(writes)
		}
		if err := s.transactionRepo.UpdateCategorizationBatch(writes[start:end]); err != nil {
			return fmt.Errorf("categorization write failed with %d transactions not yet updated: %w", len(writes)-start, err)
		}
	}
	return nil
}
