package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/google/uuid"
)

// FallbackCategoryName is what the classifier answers when nothing in the
// owner's category list fits. Proposals carrying it (or any name outside
// the list) are dropped without a write.
const FallbackCategoryName = "Uncategorized"

var (
	ErrNoSuggestion        = errors.New("transaction has no pending suggestion")
	ErrNotTransactionOwner = errors.New("transaction does not belong to this owner")
)

// SuggestionReport summarizes one classifier run over the unmapped backlog
type SuggestionReport struct {
	Unmapped     int `json:"unmapped"`
	Chunks       int `json:"chunks"`
	FailedChunks int `json:"failed_chunks"`
	Proposed     int `json:"proposed"`
	Applied      int `json:"applied"`
	Skipped      int `json:"skipped"`
}

// BulkApproveReport summarizes one bulk approval
type BulkApproveReport struct {
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	RulesCreated int `json:"rules_created"`
}

// suggestionService implements SuggestionServiceInterface
type suggestionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.BudgetCategoryRepositoryInterface
	ruleRepo        repositories.MappingRuleRepositoryInterface
	classifier      ClassifierInterface
	logger          CategorizationLoggerInterface
	metrics         MetricsRecorderInterface
	chunkSize       int
	commitLimit     int
}

// NewSuggestionService creates a new suggestion pipeline service.
// chunkSize bounds one classifier call; commitLimit bounds one store commit.
func NewSuggestionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.BudgetCategoryRepositoryInterface,
	ruleRepo repositories.MappingRuleRepositoryInterface,
	classifier ClassifierInterface,
	logger CategorizationLoggerInterface,
	metrics MetricsRecorderInterface,
	chunkSize, commitLimit int,
) SuggestionServiceInterface {
	return &suggestionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		ruleRepo:        ruleRepo,
		classifier:      classifier,
		logger:          logger,
		metrics:         metrics,
		chunkSize:       chunkSize,
		commitLimit:     commitLimit,
	}
}

// RequestSuggestions sends the owner's unmapped transactions to the
// classifier in fixed-size chunks and stores the returned proposals on the
// suggested* fields. Authoritative category fields are never touched here.
// A chunk that fails or comes back unparsable is logged and skipped; the
// rest of the batch continues.
func (s *suggestionService) RequestSuggestions(ctx context.Context, ownerID uuid.UUID) (*SuggestionReport, error) {
	unmapped, err := s.transactionRepo.GetUnmappedByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unmapped transactions: %w", err)
	}

	report := &SuggestionReport{Unmapped: len(unmapped)}
	if len(unmapped) == 0 {
		return report, nil
	}

	categories, err := s.categoryRepo.GetByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	categoryNames := make([]string, 0, len(categories))
	byNormalizedName := make(map[string]*models.BudgetCategory, len(categories))
	for i := range categories {
		categoryNames = append(categoryNames, categories[i].Name)
		byNormalizedName[models.NormalizeText(categories[i].Name)] = &categories[i]
	}

	byID := make(map[uuid.UUID]*models.Transaction, len(unmapped))
	for i := range unmapped {
		byID[unmapped[i].ID] = &unmapped[i]
	}

	writes := make([]models.Transaction, 0, len(unmapped))
	for offset := 0; offset < len(unmapped); offset += s.chunkSize {
		end := offset + s.chunkSize
		if end > len(unmapped) {
			end = len(unmapped)
		}
		report.Chunks++

		items := make([]ClassifierItem, 0, end-offset)
		for _, txn := range unmapped[offset:end] {
			items = append(items, ClassifierItem{ID: txn.ID, Description: txn.RawDescription})
		}

		proposals, err := s.classifier.Classify(ctx, items, categoryNames)
		if err != nil {
			report.FailedChunks++
			if s.logger != nil {
				s.logger.LogClassifierChunkFailed(ctx, ownerID, report.Chunks-1, len(items), err.Error())
			}
			if s.metrics != nil {
				s.metrics.RecordClassifierCall("failed")
			}
			continue
		}
		if s.metrics != nil {
			s.metrics.RecordClassifierCall("ok")
		}

		report.Proposed += len(proposals)
		for _, proposal := range proposals {
			txn, ok := byID[proposal.ID]
			if !ok {
				report.Skipped++
				continue
			}
			category, ok := byNormalizedName[models.NormalizeText(proposal.Category)]
			if !ok {
				// Unknown or fallback category name: no write.
				report.Skipped++
				continue
			}
			txn.SetSuggestion(category.ID, category.Name, proposal.Merchant)
			writes = append(writes, *txn)
		}
	}

	if err := s.flush(writes); err != nil {
		return report, err
	}
	report.Applied = len(writes)

	if s.logger != nil {
		s.logger.LogSuggestionsApplied(ctx, ownerID, report.Proposed, report.Applied, report.Skipped)
	}
	if s.metrics != nil {
		s.metrics.RecordSuggestionOutcome("proposed", report.Applied)
	}
	return report, nil
}

// GetReviewBatch rebuilds the review view from current transaction state
func (s *suggestionService) GetReviewBatch(ownerID uuid.UUID) (models.SuggestionBatch, error) {
	transactions, err := s.transactionRepo.GetWithSuggestionsByOwnerID(ownerID)
	if err != nil {
		return models.SuggestionBatch{}, fmt.Errorf("failed to load suggestions: %w", err)
	}
	return models.BuildSuggestionBatch(transactions), nil
}

// AcceptOne promotes a transaction's pending proposal into its
// authoritative category fields
func (s *suggestionService) AcceptOne(ctx context.Context, ownerID, transactionID uuid.UUID) (*models.Transaction, error) {
	txn, err := s.ownedTransaction(ownerID, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.AcceptSuggestion() {
		return nil, ErrNoSuggestion
	}
	if err := s.transactionRepo.UpdateCategorization(txn); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSuggestionOutcome("accepted", 1)
	}
	return txn, nil
}

// RejectOne clears a transaction's pending proposal, leaving it unmapped
func (s *suggestionService) RejectOne(ctx context.Context, ownerID, transactionID uuid.UUID) (*models.Transaction, error) {
	txn, err := s.ownedTransaction(ownerID, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.HasSuggestion() {
		return nil, ErrNoSuggestion
	}
	txn.ClearSuggestion()
	if err := s.transactionRepo.UpdateCategorization(txn); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSuggestionOutcome("rejected", 1)
	}
	return txn, nil
}

// BulkApprove accepts the selected suggestions and implicitly rejects the
// rest. Transactions flagged in ruleFlagIDs additionally yield a permanent
// personal rule keyed on the suggested merchant, deduplicated within the
// batch by normalized merchant text.
func (s *suggestionService) BulkApprove(ctx context.Context, ownerID uuid.UUID, selectedIDs, ruleFlagIDs []uuid.UUID) (*BulkApproveReport, error) {
	pending, err := s.transactionRepo.GetWithSuggestionsByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load suggestions: %w", err)
	}

	selected := make(map[uuid.UUID]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}
	ruleFlagged := make(map[uuid.UUID]bool, len(ruleFlagIDs))
	for _, id := range ruleFlagIDs {
		ruleFlagged[id] = true
	}

	report := &BulkApproveReport{}
	writes := make([]models.Transaction, 0, len(pending))
	seenMerchants := make(map[string]bool)

	for i := range pending {
		txn := &pending[i]

		if !selected[txn.ID] {
			txn.ClearSuggestion()
			writes = append(writes, *txn)
			report.Rejected++
			continue
		}

		merchant := txn.SuggestedMerchant
		categoryID := txn.SuggestedCategoryID
		if !txn.AcceptSuggestion() {
			txn.ClearSuggestion()
			writes = append(writes, *txn)
			report.Rejected++
			continue
		}
		writes = append(writes, *txn)
		report.Approved++

		if !ruleFlagged[txn.ID] || merchant == "" || categoryID == nil {
			continue
		}
		normalizedMerchant := models.NormalizeText(merchant)
		if normalizedMerchant == "" || seenMerchants[normalizedMerchant] {
			continue
		}
		seenMerchants[normalizedMerchant] = true

		rule := &models.MappingRule{
			MatchText:         merchant,
			MappedDescription: merchant,
			CategoryRef:       categoryID.String(),
			OwnerScope:        models.ScopeForOwner(ownerID),
		}
		if err := s.ruleRepo.Upsert(rule); err != nil {
			return report, fmt.Errorf("failed to save rule for merchant %q: %w", merchant, err)
		}
		report.RulesCreated++
		if s.logger != nil {
			s.logger.LogRuleChanged(ctx, rule.OwnerScope, rule.ID, "created", rule.NormalizedMatchText)
		}
	}

	if err := s.flush(writes); err != nil {
		return report, err
	}
	if s.metrics != nil {
		s.metrics.RecordSuggestionOutcome("accepted", report.Approved)
		s.metrics.RecordSuggestionOutcome("rejected", report.Rejected)
	}
	return report, nil
}

func (s *suggestionService) ownedTransaction(ownerID, transactionID uuid.UUID) (*models.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if txn.OwnerID != ownerID {
		return nil, ErrNotTransactionOwner
	}
	return txn, nil
}

func (s *suggestionService) flush(writes []models.Transaction) error {
	for offset := 0; offset < len(writes); offset += s.commitLimit {
		end := offset + s.commitLimit
		if end > len(writes) {
			end = len(writes)
		}
		if err := s.transactionRepo.UpdateCategorizationBatch(writes[offset:end]); err != nil {
			return fmt.Errorf("suggestion write failed with %d transactions not yet updated: %w", len(writes)-offset, err)
		}
	}
	return nil
}
