package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/google/uuid"
)

// ReapplicationReport summarizes one retroactive reapplication run.
// Remaining is non-zero only when a chunk commit failed partway through;
// earlier chunks stay applied (at-least-once, never rolled back).
type ReapplicationReport struct {
	NormalizedText string `json:"normalized_text"`
	HasWinner      bool   `json:"has_winner"`
	Affected       int    `json:"affected"`
	Updated        int    `json:"updated"`
	Remaining      int    `json:"remaining"`
}

// reapplicationService implements ReapplicationServiceInterface
type reapplicationService struct {
	transactionRepo  repositories.TransactionRepositoryInterface
	ruleRepo         repositories.MappingRuleRepositoryInterface
	categoryResolver CategoryResolverServiceInterface
	logger           CategorizationLoggerInterface
	metrics          MetricsRecorderInterface
	commitLimit      int
}

// NewReapplicationService creates a new reapplication service
func NewReapplicationService(
	transactionRepo repositories.TransactionRepositoryInterface,
	ruleRepo repositories.MappingRuleRepositoryInterface,
	categoryResolver CategoryResolverServiceInterface,
	logger CategorizationLoggerInterface,
	metrics MetricsRecorderInterface,
	commitLimit int,
) ReapplicationServiceInterface {
	return &reapplicationService{
		transactionRepo:  transactionRepo,
		ruleRepo:         ruleRepo,
		categoryResolver: categoryResolver,
		logger:           logger,
		metrics:          metrics,
		commitLimit:      commitLimit,
	}
}

// ReapplyForText recomputes the winner rule for a normalized match text
// after a rule create, edit, or delete, and rewrites the owner's affected
// history. With no surviving rule the affected transactions revert to their
// raw description and lose their category.
func (s *reapplicationService) ReapplyForText(ctx context.Context, ownerID uuid.UUID, normalizedText string) (*ReapplicationReport, error) {
	start := time.Now()
	normalizedText = models.NormalizeText(normalizedText)

	report := &ReapplicationReport{NormalizedText: normalizedText}
	if normalizedText == "" {
		return report, nil
	}

	winner, err := s.pickWinner(ownerID, normalizedText)
	if err != nil {
		return nil, err
	}
	report.HasWinner = winner != nil

	if s.logger != nil {
		s.logger.LogReapplicationStarted(ctx, ownerID, normalizedText, winner != nil)
	}

	transactions, err := s.transactionRepo.GetAllByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner transactions: %w", err)
	}

	var winnerCategoryID *uuid.UUID
	var winnerCategoryName string
	if winner != nil && winner.HasCategory() {
		category, err := s.categoryResolver.ResolveRaw(winner.CategoryRef, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve winner category: %w", err)
		}
		winnerCategoryID = &category.ID
		winnerCategoryName = category.Name
	}

	writes := make([]models.Transaction, 0)
	for i := range transactions {
		txn := &transactions[i]
		if !strings.Contains(models.NormalizeText(txn.RawDescription), normalizedText) {
			continue
		}
		report.Affected++

		if winner == nil {
			if !txn.IsCategorized() && txn.MappedDescription == txn.RawDescription {
				continue
			}
			if !txn.IsCategorized() && txn.MappedDescription == "" {
				continue
			}
			txn.ClearCategory()
			writes = append(writes, *txn)
			continue
		}

		mapped := winner.MappedDescription
		if mapped == "" {
			mapped = txn.RawDescription
		}
		if sameCategorization(txn, winnerCategoryID, winnerCategoryName, mapped) {
			continue
		}
		if winnerCategoryID != nil {
			txn.ApplyCategory(*winnerCategoryID, winnerCategoryName, mapped)
		} else {
			txn.CategoryID = nil
			txn.CategoryName = ""
			txn.MappedDescription = mapped
			txn.ClearSuggestion()
		}
		writes = append(writes, *txn)
	}

	// Chunked at-least-once writes: each chunk commits on its own, a
	// failure reports how much is left without rolling back prior chunks.
	for offset, chunkIndex := 0, 0; offset < len(writes); offset, chunkIndex = offset+s.commitLimit, chunkIndex+1 {
		end := offset + s.commitLimit
		if end > len(writes) {
			end = len(writes)
		}
		if err := s.transactionRepo.UpdateCategorizationBatch(writes[offset:end]); err != nil {
			report.Updated = offset
			report.Remaining = len(writes) - offset
			if s.logger != nil {
				s.logger.LogReapplicationChunkFailed(ctx, ownerID, chunkIndex, report.Remaining, err.Error())
			}
			if s.metrics != nil {
				s.metrics.RecordReapplication("failed", report.Updated)
			}
			return report, fmt.Errorf("reapplication chunk %d failed, %d transactions not yet updated: %w", chunkIndex, report.Remaining, err)
		}
	}
	report.Updated = len(writes)

	if s.logger != nil {
		s.logger.LogReapplicationCompleted(ctx, ownerID, report.Affected, report.Updated, time.Since(start).Milliseconds())
	}
	if s.metrics != nil {
		s.metrics.RecordReapplication("completed", report.Updated)
	}
	return report, nil
}

// pickWinner gathers every rule whose normalized match text equals the
// changed key and applies the precedence: the owner's personal rule wins,
// then a SYSTEM rule carrying a category, then a SYSTEM rule without one.
// No surviving rule means reversion.
func (s *reapplicationService) pickWinner(ownerID uuid.UUID, normalizedText string) (*models.MappingRule, error) {
	personal, err := s.ruleRepo.FindByNormalizedText(models.ScopeForOwner(ownerID), normalizedText)
	if err != nil && !errors.Is(err, repositories.ErrRuleNotFound) {
		return nil, fmt.Errorf("failed to look up personal rule: %w", err)
	}
	if personal != nil {
		return personal, nil
	}

	system, err := s.ruleRepo.FindByNormalizedText(models.ScopeSystem, normalizedText)
	if err != nil && !errors.Is(err, repositories.ErrRuleNotFound) {
		return nil, fmt.Errorf("failed to look up system rule: %w", err)
	}
	return system, nil
}
