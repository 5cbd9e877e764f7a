package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// CategorizationLogger provides structured logging for the categorization
// engine, the reapplication job, and the suggestion pipeline
type CategorizationLogger struct {
	logger *slog.Logger
}

// NewCategorizationLogger creates a new categorization logger
func NewCategorizationLogger(logger *slog.Logger) CategorizationLoggerInterface {
	return &CategorizationLogger{
		logger: logger,
	}
}

// LogCategorizationCompleted logs the outcome of one categorization run
func (cl *CategorizationLogger) LogCategorizationCompleted(ctx context.Context, ownerID uuid.UUID, mode string, matched, unmapped int, durationMs int64) {
	cl.logger.InfoContext(ctx, "categorization completed",
		slog.String("event_type", "categorization_completed"),
		slog.String("owner_id", ownerID.String()),
		slog.String("mode", mode),
		slog.Int("matched", matched),
		slog.Int("unmapped", unmapped),
		slog.Int64("duration_ms", durationMs),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

// LogResolutionFailed logs a category reference that could not be resolved;
// the transaction stays unmapped
func (cl *CategorizationLogger) LogResolutionFailed(ctx context.Context, ownerID, transactionID uuid.UUID, categoryRef string, errorMsg string) {
	cl.logger.WarnContext(ctx, "category resolution failed",
		slog.String("event_type", "category_resolution_failed"),
		slog.String("owner_id", ownerID.String()),
		slog.String("transaction_id", transactionID.String()),
		slog.String("category_ref", categoryRef),
		slog.String("error", errorMsg),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

// LogReapplicationStarted logs the start of a retroactive reapplication
func (cl *CategorizationLogger) LogReapplicationStarted(ctx context.Context, ownerID uuid.UUID, normalizedText string, hasWinner bool) {
	cl.logger.InfoContext(ctx, "rule reapplication started",
		slog.String("event_type", "reapplication_started"),
		slog.String("owner_id", ownerID.String()),
		slog.String("normalized_text", normalizedText),
		slog.Bool("has_winner", hasWinner),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

// LogReapplicationCompleted logs the outcome of a reapplication run
func (cl *CategorizationLogger) LogReapplicationCompleted(ctx context.Context, ownerID uuid.UUID, affected, updated int, durationMs int64) {
	cl.logger.InfoContext(ctx, "rule reapplication completed",
		slog.String("event_type", "reapplication_completed"),
		slog.String("owner_id", ownerID.String()),
		slog.Int("affected", affected),
		slog.Int("updated", updated),
		slog.Int64("duration_ms", durationMs),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

// LogReapplicationChunkFailed logs a chunk commit failure; earlier chunks
// stay applied
func (cl *CategorizationLogger) LogReapplicationChunkFailed(ctx context.Context, ownerID uuid.UUID, chunkIndex, remaining int, errorMsg string) {
	cl.logger.ErrorContext(ctx, "rule reapplication chunk failed",
		slog.String("event_type", "reapplication_chunk_failed"),
		slog.String("owner_id", ownerID.String()),
		slog.Int("chunk_index", chunkIndex),
		slog.Int("remaining", remaining),
		slog.String("error", errorMsg),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

// LogClassifierChunkFailed logs a classifier chunk that was skipped
func (cl *CategorizationLogger) LogClassifierChunkFailed(ctx context.Context, ownerID uuid.UUID, chunkIndex, chunkSize int, errorMsg string) {
	cl.logger.WarnContext(ctx, "classifier chunk failed",
		slog.String("event_type", "classifier_chunk_failed"),
		slog.String("owner_id", ownerID.String()),
		slog.Int("chunk_index", chunkIndex),
		slog.Int("chunk_size", chunkSize),
		slog.String("error", errorMsg),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

// LogSuggestionsApplied logs the outcome of a suggestion request run
func (cl *CategorizationLogger) LogSuggestionsApplied(ctx context.Context, ownerID uuid.UUID, proposed, applied, skipped int) {
	cl.logger.InfoContext(ctx, "suggestions applied",
		slog.String("event_type", "suggestions_applied"),
		slog.String("owner_id", ownerID.String()),
		slog.Int("proposed", proposed),
		slog.Int("applied", applied),
		slog.Int("skipped", skipped),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

// LogRuleChanged logs a rule create, update, or delete
func (cl *CategorizationLogger) LogRuleChanged(ctx context.Context, scope string, ruleID uuid.UUID, action string, normalizedText string) {
	cl.logger.InfoContext(ctx, "mapping rule changed",
		slog.String("event_type", "mapping_rule_changed"),
		slog.String("scope", scope),
		slog.String("rule_id", ruleID.String()),
		slog.String("action", action),
		slog.String("normalized_text", normalizedText),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func getCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if correlationID, ok := ctx.Value("correlation_id").(string); ok {
		return correlationID
	}

	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}

	return ""
}
