package handlers

import (
	"errors"
	"net/http"

	"github.com/heinrichwest/Personal-budget-sub000/internal/dto"
	apierrors "github.com/heinrichwest/Personal-budget-sub000/internal/errors"
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"
	"github.com/heinrichwest/Personal-budget-sub000/internal/services"

	"github.com/labstack/echo/v4"
)

// SuggestionHandler exposes the classifier suggestion pipeline and the
// review/approval workflow
type SuggestionHandler struct {
	suggestions services.SuggestionServiceInterface
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(suggestions services.SuggestionServiceInterface) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

// RequestSuggestions sends the owner's unmapped transactions to the
// classifier in chunks and records the returned proposals. Failed chunks
// are skipped, so a partial run still produces reviewable suggestions.
func (h *SuggestionHandler) RequestSuggestions(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails(err.Error()))
	}

	report, err := h.suggestions.RequestSuggestions(c.Request().Context(), ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	response := dto.SuggestionRunResponse{
		Unmapped:     report.Unmapped,
		Chunks:       report.Chunks,
		FailedChunks: report.FailedChunks,
		Proposed:     report.Proposed,
		Applied:      report.Applied,
		Skipped:      report.Skipped,
	}

	if report.FailedChunks > 0 {
		return c.JSON(http.StatusOK, SuccessResponse{
			Data:    response,
			Message: apierrors.GetErrorMessage(apierrors.SuggestionPartialFail),
		})
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// GetReviewBatch returns the owner's pending suggestions grouped by
// proposed category name for review
func (h *SuggestionHandler) GetReviewBatch(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails(err.Error()))
	}

	batch, err := h.suggestions.GetReviewBatch(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toReviewBatchResponse(batch))
}

// AcceptSuggestion promotes a single pending suggestion into the
// transaction's authoritative category
func (h *SuggestionHandler) AcceptSuggestion(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails(err.Error()))
	}

	transactionID, err := getUUIDParam(c, "transactionId")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails(err.Error()))
	}

	transaction, err := h.suggestions.AcceptOne(c.Request().Context(), ownerID, transactionID)
	if err != nil {
		return sendSuggestionError(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// RejectSuggestion discards a single pending suggestion, leaving the
// transaction unmapped
func (h *SuggestionHandler) RejectSuggestion(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails(err.Error()))
	}

	transactionID, err := getUUIDParam(c, "transactionId")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails(err.Error()))
	}

	transaction, err := h.suggestions.RejectOne(c.Request().Context(), ownerID, transactionID)
	if err != nil {
		return sendSuggestionError(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// BulkApprove accepts the selected pending suggestions, rejects the
// rest, and creates personal rules for the flagged merchants
func (h *SuggestionHandler) BulkApprove(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails(err.Error()))
	}

	var req dto.BulkApproveRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.suggestions.BulkApprove(c.Request().Context(), ownerID, req.SelectedIDs, req.RuleFlagIDs)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BulkApproveResponse{
		Approved:     report.Approved,
		Rejected:     report.Rejected,
		RulesCreated: report.RulesCreated,
	})
}

func sendSuggestionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return SendError(c, apierrors.TransactionNotFound)
	case errors.Is(err, services.ErrNotTransactionOwner):
		return SendError(c, apierrors.TransactionNotOwned)
	case errors.Is(err, services.ErrNoSuggestion):
		return SendError(c, apierrors.SuggestionNotFound)
	default:
		return SendSystemError(c, err)
	}
}

func toReviewBatchResponse(batch models.SuggestionBatch) dto.ReviewBatchResponse {
	response := dto.ReviewBatchResponse{
		Groups: make([]dto.SuggestionGroupResponse, 0, len(batch.Groups)),
		Total:  batch.Total,
	}

	for _, group := range batch.Groups {
		response.Groups = append(response.Groups, dto.SuggestionGroupResponse{
			CategoryName: group.CategoryName,
			Transactions: toTransactionResponses(group.Transactions),
		})
	}

	return response
}
