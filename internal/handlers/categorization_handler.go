package handlers

import (
	"net/http"

	"github.com/heinrichwest/Personal-budget-sub000/internal/dto"
	"github.com/heinrichwest/Personal-budget-sub000/internal/errors"
	"github.com/heinrichwest/Personal-budget-sub000/internal/services"

	"github.com/labstack/echo/v4"
)

// CategorizationHandler exposes the rule-based categorization engine
type CategorizationHandler struct {
	categorization services.CategorizationServiceInterface
}

// NewCategorizationHandler creates a new categorization handler
func NewCategorizationHandler(categorization services.CategorizationServiceInterface) *CategorizationHandler {
	return &CategorizationHandler{categorization: categorization}
}

// CategorizeUnmapped runs the merged rule set over the owner's
// uncategorized transactions only. Typical trigger after a statement
// import.
func (h *CategorizationHandler) CategorizeUnmapped(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	report, err := h.categorization.CategorizeUnmapped(c.Request().Context(), ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toCategorizationResponse(report))
}

// RescanAll re-runs the merged rule set over the owner's full history.
// Transactions without a positive rule match are left untouched, so
// manual categorizations survive a rescan.
func (h *CategorizationHandler) RescanAll(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	report, err := h.categorization.RescanAll(c.Request().Context(), ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toCategorizationResponse(report))
}

func toCategorizationResponse(report *services.CategorizationReport) dto.CategorizationRunResponse {
	return dto.CategorizationRunResponse{
		Mode:       report.Mode,
		Scanned:    report.Scanned,
		Matched:    report.Matched,
		Updated:    report.Updated,
		Unmapped:   report.Unmapped,
		Unresolved: report.Unresolved,
	}
}
