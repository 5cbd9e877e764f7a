package handlers

import (
	"net/http"
	"time"

	"github.com/heinrichwest/Personal-budget-sub000/internal/dto"
	"github.com/heinrichwest/Personal-budget-sub000/internal/errors"
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionRepo repositories.TransactionRepositoryInterface) *TransactionHandler {
	return &TransactionHandler{transactionRepo: transactionRepo}
}

// ListTransactions retrieves paginated transactions for an owner
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	offset := getIntParam(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	limit := getIntParam(c, "limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	transactions, total, err := h.transactionRepo.GetByOwnerID(ownerID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	response := dto.ListTransactionsResponse{
		Transactions: toTransactionResponses(transactions),
		Pagination: dto.PaginationInfo{
			Offset: offset,
			Limit:  limit,
			Total:  total,
		},
	}

	return c.JSON(http.StatusOK, response)
}

// GetTransaction retrieves a specific transaction by ID
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	transactionID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	transaction, err := h.transactionRepo.GetByID(transactionID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	if transaction.OwnerID != ownerID {
		return SendError(c, errors.TransactionNotOwned)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// ImportTransactions stores a batch of raw transactions for an owner.
// Imported rows start unmapped; categorization runs separately.
func (h *TransactionHandler) ImportTransactions(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	var req dto.ImportTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	transactions := make([]models.Transaction, 0, len(req.Transactions))
	for _, item := range req.Transactions {
		date, err := time.Parse("2006-01-02", item.Date)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat,
				errors.WithDetails("date must use YYYY-MM-DD"))
		}

		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat,
				errors.WithDetails("amount must be a decimal number"))
		}

		transactions = append(transactions, models.Transaction{
			OwnerID:        ownerID,
			StatementID:    item.StatementID,
			Date:           date,
			RawDescription: item.RawDescription,
			Amount:         amount,
		})
	}

	if err := h.transactionRepo.CreateBatch(transactions); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.ImportTransactionsResponse{
		Imported: len(transactions),
	})
}

// toTransactionResponse converts a transaction model to its API
// representation
func toTransactionResponse(txn *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                    txn.ID,
		OwnerID:               txn.OwnerID,
		StatementID:           txn.StatementID,
		Date:                  txn.Date,
		RawDescription:        txn.RawDescription,
		MappedDescription:     txn.MappedDescription,
		Amount:                txn.Amount.String(),
		CategoryID:            txn.CategoryID,
		CategoryName:          txn.CategoryName,
		SuggestedCategoryID:   txn.SuggestedCategoryID,
		SuggestedCategoryName: txn.SuggestedCategoryName,
		SuggestedMerchant:     txn.SuggestedMerchant,
		CreatedAt:             txn.CreatedAt,
	}
}

func toTransactionResponses(transactions []models.Transaction) []dto.TransactionResponse {
	result := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		result = append(result, toTransactionResponse(&transactions[i]))
	}
	return result
}
