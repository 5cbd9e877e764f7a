package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionResponse represents a transaction in API responses.
// Category fields are omitted while the transaction is unmapped.
type TransactionResponse struct {
	ID                    uuid.UUID  `json:"id"`
	OwnerID               uuid.UUID  `json:"ownerId"`
	StatementID           *uuid.UUID `json:"statementId,omitempty"`
	Date                  time.Time  `json:"date"`
	RawDescription        string     `json:"rawDescription"`
	MappedDescription     string     `json:"mappedDescription,omitempty"`
	Amount                string     `json:"amount"`
	CategoryID            *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName          string     `json:"categoryName,omitempty"`
	SuggestedCategoryID   *uuid.UUID `json:"suggestedCategoryId,omitempty"`
	SuggestedCategoryName string     `json:"suggestedCategoryName,omitempty"`
	SuggestedMerchant     string     `json:"suggestedMerchant,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// ListTransactionsResponse represents the response for listing
// transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// ImportTransactionItem is one raw transaction in an import request
type ImportTransactionItem struct {
	Date           string     `json:"date" validate:"required,datetime=2006-01-02"`
	RawDescription string     `json:"rawDescription" validate:"required,min=1,max=500"`
	Amount         string     `json:"amount" validate:"required"`
	StatementID    *uuid.UUID `json:"statementId"`
}

// ImportTransactionsRequest is the payload for importing raw
// transactions
type ImportTransactionsRequest struct {
	Transactions []ImportTransactionItem `json:"transactions" validate:"required,min=1,max=1000,dive"`
}

// ImportTransactionsResponse reports how many transactions were stored
type ImportTransactionsResponse struct {
	Imported int `json:"imported"`
}

// CategorizationRunResponse reports the outcome of a categorization run
type CategorizationRunResponse struct {
	Mode       string `json:"mode"`
	Scanned    int    `json:"scanned"`
	Matched    int    `json:"matched"`
	Updated    int    `json:"updated"`
	Unmapped   int    `json:"unmapped"`
	Unresolved int    `json:"unresolved"`
}
