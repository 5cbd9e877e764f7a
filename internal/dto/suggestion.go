package dto

import "github.com/google/uuid"

// SuggestionRunResponse reports the outcome of a classifier suggestion
// run
type SuggestionRunResponse struct {
	Unmapped     int `json:"unmapped"`
	Chunks       int `json:"chunks"`
	FailedChunks int `json:"failedChunks"`
	Proposed     int `json:"proposed"`
	Applied      int `json:"applied"`
	Skipped      int `json:"skipped"`
}

// SuggestionGroupResponse is one category group in the review batch
type SuggestionGroupResponse struct {
	CategoryName string                `json:"categoryName"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ReviewBatchResponse is the grouped set of pending suggestions for
// review
type ReviewBatchResponse struct {
	Groups []SuggestionGroupResponse `json:"groups"`
	Total  int                       `json:"total"`
}

// BulkApproveRequest selects which pending suggestions to accept and
// which accepted ones should also become personal rules
type BulkApproveRequest struct {
	SelectedIDs []uuid.UUID `json:"selectedIds" validate:"required,min=1,dive,uuid4|uuid"`
	RuleFlagIDs []uuid.UUID `json:"ruleFlagIds"`
}

// BulkApproveResponse reports the outcome of a bulk approval
type BulkApproveResponse struct {
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	RulesCreated int `json:"rulesCreated"`
}
