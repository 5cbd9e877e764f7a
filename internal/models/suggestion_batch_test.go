package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SuggestionBatchTestSuite struct {
	suite.Suite
}

func TestSuggestionBatchSuite(t *testing.T) {
	suite.Run(t, new(SuggestionBatchTestSuite))
}

func (s *SuggestionBatchTestSuite) suggested(category, merchant string) Transaction {
	categoryID := uuid.New()
	return Transaction{
		ID:                    uuid.New(),
		OwnerID:               uuid.New(),
		RawDescription:        merchant,
		SuggestedCategoryID:   &categoryID,
		SuggestedCategoryName: category,
		SuggestedMerchant:     merchant,
	}
}

func (s *SuggestionBatchTestSuite) TestBuildSuggestionBatch_GroupsByCategoryName() {
	transactions := []Transaction{
		s.suggested("Transport", "Uber"),
		s.suggested("Groceries", "Checkers"),
		s.suggested("Groceries", "Woolworths"),
		{ID: uuid.New(), OwnerID: uuid.New(), RawDescription: "no suggestion here"},
	}

	batch := BuildSuggestionBatch(transactions)

	s.Equal(3, batch.Total, "transactions without suggestions are excluded")
	s.Len(batch.Groups, 2)
	s.Equal("Groceries", batch.Groups[0].CategoryName, "groups sort by name")
	s.Len(batch.Groups[0].Transactions, 2)
	s.Equal("Transport", batch.Groups[1].CategoryName)
	s.Len(batch.Groups[1].Transactions, 1)
}

func (s *SuggestionBatchTestSuite) TestBuildSuggestionBatch_Empty() {
	batch := BuildSuggestionBatch(nil)

	s.Zero(batch.Total)
	s.Empty(batch.Groups)
}
