package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	suite.Suite
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) validTransaction() *Transaction {
	return &Transaction{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		RawDescription: "CHECKERS SANDTON",
		Amount:         decimal.NewFromFloat(-250.50),
	}
}

func (s *TransactionTestSuite) TestValidate() {
	categoryID := uuid.New()

	testCases := []struct {
		mutate      func(*Transaction)
		expectedErr error
		description string
	}{
		{func(t *Transaction) {}, nil, "valid unmapped transaction"},
		{func(t *Transaction) { t.OwnerID = uuid.Nil }, ErrOwnerRequired, "missing owner"},
		{func(t *Transaction) { t.RawDescription = "" }, ErrDescriptionRequired, "missing raw description"},
		{func(t *Transaction) { t.CategoryID = &categoryID }, ErrInconsistentCategory, "category ID without name"},
		{func(t *Transaction) { t.CategoryName = "Groceries" }, ErrInconsistentCategory, "category name without ID"},
		{func(t *Transaction) {
			t.CategoryID = &categoryID
			t.CategoryName = "Groceries"
			t.SuggestedMerchant = "Checkers"
		}, ErrSuggestionWithCategory, "suggestion coexisting with category"},
		{func(t *Transaction) {
			t.CategoryID = &categoryID
			t.CategoryName = "Groceries"
		}, nil, "valid categorized transaction"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			txn := s.validTransaction()
			tc.mutate(txn)

			err := txn.Validate()
			if tc.expectedErr == nil {
				s.NoError(err)
			} else {
				s.ErrorIs(err, tc.expectedErr)
			}
		})
	}
}

func (s *TransactionTestSuite) TestApplyCategory_ClearsSuggestion() {
	txn := s.validTransaction()
	txn.SetSuggestion(uuid.New(), "Groceries", "Checkers")
	s.True(txn.HasSuggestion())

	categoryID := uuid.New()
	txn.ApplyCategory(categoryID, "Groceries", "Checkers")

	s.True(txn.IsCategorized())
	s.Equal(&categoryID, txn.CategoryID)
	s.Equal("Groceries", txn.CategoryName)
	s.Equal("Checkers", txn.MappedDescription)
	s.False(txn.HasSuggestion())
	s.NoError(txn.Validate())
}

func (s *TransactionTestSuite) TestClearCategory_RevertsToRawDescription() {
	txn := s.validTransaction()
	txn.ApplyCategory(uuid.New(), "Groceries", "Checkers")

	txn.ClearCategory()

	s.False(txn.IsCategorized())
	s.Empty(txn.CategoryName)
	s.Equal(txn.RawDescription, txn.MappedDescription)
	s.NoError(txn.Validate())
}

func (s *TransactionTestSuite) TestAcceptSuggestion() {
	s.Run("promotes a complete suggestion", func() {
		txn := s.validTransaction()
		suggestedID := uuid.New()
		txn.SetSuggestion(suggestedID, "Groceries", "Checkers")

		s.True(txn.AcceptSuggestion())
		s.Equal(&suggestedID, txn.CategoryID)
		s.Equal("Groceries", txn.CategoryName)
		s.Equal("Checkers", txn.MappedDescription)
		s.False(txn.HasSuggestion())
	})

	s.Run("falls back to raw description without a merchant", func() {
		txn := s.validTransaction()
		txn.SetSuggestion(uuid.New(), "Groceries", "")

		s.True(txn.AcceptSuggestion())
		s.Equal(txn.RawDescription, txn.MappedDescription)
	})

	s.Run("refuses without a pending suggestion", func() {
		txn := s.validTransaction()
		s.False(txn.AcceptSuggestion())
		s.False(txn.IsCategorized())
	})
}

func (s *TransactionTestSuite) TestIsCredit() {
	credit := s.validTransaction()
	credit.Amount = decimal.NewFromFloat(1500)
	s.True(credit.IsCredit())

	debit := s.validTransaction()
	debit.Amount = decimal.NewFromFloat(-42.10)
	s.False(debit.IsCredit())
}
