package repositories

import (
	"testing"

	"github.com/heinrichwest/Personal-budget-sub000/internal/database"
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositoryTestSuite struct {
	suite.Suite
	db      *database.DB
	repo    TransactionRepositoryInterface
	ownerID uuid.UUID
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.ownerID = uuid.New()
}

func (s *TransactionRepositoryTestSuite) TestCreateBatchAndPagination() {
	transactions := make([]models.Transaction, 0, 5)
	for i := 0; i < 5; i++ {
		transactions = append(transactions, models.Transaction{
			OwnerID:        s.ownerID,
			RawDescription: gofakeit.Company(),
			Amount:         decimal.NewFromFloat(-gofakeit.Price(10, 500)),
		})
	}
	s.NoError(s.repo.CreateBatch(transactions))

	page, total, err := s.repo.GetByOwnerID(s.ownerID, 0, 3)
	s.NoError(err)
	s.EqualValues(5, total)
	s.Len(page, 3)

	otherPage, otherTotal, err := s.repo.GetByOwnerID(uuid.New(), 0, 3)
	s.NoError(err)
	s.Zero(otherTotal)
	s.Empty(otherPage, "reads are owner-partitioned")
}

func (s *TransactionRepositoryTestSuite) TestGetUnmappedByOwnerID() {
	unmapped := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "UBER TRIP", decimal.NewFromInt(-80))
	categorized := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "NETFLIX", decimal.NewFromInt(-199))
	category := database.CreateTestCategory(s.T(), s.db, s.ownerID, "Entertainment")

	categorized.ApplyCategory(category.ID, category.Name, "Netflix")
	s.NoError(s.repo.UpdateCategorization(categorized))

	result, err := s.repo.GetUnmappedByOwnerID(s.ownerID)
	s.NoError(err)
	s.Len(result, 1)
	s.Equal(unmapped.ID, result[0].ID)
}

func (s *TransactionRepositoryTestSuite) TestUpdateCategorization_ClearsToNull() {
	txn := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "NETFLIX", decimal.NewFromInt(-199))
	category := database.CreateTestCategory(s.T(), s.db, s.ownerID, "Entertainment")

	txn.ApplyCategory(category.ID, category.Name, "Netflix")
	s.NoError(s.repo.UpdateCategorization(txn))

	txn.ClearCategory()
	s.NoError(s.repo.UpdateCategorization(txn))

	reloaded, err := s.repo.GetByID(txn.ID)
	s.NoError(err)
	s.Nil(reloaded.CategoryID, "clearing must write NULL, not skip the zero value")
	s.Empty(reloaded.CategoryName)
	s.Equal("NETFLIX", reloaded.MappedDescription)
}

func (s *TransactionRepositoryTestSuite) TestUpdateCategorization_NotFound() {
	missing := &models.Transaction{
		ID:             uuid.New(),
		OwnerID:        s.ownerID,
		RawDescription: "GHOST",
	}
	s.ErrorIs(s.repo.UpdateCategorization(missing), ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestGetWithSuggestionsByOwnerID() {
	plain := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "UNKNOWN SHOP", decimal.NewFromInt(-50))
	suggested := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "CHECKERS", decimal.NewFromInt(-120))
	category := database.CreateTestCategory(s.T(), s.db, s.ownerID, "Groceries")

	suggested.SetSuggestion(category.ID, category.Name, "Checkers")
	s.NoError(s.repo.UpdateCategorization(suggested))

	result, err := s.repo.GetWithSuggestionsByOwnerID(s.ownerID)
	s.NoError(err)
	s.Len(result, 1)
	s.Equal(suggested.ID, result[0].ID)
	s.NotEqual(plain.ID, result[0].ID)
}
