package services

import (
	"context"
	"testing"

	"github.com/heinrichwest/Personal-budget-sub000/internal/database"
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReapplicationServiceTestSuite struct {
	suite.Suite
	db              *database.DB
	transactionRepo repositories.TransactionRepositoryInterface
	ruleRepo        repositories.MappingRuleRepositoryInterface
	service         ReapplicationServiceInterface
	ownerID         uuid.UUID
	ctx             context.Context
}

func TestReapplicationServiceSuite(t *testing.T) {
	suite.Run(t, new(ReapplicationServiceTestSuite))
}

func (s *ReapplicationServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.transactionRepo = repositories.NewTransactionRepository(s.db.DB)
	s.ruleRepo = repositories.NewMappingRuleRepository(s.db.DB)
	categoryRepo := repositories.NewBudgetCategoryRepository(s.db.DB)

	categoryResolver := NewCategoryResolverService(categoryRepo)
	s.service = NewReapplicationService(s.transactionRepo, s.ruleRepo, categoryResolver, nil, nil, 450)
	s.ownerID = uuid.New()
	s.ctx = context.Background()
}

func (s *ReapplicationServiceTestSuite) TestReapplyForText_PersonalRuleWins() {
	database.CreateTestRule(s.T(), s.db, models.ScopeSystem, "CHECKERS", "Checkers (system)", "Groceries")
	database.CreateTestRule(s.T(), s.db, models.ScopeForOwner(s.ownerID), "CHECKERS", "Checkers (mine)", "Food")
	txn := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "CHECKERS SANDTON", decimal.NewFromInt(-200))

	report, err := s.service.ReapplyForText(s.ctx, s.ownerID, "checkers")

	s.NoError(err)
	s.True(report.HasWinner)
	s.Equal(1, report.Affected)
	s.Equal(1, report.Updated)

	reloaded, err := s.transactionRepo.GetByID(txn.ID)
	s.NoError(err)
	s.Equal("Food", reloaded.CategoryName)
	s.Equal("Checkers (mine)", reloaded.MappedDescription)
}

func (s *ReapplicationServiceTestSuite) TestReapplyForText_DeleteRevertsToSystemRule() {
	database.CreateTestRule(s.T(), s.db, models.ScopeSystem, "NETFLIX", "Netflix", "Entertainment")
	personal := database.CreateTestRule(s.T(), s.db, models.ScopeForOwner(s.ownerID), "NETFLIX", "Movie night", "Fun")
	txn := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "NETFLIX.COM 123", decimal.NewFromInt(-199))

	_, err := s.service.ReapplyForText(s.ctx, s.ownerID, "netflix")
	s.NoError(err)

	s.NoError(s.ruleRepo.Delete(personal.ID))
	report, err := s.service.ReapplyForText(s.ctx, s.ownerID, "netflix")

	s.NoError(err)
	s.True(report.HasWinner, "the system rule survives the personal delete")

	reloaded, err := s.transactionRepo.GetByID(txn.ID)
	s.NoError(err)
	s.Equal("Entertainment", reloaded.CategoryName)
	s.Equal("Netflix", reloaded.MappedDescription)
}

func (s *ReapplicationServiceTestSuite) TestReapplyForText_NoRuleReverts() {
	personal := database.CreateTestRule(s.T(), s.db, models.ScopeForOwner(s.ownerID), "BOLT", "Bolt", "Transport")
	txn := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "BOLT RIDE CPT", decimal.NewFromInt(-75))

	_, err := s.service.ReapplyForText(s.ctx, s.ownerID, "bolt")
	s.NoError(err)

	s.NoError(s.ruleRepo.Delete(personal.ID))
	report, err := s.service.ReapplyForText(s.ctx, s.ownerID, "bolt")

	s.NoError(err)
	s.False(report.HasWinner)
	s.Equal(1, report.Affected)
	s.Equal(1, report.Updated)

	reloaded, err := s.transactionRepo.GetByID(txn.ID)
	s.NoError(err)
	s.False(reloaded.IsCategorized())
	s.Equal(reloaded.RawDescription, reloaded.MappedDescription)
}

func (s *ReapplicationServiceTestSuite) TestReapplyForText_Idempotent() {
	database.CreateTestRule(s.T(), s.db, models.ScopeForOwner(s.ownerID), "UBER", "Uber", "Transport")
	database.CreateTestTransaction(s.T(), s.db, s.ownerID, "UBER TRIP", decimal.NewFromInt(-90))

	first, err := s.service.ReapplyForText(s.ctx, s.ownerID, "uber")
	s.NoError(err)
	s.Equal(1, first.Updated)

	second, err := s.service.ReapplyForText(s.ctx, s.ownerID, "uber")
	s.NoError(err)
	s.Equal(1, second.Affected)
	s.Zero(second.Updated, "a second run with no further edits writes nothing")
}

func (s *ReapplicationServiceTestSuite) TestReapplyForText_OnlyMatchingTransactions() {
	database.CreateTestRule(s.T(), s.db, models.ScopeForOwner(s.ownerID), "SPAR", "Spar", "Groceries")
	database.CreateTestTransaction(s.T(), s.db, s.ownerID, "SPAR CLAREMONT", decimal.NewFromInt(-30))
	unrelated := database.CreateTestTransaction(s.T(), s.db, s.ownerID, "WOOLWORTHS", decimal.NewFromInt(-60))

	report, err := s.service.ReapplyForText(s.ctx, s.ownerID, "spar")
	s.NoError(err)
	s.Equal(1, report.Affected)

	reloaded, err := s.transactionRepo.GetByID(unrelated.ID)
	s.NoError(err)
	s.False(reloaded.IsCategorized())
	s.Empty(reloaded.MappedDescription)
}

func (s *ReapplicationServiceTestSuite) TestReapplyForText_EmptyTextIsNoop() {
	report, err := s.service.ReapplyForText(s.ctx, s.ownerID, "   ")

	s.NoError(err)
	s.Zero(report.Affected)
	s.Zero(report.Updated)
}
