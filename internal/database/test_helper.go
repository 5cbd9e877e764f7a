package database

import (
	"testing"
	"time"

	"github.com/heinrichwest/Personal-budget-sub000/internal/config"
	"github.com/heinrichwest/Personal-budget-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestCategory(t *testing.T, db *DB, ownerID uuid.UUID, name string) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		OwnerID: ownerID,
		Name:    name,
		Type:    models.CategoryTypeVariable,
		Amount:  decimal.Zero,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestTransaction(t *testing.T, db *DB, ownerID uuid.UUID, rawDescription string, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		OwnerID:        ownerID,
		Date:           time.Now().AddDate(0, 0, -1),
		RawDescription: rawDescription,
		Amount:         amount,
	}

	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return transaction
}

func CreateTestRule(t *testing.T, db *DB, scope, matchText, mappedDescription, categoryRef string) *models.MappingRule {
	t.Helper()

	rule := &models.MappingRule{
		MatchText:         matchText,
		MappedDescription: mappedDescription,
		CategoryRef:       categoryRef,
		OwnerScope:        scope,
	}

	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule: %v", err)
	}

	return rule
}
