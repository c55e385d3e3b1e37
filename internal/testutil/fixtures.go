package testutil

import (
	"testing"
	"time"

	"budgetbook/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateTestCategoryTotal creates a ledger row with the given total.
func CreateTestCategoryTotal(t *testing.T, db *gorm.DB, category, subcategory, total string) *models.CategoryTotal {
	t.Helper()

	row := &models.CategoryTotal{
		Category:    category,
		Subcategory: subcategory,
		TotalSum:    decimal.RequireFromString(total),
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test category total: %v", err)
	}
	return row
}

// CreateTestTransaction creates a transaction at the given time.
func CreateTestTransaction(t *testing.T, db *gorm.DB, at time.Time, category, subcategory, amount string) *models.TransactionEntry {
	t.Helper()

	entry := &models.TransactionEntry{
		DateTime:    models.Naive(at),
		Category:    category,
		Subcategory: subcategory,
		Amount:      decimal.RequireFromString(amount),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return entry
}

// Date returns a naive wall-clock time for fixtures.
func Date(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}
