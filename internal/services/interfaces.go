package services

import (
	"context"

	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
)

// CategorySummary groups ledger totals by category and subcategory.
type CategorySummary struct {
	Categories map[string]map[string]float64 `json:"categories"`
	GrandTotal float64                       `json:"grand_total"`
}

// Catalog maps each category to its known subcategories.
type Catalog map[string][]string

// CategoryServicer defines the read-only operations over the category ledger.
type CategoryServicer interface {
	GetCategorySummary(ctx context.Context) (*CategorySummary, error)
	GetCategoryCatalog(ctx context.Context) (Catalog, error)
	ExportSummary(ctx context.Context) (map[string]map[string]float64, error)
}

// TransactionPage is one page of the transaction log, most recent first.
type TransactionPage struct {
	pagination.Page
	Transactions []models.TransactionEntry
}

// TransactionServicer defines the contract for transaction ingestion and listing.
type TransactionServicer interface {
	AddTransaction(ctx context.Context, category, subcategory, amountText string) (*models.TransactionEntry, error)
	ListTransactions(ctx context.Context, page pagination.PageRequest) (*TransactionPage, error)
}

// EntityResult counts what an import did to one entity.
type EntityResult struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
}

// ImportResult summarizes a successful workbook import.
type ImportResult struct {
	SheetsImported []string                `json:"sheets_imported"`
	RowCounts      map[string]int          `json:"row_counts"`
	Results        map[string]EntityResult `json:"results"`
}

// WorkbookServicer defines spreadsheet export and reconciliation import.
type WorkbookServicer interface {
	ExportWorkbook(ctx context.Context) ([]byte, error)
	ImportWorkbook(ctx context.Context, data []byte) (*ImportResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
