package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
	"budgetbook/internal/services"
)

// --- mock services ---

type mockCategoryService struct {
	getCategorySummaryFn func(ctx context.Context) (*services.CategorySummary, error)
	getCategoryCatalogFn func(ctx context.Context) (services.Catalog, error)
	exportSummaryFn      func(ctx context.Context) (map[string]map[string]float64, error)
}

func (m *mockCategoryService) GetCategorySummary(ctx context.Context) (*services.CategorySummary, error) {
	if m.getCategorySummaryFn != nil {
		return m.getCategorySummaryFn(ctx)
	}
	return &services.CategorySummary{Categories: map[string]map[string]float64{}}, nil
}

func (m *mockCategoryService) GetCategoryCatalog(ctx context.Context) (services.Catalog, error) {
	if m.getCategoryCatalogFn != nil {
		return m.getCategoryCatalogFn(ctx)
	}
	return services.Catalog{}, nil
}

func (m *mockCategoryService) ExportSummary(ctx context.Context) (map[string]map[string]float64, error) {
	if m.exportSummaryFn != nil {
		return m.exportSummaryFn(ctx)
	}
	return map[string]map[string]float64{}, nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

type mockTransactionService struct {
	addTransactionFn   func(ctx context.Context, category, subcategory, amountText string) (*models.TransactionEntry, error)
	listTransactionsFn func(ctx context.Context, page pagination.PageRequest) (*services.TransactionPage, error)
}

func (m *mockTransactionService) AddTransaction(ctx context.Context, category, subcategory, amountText string) (*models.TransactionEntry, error) {
	if m.addTransactionFn != nil {
		return m.addTransactionFn(ctx, category, subcategory, amountText)
	}
	return &models.TransactionEntry{}, nil
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, page pagination.PageRequest) (*services.TransactionPage, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(ctx, page)
	}
	return &services.TransactionPage{Page: pagination.NewPage(page, 0), Transactions: []models.TransactionEntry{}}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockWorkbookService struct {
	exportWorkbookFn func(ctx context.Context) ([]byte, error)
	importWorkbookFn func(ctx context.Context, data []byte) (*services.ImportResult, error)
}

func (m *mockWorkbookService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	if m.exportWorkbookFn != nil {
		return m.exportWorkbookFn(ctx)
	}
	return []byte{}, nil
}

func (m *mockWorkbookService) ImportWorkbook(ctx context.Context, data []byte) (*services.ImportResult, error) {
	if m.importWorkbookFn != nil {
		return m.importWorkbookFn(ctx, data)
	}
	return &services.ImportResult{}, nil
}

var _ services.WorkbookServicer = (*mockWorkbookService)(nil)

type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(action, _ string, _ uint, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["status"] != "error" {
		t.Fatalf("expected error envelope, got: %v", result)
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}

func assertErrorMessage(t *testing.T, result map[string]interface{}, msg string) {
	t.Helper()
	if result["msg"] != msg || result["error"] != msg {
		t.Errorf("expected message %q in msg and error, got %v / %v", msg, result["msg"], result["error"])
	}
}
