package services

import (
	"context"
	"sort"
	"testing"

	"budgetbook/internal/testutil"
)

func TestGetCategorySummary(t *testing.T) {
	t.Run("grouped_with_grand_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		testutil.CreateTestCategoryTotal(t, db, "Food", "Groceries", "50.00")
		testutil.CreateTestCategoryTotal(t, db, "Food", "Dining", "20.00")

		summary, err := svc.GetCategorySummary(context.Background())
		testutil.AssertNoError(t, err)

		if summary.GrandTotal != 70.0 {
			t.Errorf("expected grand total 70.0, got %v", summary.GrandTotal)
		}
		food, ok := summary.Categories["Food"]
		if !ok {
			t.Fatalf("expected Food category, got %v", summary.Categories)
		}
		if food["Groceries"] != 50.0 || food["Dining"] != 20.0 {
			t.Errorf("unexpected Food totals: %v", food)
		}
		if len(summary.Categories) != 1 {
			t.Errorf("expected 1 category, got %d", len(summary.Categories))
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		summary, err := svc.GetCategorySummary(context.Background())
		testutil.AssertNoError(t, err)

		if summary.GrandTotal != 0 {
			t.Errorf("expected grand total 0, got %v", summary.GrandTotal)
		}
		if summary.Categories == nil || len(summary.Categories) != 0 {
			t.Errorf("expected empty non-nil categories, got %v", summary.Categories)
		}
	})

	t.Run("exact_cents", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		testutil.CreateTestCategoryTotal(t, db, "Bills", "Power", "0.10")
		testutil.CreateTestCategoryTotal(t, db, "Bills", "Water", "0.20")

		summary, err := svc.GetCategorySummary(context.Background())
		testutil.AssertNoError(t, err)

		if summary.GrandTotal != 0.3 {
			t.Errorf("expected grand total 0.3, got %v", summary.GrandTotal)
		}
	})
}

func TestGetCategoryCatalog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	testutil.CreateTestCategoryTotal(t, db, "Food", "Groceries", "0")
	testutil.CreateTestCategoryTotal(t, db, "Food", "Dining", "0")
	testutil.CreateTestCategoryTotal(t, db, "Transport", "Fuel", "0")

	catalog, err := svc.GetCategoryCatalog(context.Background())
	testutil.AssertNoError(t, err)

	if len(catalog) != 2 {
		t.Fatalf("expected 2 categories, got %v", catalog)
	}
	food := append([]string(nil), catalog["Food"]...)
	sort.Strings(food)
	if len(food) != 2 || food[0] != "Dining" || food[1] != "Groceries" {
		t.Errorf("unexpected Food subcategories: %v", food)
	}
	if !catalog.Has("Transport", "Fuel") {
		t.Error("expected catalog to contain Transport/Fuel")
	}
	if catalog.Has("Transport", "Groceries") {
		t.Error("Groceries is not a Transport subcategory")
	}
}

func TestExportSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	testutil.CreateTestCategoryTotal(t, db, "Food", "Groceries", "12.34")

	out, err := svc.ExportSummary(context.Background())
	testutil.AssertNoError(t, err)

	if out["Food"]["Groceries"] != 12.34 {
		t.Errorf("expected 12.34, got %v", out)
	}
}

func TestClosestMatch(t *testing.T) {
	candidates := []string{"Food", "Transport", "Utilities"}

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"typo", "Fod", "Food", true},
		{"case_only", "transport", "Transport", true},
		{"too_far", "Entertainment", "", false},
		{"no_candidates", "Food", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidates
			if tt.name == "no_candidates" {
				c = nil
			}
			got, ok := closestMatch(tt.input, c)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("closestMatch(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
