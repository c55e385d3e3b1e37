package spreadsheet

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteAndReadTable(t *testing.T) {
	data, err := Write([]Sheet{
		{
			Name:   "Category",
			Header: []string{"id", "category", "subcategory", "total_sum"},
			Rows: [][]any{
				{uint(1), "Food", "Groceries", 50.0},
				{uint(2), "Food", "Dining", 20.25},
			},
		},
		{
			Name:   "Transaction",
			Header: []string{"id", "datetime"},
			Rows:   [][]any{{uint(7), "2024-01-02 03:04:05"}},
		},
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	wb, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer wb.Close()

	names := wb.SheetNames()
	if len(names) != 2 || names[0] != "Category" || names[1] != "Transaction" {
		t.Fatalf("unexpected sheet names %v", names)
	}

	table, err := wb.ReadTable("Category")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if strings.Join(table.Header, ",") != "id,category,subcategory,total_sum" {
		t.Errorf("unexpected header %v", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1][1] != "Food" || table.Rows[1][2] != "Dining" {
		t.Errorf("unexpected row %v", table.Rows[1])
	}
	if table.Rows[1][3] != "20.25" {
		t.Errorf("expected raw numeric text 20.25, got %q", table.Rows[1][3])
	}
	if table.RowNumbers[0] != 2 {
		t.Errorf("expected first data row at worksheet row 2, got %d", table.RowNumbers[0])
	}
}

func TestWriteSizesColumns(t *testing.T) {
	long := strings.Repeat("x", 80)
	data, err := Write([]Sheet{{
		Name:   "Category",
		Header: []string{"id", "category"},
		Rows:   [][]any{{uint(1), long}},
	}})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := excelize.OpenReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	idWidth, err := f.GetColWidth("Category", "A")
	if err != nil {
		t.Fatalf("get width failed: %v", err)
	}
	if idWidth != 4 {
		t.Errorf("expected id column width 4, got %v", idWidth)
	}

	catWidth, err := f.GetColWidth("Category", "B")
	if err != nil {
		t.Fatalf("get width failed: %v", err)
	}
	if catWidth != MaxColumnWidth {
		t.Errorf("expected capped width %d, got %v", MaxColumnWidth, catWidth)
	}
}

func TestWriteWithoutSheets(t *testing.T) {
	data, err := Write(nil)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	wb, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer wb.Close()

	if names := wb.SheetNames(); len(names) != 1 || names[0] != defaultSheet {
		t.Errorf("expected a single blank sheet, got %v", names)
	}
}

func TestFindSheet(t *testing.T) {
	data, err := Write([]Sheet{
		{Name: "category", Header: []string{"a"}},
		{Name: "Transaction", Header: []string{"a"}},
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	wb, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer wb.Close()

	if got, ok := wb.FindSheet("Category"); !ok || got != "category" {
		t.Errorf("expected case-insensitive match 'category', got %q (%v)", got, ok)
	}
	if got, ok := wb.FindSheet("Transaction"); !ok || got != "Transaction" {
		t.Errorf("expected exact match preferred, got %q", got)
	}
	if _, ok := wb.FindSheet("Budget"); ok {
		t.Error("expected no match for Budget")
	}
}

func TestReadTableTrimsAndPads(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_ = f.SetSheetRow("Sheet1", "A1", &[]any{" category ", "subcategory", "total_sum"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]any{"Food", "Dining"})
	_ = f.SetSheetRow("Sheet1", "A4", &[]any{"Home", "Rent", "900"})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	wb, err := OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer wb.Close()

	table, err := wb.ReadTable("Sheet1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if table.Header[0] != "category" {
		t.Errorf("expected trimmed header, got %q", table.Header[0])
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected blank row to be skipped, got %d rows", len(table.Rows))
	}
	if len(table.Rows[0]) != 3 || table.Rows[0][2] != "" {
		t.Errorf("expected short row padded, got %v", table.Rows[0])
	}
	if table.RowNumbers[1] != 4 {
		t.Errorf("expected worksheet row 4, got %d", table.RowNumbers[1])
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := OpenBytes([]byte("not a workbook")); err == nil {
		t.Fatal("expected error opening garbage")
	}
}

func TestReadTableWidensForStrayCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_ = f.SetSheetRow("Sheet1", "A1", &[]any{"id", "category", "subcategory", "total_sum"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]any{1, "Food", "Groceries", 5, "STRAY"})
	_ = f.SetSheetRow("Sheet1", "A3", &[]any{2, "Home", "Rent", 900})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	wb, err := OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer wb.Close()

	table, err := wb.ReadTable("Sheet1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(table.Header) != 5 || table.Header[4] != "" {
		t.Fatalf("expected header padded to 5 columns, got %q", table.Header)
	}
	if table.Rows[0][4] != "STRAY" {
		t.Errorf("expected stray cell kept, got %v", table.Rows[0])
	}
	if len(table.Rows[1]) != 5 {
		t.Errorf("expected every row 5 wide, got %v", table.Rows[1])
	}
}
