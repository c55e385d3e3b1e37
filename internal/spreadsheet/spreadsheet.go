// Package spreadsheet reads and writes xlsx workbooks as plain header+rows
// tables. Cells are read back as raw text so callers decide how to coerce
// numbers and dates.
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxColumnWidth caps auto-sized columns, in character widths.
const MaxColumnWidth = 50

// columnPadding is added to the longest cell when auto-sizing.
const columnPadding = 2

// defaultSheet is the sheet excelize creates with every new file.
const defaultSheet = "Sheet1"

// Sheet is a table to be written: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Table is a sheet read back from a workbook. Every row has exactly
// len(Header) cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
	// RowNumbers holds the 1-based worksheet row of each entry in Rows.
	RowNumbers []int
}

// Write renders the sheets into an xlsx document. Columns are auto-sized to
// their longest value. With no sheets the document holds one blank sheet.
func Write(sheets []Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sh.Name, err)
		}

		if err := writeSheet(f, sh); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh Sheet) error {
	header := make([]any, len(sh.Header))
	widths := make([]int, len(sh.Header))
	for i, h := range sh.Header {
		header[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header of %q: %w", sh.Name, err)
	}

	for r, row := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := append([]any(nil), row...)
		if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", r+2, sh.Name, err)
		}
		for i, v := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len(fmt.Sprint(v)))
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.Name, col, col, ColumnWidth(w)); err != nil {
			return fmt.Errorf("size column %s of %q: %w", col, sh.Name, err)
		}
	}
	return nil
}

// ColumnWidth converts the longest value length of a column into the
// column width to apply.
func ColumnWidth(longest int) float64 {
	return float64(min(longest+columnPadding, MaxColumnWidth))
}

// Workbook is an opened xlsx document.
type Workbook struct {
	f *excelize.File
}

// Open parses an xlsx document.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &Workbook{f: f}, nil
}

// OpenBytes parses an xlsx document held in memory.
func OpenBytes(data []byte) (*Workbook, error) {
	return Open(bytes.NewReader(data))
}

// Close releases the document.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// FindSheet resolves a sheet by name, preferring an exact match and falling
// back to a case-insensitive one.
func (w *Workbook) FindSheet(name string) (string, bool) {
	names := w.SheetNames()
	for _, n := range names {
		if n == name {
			return n, true
		}
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// ReadTable reads a sheet as raw cell text. The first row is the header,
// with surrounding whitespace trimmed. The table is as wide as its longest
// non-blank row: a data cell right of the last named column gets an empty
// header. Blank rows are skipped and short rows are padded with empty cells.
func (w *Workbook) ReadTable(sheet string) (*Table, error) {
	rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	t := &Table{Name: sheet, Header: []string{}}
	if len(rows) == 0 {
		return t, nil
	}

	width := len(rows[0])
	for _, row := range rows[1:] {
		if !isBlank(row) {
			width = max(width, len(row))
		}
	}

	for _, h := range rows[0] {
		t.Header = append(t.Header, strings.TrimSpace(h))
	}
	for len(t.Header) < width {
		t.Header = append(t.Header, "")
	}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]string, width)
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
		t.RowNumbers = append(t.RowNumbers, i+2)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
