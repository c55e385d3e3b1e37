package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/logger"
	"budgetbook/internal/models"
	"budgetbook/internal/spreadsheet"
)

// DefaultImportBatchSize bounds the ids per DELETE statement during import.
const DefaultImportBatchSize = 1000

// workbookService exports the ledger to xlsx and reconciles uploaded
// workbooks against it.
type workbookService struct {
	db        *gorm.DB
	batchSize int
	log       *zap.SugaredLogger
}

// NewWorkbookService creates a new WorkbookServicer. A batchSize below 1
// selects DefaultImportBatchSize.
func NewWorkbookService(db *gorm.DB, batchSize int) WorkbookServicer {
	if batchSize < 1 {
		batchSize = DefaultImportBatchSize
	}
	return &workbookService{db: db, batchSize: batchSize, log: logger.Named("workbook")}
}

// ExportWorkbook writes one sheet per non-empty table.
func (s *workbookService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	var (
		categories   []models.CategoryTotal
		transactions []models.TransactionEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Order("id ASC").Find(&categories).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Order("id ASC").Find(&transactions).Error
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sheets []spreadsheet.Sheet
	for _, is := range models.ImportSchemas {
		sheet := spreadsheet.Sheet{Name: is.Sheet, Header: is.ExportColumns()}
		switch is.Entity {
		case models.EntityCategory:
			for _, c := range categories {
				sheet.Rows = append(sheet.Rows, []any{c.ID, c.Category, c.Subcategory, c.TotalSum.InexactFloat64()})
			}
		case models.EntityTransaction:
			for _, t := range transactions {
				sheet.Rows = append(sheet.Rows, []any{t.ID, t.DateTime.Format(models.DateTimeLayout), t.Category, t.Subcategory, t.Amount.InexactFloat64()})
			}
		}
		if len(sheet.Rows) > 0 {
			sheets = append(sheets, sheet)
		}
	}

	data, err := spreadsheet.Write(sheets)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, nil
}

// importTable is a sheet whose shape matched its schema.
type importTable struct {
	schema models.ImportSchema
	table  *spreadsheet.Table
}

// ImportWorkbook replaces the ledger and transaction log with the contents
// of the workbook. Everything happens in one database transaction; on any
// error nothing is changed.
func (s *workbookService) ImportWorkbook(ctx context.Context, data []byte) (*ImportResult, error) {
	wb, err := spreadsheet.OpenBytes(data)
	if err != nil {
		return nil, apperrors.Import(apperrors.MsgCannotOpenFile, err)
	}
	defer wb.Close()

	tables, err := readImportTables(wb)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		SheetsImported: make([]string, 0, len(tables)),
		RowCounts:      make(map[string]int, len(tables)),
		Results:        make(map[string]EntityResult, len(tables)),
	}

	var current string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range tables {
			current = it.table.Name
			var (
				res    EntityResult
				recErr error
			)
			switch it.schema.Entity {
			case models.EntityCategory:
				res, recErr = reconcileCategories(tx, it.table, s.batchSize)
			case models.EntityTransaction:
				res, recErr = reconcileTransactions(tx, it.table, s.batchSize)
			default:
				recErr = fmt.Errorf("no reconciler for entity %q", it.schema.Entity)
			}
			if recErr != nil {
				return recErr
			}
			result.Results[it.schema.Entity] = res
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.WrapWithMessage(apperrors.ErrImport, fmt.Sprintf("%s %q", apperrors.MsgReconcileFailed, current), err)
	}

	for _, it := range tables {
		result.SheetsImported = append(result.SheetsImported, it.table.Name)
		result.RowCounts[it.table.Name] = len(it.table.Rows)
		s.log.Infow("sheet imported",
			"sheet", it.table.Name,
			"created", result.Results[it.schema.Entity].Created,
			"updated", result.Results[it.schema.Entity].Updated,
			"deleted", result.Results[it.schema.Entity].Deleted,
			"unchanged", result.Results[it.schema.Entity].Unchanged,
		)
	}
	return result, nil
}

// readImportTables locates every required sheet and checks its columns.
func readImportTables(wb *spreadsheet.Workbook) ([]importTable, error) {
	tables := make([]importTable, 0, len(models.ImportSchemas))
	for _, is := range models.ImportSchemas {
		name, ok := wb.FindSheet(is.Sheet)
		if !ok {
			return nil, apperrors.Import(fmt.Sprintf("%s: %s", apperrors.MsgMissingSheet, is.Sheet), nil)
		}

		table, err := wb.ReadTable(name)
		if err != nil {
			return nil, apperrors.Import(fmt.Sprintf("cannot read sheet %q", name), err)
		}
		if err := validateColumns(name, table.Header, is.Fields); err != nil {
			return nil, err
		}
		tables = append(tables, importTable{schema: is, table: table})
	}
	return tables, nil
}

// validateColumns requires the sheet's lower-cased header set, identity
// aside, to equal the expected field set exactly.
func validateColumns(sheet string, header, expected []string) error {
	want := make(map[string]bool, len(expected))
	for _, f := range expected {
		want[strings.ToLower(f)] = true
	}

	seen := make(map[string]bool, len(header))
	var extra []string
	for i, h := range header {
		col := strings.ToLower(h)
		if col == "" {
			extra = append(extra, fmt.Sprintf("unnamed: %d", i))
			continue
		}
		if seen[col] {
			extra = append(extra, col+" (duplicate)")
			continue
		}
		seen[col] = true
		if col != models.IdentityColumn && !want[col] {
			extra = append(extra, col)
		}
	}

	var missing []string
	for col := range want {
		if !seen[col] {
			missing = append(missing, col)
		}
	}

	if len(extra) == 0 && len(missing) == 0 {
		return nil
	}

	sort.Strings(extra)
	sort.Strings(missing)
	msg := fmt.Sprintf("sheet %q column validation failed", sheet)
	if len(extra) > 0 {
		msg += fmt.Sprintf("; extra columns: [%s]", strings.Join(extra, ", "))
	}
	if len(missing) > 0 {
		msg += fmt.Sprintf("; missing columns: [%s]", strings.Join(missing, ", "))
	}
	return apperrors.Import(msg, nil)
}
