package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/spreadsheet"
	"budgetbook/internal/validator"
)

// maxTextLength matches the size of the text columns.
const maxTextLength = 100

// dateTimeLayouts are tried in order for datetime cells. Fractional seconds
// are accepted by every layout that ends in seconds.
var dateTimeLayouts = []string{
	models.DateTimeLayout,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// reconcileCategories makes the categories table equal to the sheet, keyed
// by (category, subcategory).
func reconcileCategories(tx *gorm.DB, table *spreadsheet.Table, batchSize int) (EntityResult, error) {
	res := EntityResult{Total: len(table.Rows)}
	cells := newCellReader(table)

	rows := make([]models.CategoryTotal, 0, len(table.Rows))
	keep := make(map[models.CategoryKey]struct{}, len(table.Rows))
	for i := range table.Rows {
		category, err := cells.text(i, "category", true)
		if err != nil {
			return res, err
		}
		subcategory, err := cells.text(i, "subcategory", true)
		if err != nil {
			return res, err
		}
		total, err := cells.decimal(i, "total_sum", false)
		if err != nil {
			return res, err
		}

		row := models.CategoryTotal{Category: category, Subcategory: subcategory, TotalSum: total}
		rows = append(rows, row)
		keep[row.Key()] = struct{}{}
	}

	// Delete phase: stored pairs absent from the sheet.
	var doomed []uint
	var batch []models.CategoryTotal
	err := tx.Select("id", "category", "subcategory").
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			for _, c := range batch {
				if _, ok := keep[c.Key()]; !ok {
					doomed = append(doomed, c.ID)
				}
			}
			return nil
		}).Error
	if err != nil {
		return res, err
	}
	if res.Deleted, err = deleteByID(tx, &models.CategoryTotal{}, doomed, batchSize); err != nil {
		return res, err
	}

	// Upsert phase.
	var remaining []models.CategoryTotal
	if err := tx.Find(&remaining).Error; err != nil {
		return res, err
	}
	existing := make(map[models.CategoryKey]*models.CategoryTotal, len(remaining))
	for i := range remaining {
		existing[remaining[i].Key()] = &remaining[i]
	}

	for _, row := range rows {
		cur, ok := existing[row.Key()]
		if !ok {
			created := row
			if err := tx.Create(&created).Error; err != nil {
				return res, err
			}
			existing[created.Key()] = &created
			res.Created++
			continue
		}
		if cur.TotalSum.Equal(row.TotalSum) {
			res.Unchanged++
			continue
		}
		if err := tx.Model(cur).Update("total_sum", row.TotalSum).Error; err != nil {
			return res, err
		}
		cur.TotalSum = row.TotalSum
		res.Updated++
	}
	return res, nil
}

// reconcileTransactions makes the transactions table equal to the sheet.
// A transaction's natural key is the whole row, so rows are matched as a
// multiset: each sheet row pairs with at most one stored row.
func reconcileTransactions(tx *gorm.DB, table *spreadsheet.Table, batchSize int) (EntityResult, error) {
	res := EntityResult{Total: len(table.Rows)}
	cells := newCellReader(table)

	rows := make([]models.TransactionEntry, 0, len(table.Rows))
	wanted := make(map[models.TransactionKey]int, len(table.Rows))
	for i := range table.Rows {
		at, err := cells.dateTime(i, "datetime")
		if err != nil {
			return res, err
		}
		category, err := cells.text(i, "category", false)
		if err != nil {
			return res, err
		}
		subcategory, err := cells.text(i, "subcategory", false)
		if err != nil {
			return res, err
		}
		amount, err := cells.decimal(i, "amount", true)
		if err != nil {
			return res, err
		}

		row := models.TransactionEntry{DateTime: at, Category: category, Subcategory: subcategory, Amount: amount}
		rows = append(rows, row)
		wanted[row.Key()]++
	}

	// Delete phase: stored rows left over once every sheet row has claimed
	// its match.
	var doomed []uint
	var batch []models.TransactionEntry
	err := tx.FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		for _, t := range batch {
			key := t.Key()
			if wanted[key] > 0 {
				wanted[key]--
				res.Unchanged++
				continue
			}
			doomed = append(doomed, t.ID)
		}
		return nil
	}).Error
	if err != nil {
		return res, err
	}
	if res.Deleted, err = deleteByID(tx, &models.TransactionEntry{}, doomed, batchSize); err != nil {
		return res, err
	}

	// Insert phase: whatever the stored rows could not satisfy.
	var fresh []models.TransactionEntry
	for _, row := range rows {
		key := row.Key()
		if wanted[key] > 0 {
			wanted[key]--
			fresh = append(fresh, row)
		}
	}
	if len(fresh) > 0 {
		if err := tx.CreateInBatches(&fresh, batchSize).Error; err != nil {
			return res, err
		}
	}
	res.Created = len(fresh)
	return res, nil
}

// deleteByID removes the given rows, at most batchSize ids per statement.
func deleteByID(tx *gorm.DB, model interface{}, ids []uint, batchSize int) (int, error) {
	deleted := 0
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		result := tx.Where("id IN ?", ids[start:end]).Delete(model)
		if result.Error != nil {
			return deleted, result.Error
		}
		deleted += int(result.RowsAffected)
	}
	return deleted, nil
}

// cellReader reads typed values out of a validated table by column name.
type cellReader struct {
	table *spreadsheet.Table
	index map[string]int
}

func newCellReader(table *spreadsheet.Table) *cellReader {
	index := make(map[string]int, len(table.Header))
	for i, h := range table.Header {
		index[strings.ToLower(h)] = i
	}
	return &cellReader{table: table, index: index}
}

func (r *cellReader) raw(row int, col string) string {
	return strings.TrimSpace(r.table.Rows[row][r.index[col]])
}

func (r *cellReader) fail(row int, col, reason string, cause error) error {
	msg := fmt.Sprintf("sheet %q row %d column %q: %s", r.table.Name, r.table.RowNumbers[row], col, reason)
	return apperrors.Import(msg, cause)
}

func (r *cellReader) text(row int, col string, required bool) (string, error) {
	v := r.raw(row, col)
	if required && v == "" {
		return "", r.fail(row, col, "value required", nil)
	}
	if utf8.RuneCountInString(v) > maxTextLength {
		return "", r.fail(row, col, fmt.Sprintf("longer than %d characters", maxTextLength), nil)
	}
	return v, nil
}

// decimal parses a money cell rounded to two places. A blank optional cell
// is zero.
func (r *cellReader) decimal(row int, col string, required bool) (decimal.Decimal, error) {
	v := r.raw(row, col)
	if v == "" {
		if required {
			return decimal.Decimal{}, r.fail(row, col, "value required", nil)
		}
		return decimal.Zero, nil
	}
	d, err := validator.ParseDecimal(v)
	if err != nil {
		return decimal.Decimal{}, r.fail(row, col, "invalid decimal", err)
	}
	d = d.Round(2)
	if d.Abs().GreaterThan(validator.MaxAmount) {
		return decimal.Decimal{}, r.fail(row, col, "exceeds "+validator.MaxAmount.StringFixed(2), nil)
	}
	return d, nil
}

// dateTime parses a datetime cell as text or as an Excel serial date and
// drops any zone offset.
func (r *cellReader) dateTime(row int, col string) (time.Time, error) {
	v := r.raw(row, col)
	if v == "" {
		return time.Time{}, r.fail(row, col, "value required", nil)
	}
	if t, ok := parseDateTime(v); ok {
		return t, nil
	}
	return time.Time{}, r.fail(row, col, fmt.Sprintf("invalid datetime %q", v), nil)
}

func parseDateTime(v string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return models.Naive(t), true
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return models.Naive(t), true
		}
	}
	return time.Time{}, false
}
