package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateTimeLayout is the naive rendering used by exports and natural keys.
const DateTimeLayout = "2006-01-02 15:04:05"

// TransactionEntry is a dated, categorized monetary entry.
type TransactionEntry struct {
	Base
	DateTime    time.Time       `gorm:"column:datetime;not null;index:idx_transactions_datetime" json:"datetime"`
	Category    string          `gorm:"size:100;not null" json:"category"`
	Subcategory string          `gorm:"size:100;not null" json:"subcategory"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
}

// TableName overrides the default GORM table name.
func (TransactionEntry) TableName() string {
	return "transactions"
}

// TransactionKey is the natural key of a TransactionEntry: the whole row at
// the precision a spreadsheet round trip preserves.
type TransactionKey struct {
	DateTime    string
	Category    string
	Subcategory string
	Amount      string
}

// Key returns the natural key of the row.
func (t TransactionEntry) Key() TransactionKey {
	return TransactionKey{
		DateTime:    t.DateTime.Format(DateTimeLayout),
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Amount:      t.Amount.StringFixed(2),
	}
}
