package models

import "github.com/shopspring/decimal"

// CategoryTotal is one (category, subcategory) pair of the ledger together
// with its running total.
type CategoryTotal struct {
	Base
	Category    string          `gorm:"size:100;not null;uniqueIndex:idx_category_subcategory,priority:1" json:"category"`
	Subcategory string          `gorm:"size:100;not null;uniqueIndex:idx_category_subcategory,priority:2" json:"subcategory"`
	TotalSum    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_sum"`
}

// TableName overrides the default GORM table name.
func (CategoryTotal) TableName() string {
	return "categories"
}

// CategoryKey is the natural key of a CategoryTotal.
type CategoryKey struct {
	Category    string
	Subcategory string
}

// Key returns the natural key of the row.
func (c CategoryTotal) Key() CategoryKey {
	return CategoryKey{Category: c.Category, Subcategory: c.Subcategory}
}
