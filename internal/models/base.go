package models

import "time"

// Base contains the store-assigned identity shared by all tables.
type Base struct {
	ID uint `gorm:"primaryKey" json:"id"`
}

// IdentityColumn is the column name of Base.ID.
const IdentityColumn = "id"

// Naive strips zone information from t, keeping its wall clock, and truncates
// it to microsecond precision. Stored timestamps are always naive.
func Naive(t time.Time) time.Time {
	t = t.Truncate(time.Microsecond)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
