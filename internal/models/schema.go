package models

// ImportSchema describes one importable entity: the sheet it lives on and the
// columns a workbook must carry for it, identity excluded.
type ImportSchema struct {
	Entity string
	Sheet  string
	Fields []string
}

// Entity names, which double as sheet names.
const (
	EntityCategory    = "Category"
	EntityTransaction = "Transaction"
)

// ImportSchemas lists the importable entities in reconciliation order. The
// field lists must match the GORM columns of the models (see schema_test.go).
var ImportSchemas = []ImportSchema{
	{
		Entity: EntityCategory,
		Sheet:  EntityCategory,
		Fields: []string{"category", "subcategory", "total_sum"},
	},
	{
		Entity: EntityTransaction,
		Sheet:  EntityTransaction,
		Fields: []string{"datetime", "category", "subcategory", "amount"},
	},
}

// ExportColumns returns the sheet header for an entity: identity first, then
// its fields.
func (s ImportSchema) ExportColumns() []string {
	return append([]string{IdentityColumn}, s.Fields...)
}
