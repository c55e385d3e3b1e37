package services

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
)

// categoryService handles read-only queries over the category ledger.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// GetCategorySummary groups every ledger row as category -> subcategory ->
// total and adds the grand total of all rows.
func (s *categoryService) GetCategorySummary(ctx context.Context) (*CategorySummary, error) {
	rows, err := s.orderedTotals(ctx)
	if err != nil {
		return nil, err
	}

	grand := decimal.Zero
	for _, row := range rows {
		grand = grand.Add(row.TotalSum)
	}

	return &CategorySummary{
		Categories: groupTotals(rows),
		GrandTotal: grand.InexactFloat64(),
	}, nil
}

// GetCategoryCatalog returns the known (category, subcategory) pairs.
func (s *categoryService) GetCategoryCatalog(ctx context.Context) (Catalog, error) {
	return CurrentCatalog(ctx, s.db)
}

// ExportSummary returns the nested totals without the grand total envelope.
func (s *categoryService) ExportSummary(ctx context.Context) (map[string]map[string]float64, error) {
	rows, err := s.orderedTotals(ctx)
	if err != nil {
		return nil, err
	}
	return groupTotals(rows), nil
}

func (s *categoryService) orderedTotals(ctx context.Context) ([]models.CategoryTotal, error) {
	var rows []models.CategoryTotal
	if err := s.db.WithContext(ctx).
		Order("category ASC").
		Order("subcategory ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

func groupTotals(rows []models.CategoryTotal) map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for _, row := range rows {
		subs, ok := out[row.Category]
		if !ok {
			subs = make(map[string]float64)
			out[row.Category] = subs
		}
		subs[row.Subcategory] = row.TotalSum.InexactFloat64()
	}
	return out
}

// CurrentCatalog reads the distinct (category, subcategory) pairs from the
// store. It is evaluated on every call; nothing is cached between requests.
func CurrentCatalog(ctx context.Context, db *gorm.DB) (Catalog, error) {
	var pairs []models.CategoryKey
	if err := db.WithContext(ctx).
		Model(&models.CategoryTotal{}).
		Distinct("category", "subcategory").
		Order("category ASC").
		Order("subcategory ASC").
		Scan(&pairs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	catalog := make(Catalog)
	for _, p := range pairs {
		catalog[p.Category] = append(catalog[p.Category], p.Subcategory)
	}
	return catalog, nil
}

// Categories lists the catalog's categories.
func (c Catalog) Categories() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}

// Has reports whether subcategory is listed under category.
func (c Catalog) Has(category, subcategory string) bool {
	for _, sub := range c[category] {
		if sub == subcategory {
			return true
		}
	}
	return false
}

// closestMatch returns the candidate nearest to name by edit distance,
// ignoring case, if it is close enough to be a plausible typo.
func closestMatch(name string, candidates []string) (string, bool) {
	needle := strings.ToLower(name)
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if bestDist < 0 || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(1, len(best)/3) {
		return "", false
	}
	return best, true
}
