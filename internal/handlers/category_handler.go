package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetbook/internal/services"
)

// CategoryHandler serves the read-only ledger endpoints.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategorySummary returns the nested ledger totals and their grand total
// @Summary     Category summary
// @Description Totals grouped as category -> subcategory -> total, plus the grand total
// @Tags        categories
// @Produce     json
// @Success     200 {object} services.CategorySummary
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /category-summary/ [get]
func (h *CategoryHandler) GetCategorySummary(c *gin.Context) {
	summary, err := h.categoryService.GetCategorySummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetCategoryCatalog returns the known subcategories of every category
// @Summary     Category catalog
// @Description Known (category, subcategory) pairs as category -> [subcategory]
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string][]string
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /category [get]
func (h *CategoryHandler) GetCategoryCatalog(c *gin.Context) {
	catalog, err := h.categoryService.GetCategoryCatalog(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// ExportSummaryJSON returns the nested totals pretty-printed for typesetting
// @Summary     Summary export
// @Description Indented category -> subcategory -> total map without an envelope
// @Tags        export
// @Produce     json
// @Success     200 {object} map[string]map[string]number
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /typst-json/ [get]
func (h *CategoryHandler) ExportSummaryJSON(c *gin.Context) {
	summary, err := h.categoryService.ExportSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, summary)
}
