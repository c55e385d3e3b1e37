package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/services"
)

const (
	exportFilename = "budget_data_export.xlsx"
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// allowedImportExtensions lists the upload extensions accepted for import.
// Legacy .xls passes this check but is rejected by the xlsx parser.
var allowedImportExtensions = []string{".xlsx", ".xls"}

// WorkbookHandler serves spreadsheet export and import.
type WorkbookHandler struct {
	workbookService services.WorkbookServicer
	auditService    services.AuditServicer
	maxUploadBytes  int64
}

// NewWorkbookHandler creates a new WorkbookHandler. A maxUploadBytes below 1
// disables the size check.
func NewWorkbookHandler(workbookService services.WorkbookServicer, auditService services.AuditServicer, maxUploadBytes int64) *WorkbookHandler {
	return &WorkbookHandler{
		workbookService: workbookService,
		auditService:    auditService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// ImportResponse is the import success envelope
type ImportResponse struct {
	Status string `json:"status" example:"ok"`
	Msg    string `json:"msg" example:"Import successful"`
	services.ImportResult
}

// ExportWorkbook downloads the ledger and transaction log as xlsx
// @Summary     Export workbook
// @Description One sheet per non-empty table with auto-sized columns
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file} file "budget_data_export.xlsx"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /excel-export/ [get]
func (h *WorkbookHandler) ExportWorkbook(c *gin.Context) {
	data, err := h.workbookService.ExportWorkbook(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, xlsxMIME, data)
}

// ImportWorkbook reconciles the store against an uploaded workbook
// @Summary     Import workbook
// @Description Replace categories and transactions with the workbook's contents in one transaction
// @Tags        import
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Workbook with Category and Transaction sheets"
// @Success     200 {object} ImportResponse
// @Failure     400 {object} ErrorResponse "Invalid file or content"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /excel-import/ [post]
func (h *WorkbookHandler) ImportWorkbook(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrBadRequest, apperrors.MsgNoFile))
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrBadRequest, "invalid multipart form"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isAllowedImportExtension(ext) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrBadRequest, apperrors.MsgInvalidFileType))
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrBadRequest, apperrors.MsgFileTooLarge))
		return
	}

	// Failures that are not AppErrors go to the error middleware, which logs
	// them and answers with the generic internal error.
	file, err := header.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.workbookService.ImportWorkbook(c.Request.Context(), data)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			_ = c.Error(err)
			return
		}
		respondWithError(c, appErr)
		return
	}

	h.auditService.Log("IMPORT_WORKBOOK", "workbook", 0, c.ClientIP(),
		map[string]interface{}{"filename": header.Filename, "results": result.Results})

	c.JSON(http.StatusOK, ImportResponse{
		Status:       "ok",
		Msg:          "Import successful",
		ImportResult: *result,
	})
}

func isAllowedImportExtension(ext string) bool {
	for _, allowed := range allowedImportExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
