// Package errors provides the application error taxonomy.
// Services return *AppError so handlers can produce consistent JSON error
// bodies that never leak internal details to clients.
package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so sentinels can be compared with errors.Is
// after WithMessage or Wrap produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WrapWithMessage creates a new AppError with a custom message that keeps
// internal as its cause. The cause's text is never sent to clients.
func WrapWithMessage(sentinel *AppError, message string, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// Validation builds a VALIDATION_ERROR with a formatted message.
func Validation(format string, args ...any) *AppError {
	return WithMessage(ErrValidation, fmt.Sprintf(format, args...))
}

// Import builds an IMPORT_ERROR whose message includes the cause and which
// keeps the cause reachable through Unwrap.
func Import(message string, cause error) *AppError {
	if cause != nil {
		message = message + ": " + cause.Error()
	}
	return &AppError{
		Code:       ErrImport.Code,
		Message:    message,
		StatusCode: ErrImport.StatusCode,
		Internal:   cause,
	}
}

// Client errors.
var (
	ErrValidation = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrBadRequest = &AppError{Code: "BAD_REQUEST", Message: "Malformed request", StatusCode: http.StatusBadRequest}
	ErrImport     = &AppError{Code: "IMPORT_ERROR", Message: "Import failed", StatusCode: http.StatusBadRequest}
	ErrNotFound   = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}

	ErrMethodNotAllowed = &AppError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed", StatusCode: http.StatusMethodNotAllowed}
)

// Server errors.
var (
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Ingestion messages.
const (
	MsgCategoryRequired    = "category required"
	MsgSubcategoryRequired = "subcategory required"
	MsgAmountRequired      = "amount required"
	MsgInvalidAmount       = "invalid amount"
	MsgAmountNotPositive   = "amount must be positive"
	MsgAmountTooLarge      = "amount too large"
	MsgUnknownCategory     = "unknown category"
	MsgUnknownSubcategory  = "unknown subcategory"
)

// Import messages.
const (
	MsgCannotOpenFile  = "cannot open file"
	MsgMissingSheet    = "missing required sheet"
	MsgReconcileFailed = "reconciliation failed for sheet"
	MsgNoFile          = "no file provided"
	MsgInvalidFileType = "only Excel files are allowed"
	MsgFileTooLarge    = "file too large"
)

// Body renders the client-facing error envelope. The message is repeated
// under "msg" and "error" for clients of either convention.
func (e *AppError) Body() map[string]interface{} {
	return map[string]interface{}{
		"status": "error",
		"code":   e.Code,
		"msg":    e.Message,
		"error":  e.Message,
	}
}
