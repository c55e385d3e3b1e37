package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
	"budgetbook/internal/services"
)

// TransactionHandler handles transaction ingestion and listing.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
	defaultPerPage     int
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer, defaultPerPage int) *TransactionHandler {
	if defaultPerPage < 1 {
		defaultPerPage = 5
	}
	return &TransactionHandler{
		transactionService: transactionService,
		auditService:       auditService,
		defaultPerPage:     defaultPerPage,
	}
}

// AmountText is an amount as the client sent it. Clients send either a JSON
// string or a JSON number; both are kept as their literal text so no
// precision is lost before decimal parsing.
type AmountText string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AmountText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountText(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("amount must be a string or a number")
	default:
		*a = AmountText(data)
	}
	return nil
}

// AddTransactionRequest represents the request payload for adding a transaction
type AddTransactionRequest struct {
	Category    string     `json:"category" example:"Food"`
	Subcategory string     `json:"subcategory" example:"Groceries"`
	Amount      AmountText `json:"amount" swaggertype:"string" example:"12.50"`
}

// TransactionResponse represents a transaction in a response
type TransactionResponse struct {
	ID          uint   `json:"id"`
	DateTime    string `json:"datetime" example:"2024-05-10T14:30:00.123456"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Amount      string `json:"amount" example:"12.50"`
}

// AddTransactionResponse is the ingestion success envelope
type AddTransactionResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransactionListResponse is one page of the transaction log
type TransactionListResponse struct {
	pagination.Page
	Transactions []TransactionResponse `json:"transactions"`
}

// isoLayout renders naive timestamps the way ISO 8601 clients expect:
// microseconds only when present.
const (
	isoLayout      = "2006-01-02T15:04:05"
	isoMicroLayout = "2006-01-02T15:04:05.000000"
)

func formatISO(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format(isoLayout)
	}
	return t.Format(isoMicroLayout)
}

func toTransactionResponse(t *models.TransactionEntry) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		DateTime:    formatISO(t.DateTime),
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Amount:      t.Amount.StringFixed(2),
	}
}

// AddTransaction handles the creation of a new transaction
// @Summary     Add a transaction
// @Description Validate against the category catalog and store a transaction stamped with the server time
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body AddTransactionRequest true "Transaction details"
// @Success     201 {object} AddTransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-add [post]
func (h *TransactionHandler) AddTransaction(c *gin.Context) {
	var req AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrBadRequest, "invalid JSON data"))
		return
	}

	transaction, err := h.transactionService.AddTransaction(
		c.Request.Context(),
		req.Category,
		req.Subcategory,
		string(req.Amount),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{
			"category":    transaction.Category,
			"subcategory": transaction.Subcategory,
			"amount":      transaction.Amount.StringFixed(2),
		})

	c.JSON(http.StatusCreated, AddTransactionResponse{
		Success:     true,
		Message:     "Transaction added successfully",
		Transaction: toTransactionResponse(transaction),
	})
}

// ListTransactions returns a page of transactions, most recent first
// @Summary     List transactions
// @Description Paginated transaction log. Out-of-range pages are clamped.
// @Tags        transactions
// @Produce     json
// @Param       page     query int false "Page number" default(1)
// @Param       per_page query int false "Items per page" default(5)
// @Success     200 {object} TransactionListResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/ [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	req := pagination.ParsePageRequest(c.Query("page"), c.Query("per_page"), h.defaultPerPage)

	page, err := h.transactionService.ListTransactions(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]TransactionResponse, 0, len(page.Transactions))
	for i := range page.Transactions {
		items = append(items, toTransactionResponse(&page.Transactions[i]))
	}
	c.IndentedJSON(http.StatusOK, TransactionListResponse{Page: page.Page, Transactions: items})
}
