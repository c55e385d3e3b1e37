package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/pagination"
	"budgetbook/internal/validator"
)

// AddTransactionInput carries the raw ingestion fields. Field order is the
// order in which rules are reported.
type AddTransactionInput struct {
	Category    string `validate:"required"`
	Subcategory string `validate:"required"`
	Amount      string `validate:"required,decimal_text,positive_decimal,max_amount"`
}

// transactionService handles transaction-related business logic.
type transactionService struct {
	db       *gorm.DB
	validate *govalidator.Validate
	now      func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{
		db:       db,
		validate: validator.New(),
		now:      time.Now,
	}
}

// AddTransaction validates the input against field rules and the current
// catalog, then appends a transaction stamped with the server time.
func (s *transactionService) AddTransaction(ctx context.Context, category, subcategory, amountText string) (*models.TransactionEntry, error) {
	input := AddTransactionInput{Category: category, Subcategory: subcategory, Amount: amountText}
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	amount, err := validator.ParseDecimal(amountText)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, apperrors.MsgInvalidAmount)
	}

	catalog, err := CurrentCatalog(ctx, s.db)
	if err != nil {
		return nil, err
	}

	subcategories, ok := catalog[category]
	if !ok {
		return nil, unknownError(apperrors.MsgUnknownCategory, category, catalog.Categories())
	}
	if !catalog.Has(category, subcategory) {
		return nil, unknownError(apperrors.MsgUnknownSubcategory, subcategory, subcategories)
	}

	entry := &models.TransactionEntry{
		DateTime:    models.Naive(s.now()),
		Category:    category,
		Subcategory: subcategory,
		Amount:      amount.Round(2),
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// ListTransactions returns one page of transactions, most recent first. An
// out-of-range page is clamped to the nearest valid one.
func (s *transactionService) ListTransactions(ctx context.Context, page pagination.PageRequest) (*TransactionPage, error) {
	base := s.db.WithContext(ctx).Model(&models.TransactionEntry{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	page.Clamp(count)

	var entries []models.TransactionEntry
	if err := s.db.WithContext(ctx).
		Order("datetime DESC").
		Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entries == nil {
		entries = []models.TransactionEntry{}
	}

	return &TransactionPage{
		Page:         pagination.NewPage(page, count),
		Transactions: entries,
	}, nil
}

// requiredMessages is keyed by AddTransactionInput field name.
var requiredMessages = map[string]string{
	"Category":    apperrors.MsgCategoryRequired,
	"Subcategory": apperrors.MsgSubcategoryRequired,
	"Amount":      apperrors.MsgAmountRequired,
}

// validationError maps the first failed rule to its client message.
func validationError(err error) error {
	var verrs govalidator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = requiredMessages[fe.Field()]
	case "decimal_text":
		msg = apperrors.MsgInvalidAmount
	case "positive_decimal":
		msg = apperrors.MsgAmountNotPositive
	case "max_amount":
		msg = fmt.Sprintf("%s (maximum %s)", apperrors.MsgAmountTooLarge, validator.MaxAmount.StringFixed(2))
	default:
		msg = fmt.Sprintf("invalid %s", strings.ToLower(fe.Field()))
	}
	return apperrors.WithMessage(apperrors.ErrValidation, msg)
}

func unknownError(msg, value string, candidates []string) error {
	if hint, ok := closestMatch(value, candidates); ok {
		return apperrors.Validation("%s %q (did you mean %q?)", msg, value, hint)
	}
	return apperrors.Validation("%s %q", msg, value)
}
