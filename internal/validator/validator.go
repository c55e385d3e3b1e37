// Package validator provides the custom validation rules applied to
// service-level input structs.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a numeric(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// New returns a standalone validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerRules(v)
	return v
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("decimal_text", validateDecimalText)
	_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
	_ = v.RegisterValidation("max_amount", validateMaxAmount)
}

// ParseDecimal parses a decimal from user text, ignoring surrounding spaces.
func ParseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

func validateDecimalText(fl validator.FieldLevel) bool {
	_, err := ParseDecimal(fl.Field().String())
	return err == nil
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, err := ParseDecimal(fl.Field().String())
	return err == nil && d.Round(2).IsPositive()
}

func validateMaxAmount(fl validator.FieldLevel) bool {
	d, err := ParseDecimal(fl.Field().String())
	return err == nil && d.Round(2).LessThanOrEqual(MaxAmount)
}
