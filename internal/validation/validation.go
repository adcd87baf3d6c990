// Package validation holds the pure field checks every entity constructor and
// setter funnels through. The functions have no side effects and no storage
// awareness; they return taxonomy errors from apperr.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/montluxe/storefront/internal/apperr"
)

var hundred = decimal.NewFromInt(100)

// NotBlank returns the trimmed value, or a ValidationError when the value is
// empty or whitespace-only.
func NotBlank(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperr.Validation(field, apperr.ReasonBlank)
	}
	return trimmed, nil
}

// IntID checks a foreign-key candidate: it must be a positive integer.
func IntID(value int64, field string) error {
	if value < 1 {
		return apperr.Validation(field, apperr.ReasonNonPositive)
	}
	return nil
}

// PositiveInt rejects values <= 0.
func PositiveInt(value int64, field string) error {
	if value <= 0 {
		return apperr.Validation(field, apperr.ReasonNonPositive)
	}
	return nil
}

// NonNegativeInt rejects values < 0. Zero is allowed, e.g. a product that is
// temporarily out of stock.
func NonNegativeInt(value int64, field string) error {
	if value < 0 {
		return apperr.Validation(field, apperr.ReasonNegative)
	}
	return nil
}

// DollarToMinorUnits converts a decimal dollar amount into integer cents with
// standard 2-decimal round-to-nearest. Non-positive amounts are rejected so a
// stored price is always > 0.
func DollarToMinorUnits(amount decimal.Decimal, field string) (int64, error) {
	if amount.Sign() <= 0 {
		return 0, apperr.Validation(field, apperr.ReasonNonPositive)
	}
	return amount.Mul(hundred).Round(0).IntPart(), nil
}

// MinorUnitsToDollar is the display-side inverse of DollarToMinorUnits. The
// core stores cents; converting back to dollars is the caller's concern.
func MinorUnitsToDollar(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}
