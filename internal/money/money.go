// Package money validates currency codes and renders amounts for display.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "XOF"

// Offered is the short list proposed at setup. Any ISO 4217 code is accepted.
var Offered = []string{"XOF", "EUR", "USD", "XAF"}

var ErrUnknownCurrency = errors.New("unknown currency")

// DefaultLanguage is used by Format.
var DefaultLanguage = language.French

// ParseCurrency normalizes code and checks it is a known ISO 4217 currency.
func ParseCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownCurrency, code)
	}

	return unit.String(), nil
}

// Format renders amount rounded to a whole number, grouped for DefaultLanguage,
// followed by the currency code.
func Format(amount decimal.Decimal, code string) string {
	return FormatIn(DefaultLanguage, amount, code)
}

func FormatIn(tag language.Tag, amount decimal.Decimal, code string) string {
	p := message.NewPrinter(tag)
	whole := amount.Round(0).IntPart()

	return p.Sprintf("%v %s", number.Decimal(whole, number.MaxFractionDigits(0)), code)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(pct decimal.Decimal) string {
	return FormatPercentIn(DefaultLanguage, pct)
}

func FormatPercentIn(tag language.Tag, pct decimal.Decimal) string {
	p := message.NewPrinter(tag)
	v := pct.Round(1).InexactFloat64()

	return p.Sprintf("%v %%", number.Decimal(v, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}
