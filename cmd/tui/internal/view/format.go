package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/money"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders amount in the restaurant's currency, without decimals.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return money.Format(amount, currency)
}

func FormatPercent(pct decimal.Decimal) string {
	return money.FormatPercent(pct)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseAmount reads a form amount. Blank means zero; spaces used as thousands
// separators and a decimal comma are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("montant invalide")
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("le montant ne peut pas être négatif")
	}

	return d, nil
}

func validateAmount(s string) error {
	_, err := ParseAmount(s)
	return err
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("date invalide, format AAAA-MM-JJ")
	}

	return nil
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
