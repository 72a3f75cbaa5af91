package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// MethodShare is one row of the payment-method breakdown.
type MethodShare struct {
	Method     ledger.PaymentMethod
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// PaymentMethodBreakdown totals the payment lines per method. It always returns
// one row per method, in ledger.PaymentMethods order, zero-filled.
func PaymentMethodBreakdown(revenues []ledger.DailyRevenue) ([]MethodShare, error) {
	totals, grand, err := methodTotals(revenues)
	if err != nil {
		return nil, err
	}

	out := make([]MethodShare, len(ledger.PaymentMethods))
	for i, m := range ledger.PaymentMethods {
		out[i] = MethodShare{
			Method:     m,
			Amount:     totals[m],
			Percentage: percentOf(totals[m], grand),
		}
	}

	return out, nil
}

func methodTotals(revenues []ledger.DailyRevenue) (map[ledger.PaymentMethod]decimal.Decimal, decimal.Decimal, error) {
	totals := make(map[ledger.PaymentMethod]decimal.Decimal, len(ledger.PaymentMethods))
	for _, m := range ledger.PaymentMethods {
		totals[m] = decimal.Zero
	}

	grand := decimal.Zero

	for _, r := range revenues {
		for _, pm := range r.PaymentMethods {
			if !pm.Method.Valid() {
				return nil, decimal.Zero, fmt.Errorf("%w %q in revenue %s", ErrUnknownPaymentMethod, pm.Method, r.ID)
			}

			totals[pm.Method] = totals[pm.Method].Add(pm.Amount)
			grand = grand.Add(pm.Amount)
		}
	}

	return totals, grand, nil
}
