package finance

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

var hundred = decimal.NewFromInt(100)

// FinancialKPIs are the headline figures of a period.
type FinancialKPIs struct {
	TotalRevenue        decimal.Decimal
	TotalExpenses       decimal.Decimal
	NetMargin           decimal.Decimal
	NetMarginPercentage decimal.Decimal
}

// CalculateKPIs sums TotalAmount over both collections. The margin percentage is
// zero whenever there is no positive revenue.
func CalculateKPIs(revenues []ledger.DailyRevenue, expenses []ledger.DailyExpense) FinancialKPIs {
	totalRevenue := sumRevenues(revenues)
	totalExpenses := sumExpenses(expenses)
	netMargin := totalRevenue.Sub(totalExpenses)

	return FinancialKPIs{
		TotalRevenue:        totalRevenue,
		TotalExpenses:       totalExpenses,
		NetMargin:           netMargin,
		NetMarginPercentage: percentOf(netMargin, totalRevenue),
	}
}

func sumRevenues(revenues []ledger.DailyRevenue) decimal.Decimal {
	total := decimal.Zero
	for _, r := range revenues {
		total = total.Add(r.TotalAmount)
	}

	return total
}

func sumExpenses(expenses []ledger.DailyExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.TotalAmount)
	}

	return total
}

// percentOf returns part/whole*100, or zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}

	return part.Div(whole).Mul(hundred)
}
