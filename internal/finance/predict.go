package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type PredictionType string

const (
	PredictionWeek  PredictionType = "week"
	PredictionMonth PredictionType = "month"
)

const (
	weekLookbackDays  = 7
	monthLookbackDays = 30
)

type MethodPrediction struct {
	Method          ledger.PaymentMethod
	PredictedAmount decimal.Decimal
}

// Prediction extrapolates the recent daily average over the days left in the
// current week or month.
type Prediction struct {
	Type                         PredictionType
	RemainingDays                int
	PredictedRevenue             decimal.Decimal
	PredictedExpenses            decimal.Decimal
	PredictedNetMargin           decimal.Decimal
	PredictedNetMarginPercentage decimal.Decimal
	PaymentMethods               []MethodPrediction
}

// PredictWeek projects the rest of the current week from the last 7 days.
// Remaining days are counted with Sunday as day 0, so a Sunday projects a full 7 days.
func PredictWeek(revenues []ledger.DailyRevenue, expenses []ledger.DailyExpense, now time.Time) (Prediction, error) {
	remaining := 7 - int(now.Weekday())
	return predict(PredictionWeek, revenues, expenses, now, weekLookbackDays, remaining)
}

// PredictMonth projects the rest of the current month from the last 30 days.
func PredictMonth(revenues []ledger.DailyRevenue, expenses []ledger.DailyExpense, now time.Time) (Prediction, error) {
	remaining := daysInMonth(now) - now.Day()
	return predict(PredictionMonth, revenues, expenses, now, monthLookbackDays, remaining)
}

func predict(
	typ PredictionType,
	revenues []ledger.DailyRevenue,
	expenses []ledger.DailyExpense,
	now time.Time,
	lookback, remaining int,
) (Prediction, error) {
	since := now.AddDate(0, 0, -lookback)

	recentRevenues := window(revenues, since, lookback, func(r ledger.DailyRevenue) time.Time { return r.Date })
	recentExpenses := window(expenses, since, lookback, func(e ledger.DailyExpense) time.Time { return e.Date })

	days := decimal.NewFromInt(int64(remaining))
	predictedRevenue := average(sumRevenues(recentRevenues), len(recentRevenues)).Mul(days)
	predictedExpenses := average(sumExpenses(recentExpenses), len(recentExpenses)).Mul(days)
	predictedMargin := predictedRevenue.Sub(predictedExpenses)

	totals, grand, err := methodTotals(recentRevenues)
	if err != nil {
		return Prediction{}, err
	}

	methods := make([]MethodPrediction, len(ledger.PaymentMethods))
	for i, m := range ledger.PaymentMethods {
		amount := decimal.Zero
		if grand.IsPositive() {
			amount = totals[m].Div(grand).Mul(predictedRevenue)
		}

		methods[i] = MethodPrediction{Method: m, PredictedAmount: amount}
	}

	return Prediction{
		Type:                         typ,
		RemainingDays:                remaining,
		PredictedRevenue:             predictedRevenue,
		PredictedExpenses:            predictedExpenses,
		PredictedNetMargin:           predictedMargin,
		PredictedNetMarginPercentage: percentOf(predictedMargin, predictedRevenue),
		PaymentMethods:               methods,
	}, nil
}

// window keeps the records dated at or after since, then the first limit of
// them in input order. The input order is not changed.
func window[T any](items []T, since time.Time, limit int, date func(T) time.Time) []T {
	out := make([]T, 0, limit)

	for _, it := range items {
		if len(out) == limit {
			break
		}

		if !date(it).Before(since) {
			out = append(out, it)
		}
	}

	return out
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}

	return total.Div(decimal.NewFromInt(int64(n)))
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
