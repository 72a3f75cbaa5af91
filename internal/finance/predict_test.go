package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/placebi/internal/finance"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

// Wednesday.
var wednesday = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

func history() ([]ledger.DailyRevenue, []ledger.DailyExpense) {
	revenues := []ledger.DailyRevenue{
		revenue(day(2024, 3, 5), 300, line(ledger.PaymentWave, 200), line(ledger.PaymentCash, 100)),
		revenue(day(2024, 3, 4), 100, line(ledger.PaymentCash, 100)),
		revenue(day(2024, 2, 20), 500, line(ledger.PaymentOrangeMoney, 500)),
		revenue(day(2023, 12, 1), 10000, line(ledger.PaymentWave, 10000)),
	}
	expenses := []ledger.DailyExpense{
		expense(day(2024, 3, 5), 100),
		expense(day(2023, 12, 1), 5000),
	}

	return revenues, expenses
}

func TestPredictWeek(t *testing.T) {
	revenues, expenses := history()

	got, err := finance.PredictWeek(revenues, expenses, wednesday)
	require.NoError(t, err)

	assert.Equal(t, finance.PredictionWeek, got.Type)
	assert.Equal(t, 4, got.RemainingDays)
	assert.Equal(t, "800", got.PredictedRevenue.String())
	assert.Equal(t, "400", got.PredictedExpenses.String())
	assert.Equal(t, "400", got.PredictedNetMargin.String())
	assert.Equal(t, "50", got.PredictedNetMarginPercentage.String())

	require.Len(t, got.PaymentMethods, 3)
	assert.Equal(t, ledger.PaymentWave, got.PaymentMethods[0].Method)
	assert.Equal(t, "400", got.PaymentMethods[0].PredictedAmount.String())
	assert.Equal(t, "0", got.PaymentMethods[1].PredictedAmount.String())
	assert.Equal(t, "400", got.PaymentMethods[2].PredictedAmount.String())
}

func TestPredictMonth(t *testing.T) {
	revenues, expenses := history()

	got, err := finance.PredictMonth(revenues, expenses, wednesday)
	require.NoError(t, err)

	assert.Equal(t, finance.PredictionMonth, got.Type)
	assert.Equal(t, 25, got.RemainingDays)
	assert.Equal(t, "7500", got.PredictedRevenue.String())
	assert.Equal(t, "2500", got.PredictedExpenses.String())
	assert.Equal(t, "5000", got.PredictedNetMargin.String())

	sum := dec(0)
	for _, m := range got.PaymentMethods {
		sum = sum.Add(m.PredictedAmount)
	}

	assert.True(t, sum.Round(6).Equal(got.PredictedRevenue))
}

func TestPredictWeek_TruncatesInInputOrder(t *testing.T) {
	yesterday := day(2024, 3, 5)

	var revenues []ledger.DailyRevenue
	for range 7 {
		revenues = append(revenues, revenue(yesterday, 100))
	}

	revenues = append(revenues, revenue(yesterday, 1000), revenue(yesterday, 1000))

	got, err := finance.PredictWeek(revenues, nil, wednesday)
	require.NoError(t, err)

	assert.Equal(t, "400", got.PredictedRevenue.String())
}

func TestPredictWeek_RemainingDays(t *testing.T) {
	type testCase struct {
		name string
		now  time.Time
		want int
	}

	tests := []testCase{
		{name: "Monday", now: day(2024, 3, 4), want: 6},
		{name: "Saturday", now: day(2024, 3, 9), want: 1},
		{name: "Sunday", now: day(2024, 3, 10), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finance.PredictWeek(nil, nil, tt.now)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.RemainingDays)
		})
	}
}

func TestPredictMonth_RemainingDays(t *testing.T) {
	type testCase struct {
		name string
		now  time.Time
		want int
	}

	tests := []testCase{
		{name: "FirstOfMonth", now: day(2024, 4, 1), want: 29},
		{name: "LeapFebruaryEnd", now: day(2024, 2, 29), want: 0},
		{name: "FebruaryMid", now: day(2023, 2, 14), want: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finance.PredictMonth(nil, nil, tt.now)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.RemainingDays)
		})
	}
}

func TestPredict_EmptyHistory(t *testing.T) {
	week, err := finance.PredictWeek(nil, nil, wednesday)
	require.NoError(t, err)

	month, err := finance.PredictMonth([]ledger.DailyRevenue{}, []ledger.DailyExpense{}, wednesday)
	require.NoError(t, err)

	for _, p := range []finance.Prediction{week, month} {
		assert.True(t, p.PredictedRevenue.IsZero())
		assert.True(t, p.PredictedExpenses.IsZero())
		assert.True(t, p.PredictedNetMargin.IsZero())
		assert.True(t, p.PredictedNetMarginPercentage.IsZero())
		require.Len(t, p.PaymentMethods, 3)

		for _, m := range p.PaymentMethods {
			assert.True(t, m.PredictedAmount.IsZero())
		}
	}

	assert.Equal(t, 4, week.RemainingDays)
	assert.Equal(t, 25, month.RemainingDays)
}

func TestPredict_UnknownMethod(t *testing.T) {
	revenues := []ledger.DailyRevenue{revenue(day(2024, 3, 5), 100, line("cheque", 100))}

	_, err := finance.PredictWeek(revenues, nil, wednesday)
	assert.ErrorIs(t, err, finance.ErrUnknownPaymentMethod)

	// Outside the week window but inside the month window.
	revenues = []ledger.DailyRevenue{revenue(day(2024, 2, 20), 100, line("cheque", 100))}

	_, err = finance.PredictWeek(revenues, nil, wednesday)
	require.NoError(t, err)

	_, err = finance.PredictMonth(revenues, nil, wednesday)
	assert.ErrorIs(t, err, finance.ErrUnknownPaymentMethod)
}
