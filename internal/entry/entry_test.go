package entry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

var clock = time.Date(2024, 3, 6, 14, 30, 0, 0, time.UTC)

func newForm() *entry.Form {
	return entry.NewForm(
		entry.WithClock(func() time.Time { return clock }),
		entry.WithLocation(time.UTC),
	)
}

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func nullAmount(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(amount(v))
}

func requireFieldErrors(t *testing.T, err error, fields ...string) {
	t.Helper()

	fe, ok := entry.AsFieldErrors(err)
	require.True(t, ok, "expected FieldErrors, got %v", err)

	for _, f := range fields {
		assert.Contains(t, fe, f)
	}
}

func TestFieldErrors(t *testing.T) {
	err := error(entry.FieldErrors{"name": "required", "location": "required"})

	assert.Equal(t, "invalid input: location: required; name: required", err.Error())

	wrapped := errors.Join(errors.New("context"), err)
	fe, ok := entry.AsFieldErrors(wrapped)
	require.True(t, ok)
	assert.Len(t, fe, 2)

	_, ok = entry.AsFieldErrors(errors.New("other"))
	assert.False(t, ok)
}

func TestForm_Restaurant(t *testing.T) {
	type testCase struct {
		name       string
		in         entry.RestaurantInput
		want       ledger.Restaurant
		wantFields []string
	}

	tests := []testCase{
		{
			name: "Defaults",
			in:   entry.RestaurantInput{Name: "  Chez Awa ", Location: "Dakar"},
			want: ledger.Restaurant{Name: "Chez Awa", Location: "Dakar", Type: ledger.RestaurantTypeRestaurant, Currency: "XOF"},
		},
		{
			name: "Explicit",
			in:   entry.RestaurantInput{Name: "Le Kiosque", Location: "Abidjan", Type: ledger.RestaurantTypeCafe, Currency: "eur"},
			want: ledger.Restaurant{Name: "Le Kiosque", Location: "Abidjan", Type: ledger.RestaurantTypeCafe, Currency: "EUR"},
		},
		{
			name:       "BlankFields",
			in:         entry.RestaurantInput{Name: "   ", Location: ""},
			wantFields: []string{"name", "location"},
		},
		{
			name:       "BadTypeAndCurrency",
			in:         entry.RestaurantInput{Name: "A", Location: "B", Type: "food_truck", Currency: "ZZZ"},
			wantFields: []string{"type", "currency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newForm().Restaurant(tt.in, nil)
			if tt.wantFields != nil {
				requireFieldErrors(t, err, tt.wantFields...)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, clock, got.CreatedAt)
			assert.Equal(t, clock, got.UpdatedAt)

			got.ID, got.CreatedAt, got.UpdatedAt = "", time.Time{}, time.Time{}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_RestaurantEdit(t *testing.T) {
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	current := &ledger.Restaurant{ID: "r1", Name: "Old", CreatedAt: created}

	got, err := newForm().Restaurant(entry.RestaurantInput{Name: "New", Location: "Thiès"}, current)
	require.NoError(t, err)

	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, clock, got.UpdatedAt)
	assert.Equal(t, "New", got.Name)
}

func TestForm_Revenue(t *testing.T) {
	type testCase struct {
		name       string
		in         entry.RevenueInput
		wantTotal  string
		wantLines  int
		wantDate   time.Time
		wantFields []string
	}

	tests := []testCase{
		{
			name: "GlobalSumsMethods",
			in: entry.RevenueInput{
				Date: "2024-03-05",
				Mode: entry.RevenueGlobal,
				PaymentMethods: []entry.PaymentInput{
					{Method: ledger.PaymentWave, Amount: amount("1500")},
					{Method: ledger.PaymentOrangeMoney, Amount: amount("0")},
					{Method: ledger.PaymentCash, Amount: amount("2500")},
				},
				Notes: " marché ",
			},
			wantTotal: "4000",
			wantLines: 2,
			wantDate:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "GlobalIgnoresTotalAmount",
			in: entry.RevenueInput{
				Mode:           entry.RevenueGlobal,
				TotalAmount:    nullAmount("99999"),
				PaymentMethods: []entry.PaymentInput{{Method: ledger.PaymentCash, Amount: amount("10")}},
			},
			wantTotal: "10",
			wantLines: 1,
			wantDate:  time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "DetailedKeepsTotal",
			in: entry.RevenueInput{
				Mode:        entry.RevenueDetailed,
				TotalAmount: nullAmount("5000"),
				PaymentMethods: []entry.PaymentInput{
					{Method: ledger.PaymentCash, Amount: amount("1000")},
					{Method: ledger.PaymentCash, Amount: amount("2000")},
				},
			},
			wantTotal: "5000",
			wantLines: 2,
			wantDate:  time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "GlobalAllZero",
			in: entry.RevenueInput{
				Mode:           entry.RevenueGlobal,
				PaymentMethods: []entry.PaymentInput{{Method: ledger.PaymentCash, Amount: amount("0")}},
			},
			wantFields: []string{"paymentMethods"},
		},
		{
			name: "DetailedMissingTotalAndLines",
			in: entry.RevenueInput{
				Mode:           entry.RevenueDetailed,
				PaymentMethods: []entry.PaymentInput{{Method: ledger.PaymentWave, Amount: amount("0")}},
			},
			wantFields: []string{"totalAmount", "paymentMethods"},
		},
		{
			name: "UnknownMethodAndNegative",
			in: entry.RevenueInput{
				Mode: entry.RevenueGlobal,
				PaymentMethods: []entry.PaymentInput{
					{Method: "cheque", Amount: amount("10")},
					{Method: ledger.PaymentCash, Amount: amount("-5")},
				},
			},
			wantFields: []string{"paymentMethods[0].method", "paymentMethods[1].amount"},
		},
		{
			name:       "BadDateAndMode",
			in:         entry.RevenueInput{Date: "05/03/2024", Mode: "mixed"},
			wantFields: []string{"date", "mode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newForm().Revenue(tt.in, "r1")
			if tt.wantFields != nil {
				requireFieldErrors(t, err, tt.wantFields...)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "r1", got.RestaurantID)
			assert.Equal(t, tt.wantTotal, got.TotalAmount.String())
			assert.Len(t, got.PaymentMethods, tt.wantLines)
			assert.Equal(t, tt.wantDate, got.Date)

			for _, pm := range got.PaymentMethods {
				assert.NotEmpty(t, pm.ID)
				assert.True(t, pm.Amount.IsPositive())
			}
		})
	}
}

func TestForm_RevenuePatch(t *testing.T) {
	date := "2024-02-01"
	notes := "  corrigé "
	total := amount("750")
	lines := []entry.PaymentInput{
		{Method: ledger.PaymentWave, Amount: amount("750")},
		{Method: ledger.PaymentCash, Amount: amount("0")},
	}

	patch, err := newForm().RevenuePatch(entry.RevenueUpdate{
		Date:           &date,
		TotalAmount:    &total,
		PaymentMethods: &lines,
		Notes:          &notes,
	})
	require.NoError(t, err)

	require.NotNil(t, patch.Date)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *patch.Date)
	assert.Equal(t, "750", patch.TotalAmount.String())
	assert.Len(t, patch.PaymentMethods, 1)
	assert.Equal(t, "corrigé", *patch.Notes)

	empty, err := newForm().RevenuePatch(entry.RevenueUpdate{})
	require.NoError(t, err)
	assert.Nil(t, empty.Date)
	assert.Nil(t, empty.TotalAmount)
	assert.Nil(t, empty.PaymentMethods)
	assert.Nil(t, empty.Notes)

	zero := amount("0")
	_, err = newForm().RevenuePatch(entry.RevenueUpdate{TotalAmount: &zero})
	requireFieldErrors(t, err, "totalAmount")
}

func TestForm_Expense(t *testing.T) {
	type testCase struct {
		name         string
		in           entry.ExpenseInput
		wantTotal    string
		wantDetailed bool
		wantLines    int
		wantFields   []string
	}

	tests := []testCase{
		{
			name:      "Simple",
			in:        entry.ExpenseInput{TotalAmount: nullAmount("400")},
			wantTotal: "400",
		},
		{
			name: "DetailedSumsPositiveLines",
			in: entry.ExpenseInput{
				IsDetailed:  true,
				TotalAmount: nullAmount("1"),
				ExpenseLines: []entry.ExpenseLineInput{
					{Category: ledger.CategoryIngredients, Amount: amount("300")},
					{Category: ledger.CategoryRent, Amount: amount("0")},
					{Category: ledger.CategoryTransport, Amount: amount("150.5")},
				},
			},
			wantTotal:    "450.5",
			wantDetailed: true,
			wantLines:    2,
		},
		{
			name:       "SimpleWithoutTotal",
			in:         entry.ExpenseInput{},
			wantFields: []string{"totalAmount"},
		},
		{
			name: "DetailedWithoutPositiveLine",
			in: entry.ExpenseInput{
				IsDetailed:   true,
				ExpenseLines: []entry.ExpenseLineInput{{Category: ledger.CategoryRent, Amount: amount("0")}},
			},
			wantFields: []string{"expenseLines"},
		},
		{
			name: "UnknownCategory",
			in: entry.ExpenseInput{
				IsDetailed:   true,
				ExpenseLines: []entry.ExpenseLineInput{{Category: "taxes", Amount: amount("10")}},
			},
			wantFields: []string{"expenseLines[0].category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newForm().Expense(tt.in, "r1")
			if tt.wantFields != nil {
				requireFieldErrors(t, err, tt.wantFields...)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.TotalAmount.String())
			assert.Equal(t, tt.wantDetailed, got.IsDetailed)
			assert.Len(t, got.ExpenseLines, tt.wantLines)

			if !tt.wantDetailed {
				assert.Nil(t, got.ExpenseLines)
			}
		})
	}
}

func TestForm_ExpensePatch(t *testing.T) {
	lines := []entry.ExpenseLineInput{
		{Category: ledger.CategorySalaries, Amount: amount("200")},
		{Category: ledger.CategoryMarketing, Amount: amount("50")},
	}
	detailed := true

	patch, err := newForm().ExpensePatch(entry.ExpenseUpdate{IsDetailed: &detailed, ExpenseLines: &lines})
	require.NoError(t, err)

	require.NotNil(t, patch.TotalAmount)
	assert.Equal(t, "250", patch.TotalAmount.String())
	assert.True(t, *patch.IsDetailed)
	assert.Len(t, patch.ExpenseLines, 2)

	neg := []entry.ExpenseLineInput{{Category: ledger.CategoryRent, Amount: amount("-1")}}
	_, err = newForm().ExpensePatch(entry.ExpenseUpdate{ExpenseLines: &neg})
	requireFieldErrors(t, err, "expenseLines[0].amount")
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Espèces", entry.PaymentLabel(ledger.PaymentCash))
	assert.Equal(t, "cheque", entry.PaymentLabel("cheque"))
	assert.Equal(t, "Loyer", entry.CategoryLabel(ledger.CategoryRent))
	assert.Equal(t, "Café", entry.TypeLabel(ledger.RestaurantTypeCafe))
}

func TestParseDay(t *testing.T) {
	got, err := entry.ParseDay("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = entry.ParseDay("2023-02-29", time.UTC)
	assert.Error(t, err)
}
