package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

func sampleState() ledger.State {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	var st ledger.State
	st.Reset()
	st.SetRestaurant(ledger.Restaurant{
		ID:        "r1",
		Name:      "Chez Awa",
		Location:  "Dakar",
		Type:      ledger.RestaurantTypeCafe,
		Currency:  "XOF",
		CreatedAt: created,
		UpdatedAt: created,
	})
	st.AddRevenue(ledger.DailyRevenue{
		ID:           "rev1",
		RestaurantID: "r1",
		Date:         date(2024, 3, 1),
		TotalAmount:  decimal.RequireFromString("1500.5"),
		PaymentMethods: []ledger.PaymentLine{
			{ID: "p1", Method: ledger.PaymentWave, Amount: decimal.NewFromInt(1000)},
			{ID: "p2", Method: ledger.PaymentCash, Amount: decimal.RequireFromString("500.5")},
		},
		Notes:     "market day",
		CreatedAt: created,
		UpdatedAt: created,
	})
	st.AddExpense(ledger.DailyExpense{
		ID:           "exp1",
		RestaurantID: "r1",
		Date:         date(2024, 3, 1),
		TotalAmount:  decimal.NewFromInt(400),
		IsDetailed:   true,
		ExpenseLines: []ledger.ExpenseLine{
			{ID: "l1", Category: ledger.CategoryIngredients, Amount: decimal.NewFromInt(300)},
			{ID: "l2", Category: ledger.CategoryTransport, Amount: decimal.NewFromInt(100)},
		},
		CreatedAt: created,
		UpdatedAt: created,
	})
	st.AddExpense(ledger.DailyExpense{
		ID:          "exp2",
		Date:        date(2024, 2, 28),
		TotalAmount: decimal.NewFromInt(50),
		CreatedAt:   created,
		UpdatedAt:   created,
	})

	return st
}

func TestEncodeDecodeState_RoundTrip(t *testing.T) {
	want := sampleState()

	blob, err := ledger.EncodeState(want)
	require.NoError(t, err)

	got, err := ledger.DecodeState(blob)
	require.NoError(t, err)

	require.NotNil(t, got.Restaurant)
	assert.Equal(t, *want.Restaurant, *got.Restaurant)

	require.Len(t, got.Revenues, 1)
	rev := got.Revenues[0]
	assert.Equal(t, want.Revenues[0].Date, rev.Date)
	assert.Equal(t, want.Revenues[0].CreatedAt, rev.CreatedAt)
	assert.True(t, want.Revenues[0].TotalAmount.Equal(rev.TotalAmount))
	assert.Equal(t, "market day", rev.Notes)
	require.Len(t, rev.PaymentMethods, 2)
	assert.Equal(t, ledger.PaymentCash, rev.PaymentMethods[1].Method)
	assert.Equal(t, "500.5", rev.PaymentMethods[1].Amount.String())

	require.Len(t, got.Expenses, 2)
	assert.Equal(t, "exp1", got.Expenses[0].ID)
	assert.True(t, got.Expenses[0].IsDetailed)
	assert.Len(t, got.Expenses[0].ExpenseLines, 2)
	assert.Nil(t, got.Expenses[1].ExpenseLines)

	again, err := ledger.EncodeState(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(blob), string(again))
}

func TestEncodeDecodeState_OrderAfterDateChange(t *testing.T) {
	var st ledger.State
	st.Reset()

	st.AddRevenue(revenueOn("a", date(2024, 3, 5), 10))
	st.AddRevenue(revenueOn("b", date(2024, 3, 1), 20))
	st.AddExpense(expenseOn("x", date(2024, 3, 5), 1))
	st.AddExpense(expenseOn("y", date(2024, 3, 1), 2))

	moved := date(2024, 3, 9)
	require.True(t, st.UpdateRevenue("b", ledger.RevenuePatch{Date: &moved}, moved))
	require.True(t, st.UpdateExpense("y", ledger.ExpensePatch{Date: &moved}, moved))

	assert.Equal(t, []string{"b", "a"}, revenueIDs(st.Revenues))
	assert.Equal(t, "y", st.Expenses[0].ID)

	blob, err := ledger.EncodeState(st)
	require.NoError(t, err)

	got, err := ledger.DecodeState(blob)
	require.NoError(t, err)

	assert.Equal(t, revenueIDs(st.Revenues), revenueIDs(got.Revenues))
	assert.Equal(t, []string{"y", "x"}, []string{got.Expenses[0].ID, got.Expenses[1].ID})

	again, err := ledger.EncodeState(got)
	require.NoError(t, err)
	assert.Equal(t, string(blob), string(again))
}

func TestEncodeState_Layout(t *testing.T) {
	blob, err := ledger.EncodeState(sampleState())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(blob, &raw))

	revenues := raw["revenues"].([]any)
	rev := revenues[0].(map[string]any)

	assert.Equal(t, "2024-03-01T00:00:00Z", rev["date"])
	assert.Equal(t, 1500.5, rev["totalAmount"])
	assert.Equal(t, "r1", rev["restaurantId"])
	assert.Contains(t, rev, "paymentMethods")

	expenses := raw["expenses"].([]any)
	simple := expenses[1].(map[string]any)
	assert.NotContains(t, simple, "expenseLines")
	assert.NotContains(t, simple, "notes")
	assert.Equal(t, false, simple["isDetailed"])
}

func TestEncodeState_Empty(t *testing.T) {
	var st ledger.State
	st.Reset()

	blob, err := ledger.EncodeState(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{"restaurant":null,"revenues":[],"expenses":[]}`, string(blob))

	got, err := ledger.DecodeState(blob)
	require.NoError(t, err)
	assert.Nil(t, got.Restaurant)
	assert.NotNil(t, got.Revenues)
	assert.Empty(t, got.Revenues)
}

func TestDecodeState(t *testing.T) {
	type testCase struct {
		name    string
		blob    string
		wantIDs []string
		wantErr bool
	}

	tests := []testCase{
		{
			name: "SortsMostRecentFirst",
			blob: `{"restaurant":null,"revenues":[
				{"id":"old","date":"2024-01-01T00:00:00Z","totalAmount":1,"paymentMethods":[]},
				{"id":"new","date":"2024-02-01T00:00:00Z","totalAmount":"2","paymentMethods":[]}
			],"expenses":[]}`,
			wantIDs: []string{"new", "old"},
		},
		{
			name:    "MissingCollections",
			blob:    `{}`,
			wantIDs: []string{},
		},
		{
			name:    "Malformed",
			blob:    `{"revenues":`,
			wantErr: true,
		},
		{
			name:    "BadDate",
			blob:    `{"revenues":[{"id":"x","date":"yesterday"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.DecodeState([]byte(tt.blob))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, revenueIDs(got.Revenues))
		})
	}
}
