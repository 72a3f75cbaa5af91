package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/placebi/internal/money"
)

func TestParseCurrency(t *testing.T) {
	type testCase struct {
		name    string
		code    string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Upper", code: "XOF", want: "XOF"},
		{name: "LowerWithSpaces", code: " eur ", want: "EUR"},
		{name: "CentralAfrican", code: "XAF", want: "XAF"},
		{name: "Unknown", code: "ABC", wantErr: true},
		{name: "Empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseCurrency(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrUnknownCurrency)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIn(t *testing.T) {
	type testCase struct {
		name   string
		amount decimal.Decimal
		want   string
	}

	tests := []testCase{
		{name: "Grouped", amount: decimal.NewFromInt(1234567), want: "1,234,567 XOF"},
		{name: "Rounded", amount: decimal.RequireFromString("999.5"), want: "1,000 XOF"},
		{name: "Negative", amount: decimal.NewFromInt(-1500), want: "-1,500 XOF"},
		{name: "Zero", amount: decimal.Zero, want: "0 XOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.FormatIn(language.English, tt.amount, "XOF"))
		})
	}
}

func TestFormatPercentIn(t *testing.T) {
	assert.Equal(t, "37.5 %", money.FormatPercentIn(language.English, decimal.RequireFromString("37.5")))
	assert.Equal(t, "0.0 %", money.FormatPercentIn(language.English, decimal.Zero))
}
