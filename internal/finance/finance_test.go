package finance_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func revenue(date time.Time, total int64, lines ...ledger.PaymentLine) ledger.DailyRevenue {
	return ledger.DailyRevenue{
		ID:             "rev-" + date.Format(time.DateOnly),
		Date:           date,
		TotalAmount:    dec(total),
		PaymentMethods: lines,
	}
}

func line(m ledger.PaymentMethod, amount int64) ledger.PaymentLine {
	return ledger.PaymentLine{ID: string(m), Method: m, Amount: dec(amount)}
}

func expense(date time.Time, total int64) ledger.DailyExpense {
	return ledger.DailyExpense{
		ID:          "exp-" + date.Format(time.DateOnly),
		Date:        date,
		TotalAmount: dec(total),
	}
}
