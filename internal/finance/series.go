package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

// SeriesPoint is one day of the revenue/expense chart.
type SeriesPoint struct {
	Day       Day
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	NetMargin decimal.Decimal
}

// RevenueTimeSeries buckets amounts per calendar day from start's day to end's day
// inclusive, in ascending order, including days without activity. Records dated
// outside the range are ignored, so callers pass collections already filtered to
// the same range. An inverted range yields an empty series.
func RevenueTimeSeries(revenues []ledger.DailyRevenue, expenses []ledger.DailyExpense, start, end time.Time) []SeriesPoint {
	first, last := DayOf(start), DayOf(end)

	points := make([]SeriesPoint, 0)
	index := make(map[Day]int)

	for d := first; !d.After(last); d = d.AddDays(1) {
		index[d] = len(points)
		points = append(points, SeriesPoint{
			Day:      d,
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
		})
	}

	for _, r := range revenues {
		if i, ok := index[DayOf(r.Date)]; ok {
			points[i].Revenue = points[i].Revenue.Add(r.TotalAmount)
		}
	}

	for _, e := range expenses {
		if i, ok := index[DayOf(e.Date)]; ok {
			points[i].Expenses = points[i].Expenses.Add(e.TotalAmount)
		}
	}

	for i := range points {
		points[i].NetMargin = points[i].Revenue.Sub(points[i].Expenses)
	}

	return points
}
