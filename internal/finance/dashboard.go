package finance

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

// DashboardView is everything the dashboard renders for one date range.
type DashboardView struct {
	Start     time.Time
	End       time.Time
	KPIs      FinancialKPIs
	Breakdown []MethodShare
	Series    []SeriesPoint
	Week      Prediction
	Month     Prediction
}

// Dashboard computes the dashboard for [start, end]. KPIs, breakdown and series
// use the records in range; predictions always look at the full history.
func Dashboard(st ledger.State, start, end, now time.Time) (DashboardView, error) {
	revenues := st.RevenuesBetween(start, end)
	expenses := st.ExpensesBetween(start, end)

	breakdown, err := PaymentMethodBreakdown(revenues)
	if err != nil {
		return DashboardView{}, fmt.Errorf("computing breakdown: %w", err)
	}

	week, err := PredictWeek(st.Revenues, st.Expenses, now)
	if err != nil {
		return DashboardView{}, fmt.Errorf("predicting week: %w", err)
	}

	month, err := PredictMonth(st.Revenues, st.Expenses, now)
	if err != nil {
		return DashboardView{}, fmt.Errorf("predicting month: %w", err)
	}

	return DashboardView{
		Start:     start,
		End:       end,
		KPIs:      CalculateKPIs(revenues, expenses),
		Breakdown: breakdown,
		Series:    RevenueTimeSeries(revenues, expenses, start, end),
		Week:      week,
		Month:     month,
	}, nil
}
