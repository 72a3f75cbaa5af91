package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/finance"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type kpiResponse struct {
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
	NetMargin           decimal.Decimal `json:"netMargin"`
	NetMarginPercentage decimal.Decimal `json:"netMarginPercentage"`
}

type shareResponse struct {
	Method     ledger.PaymentMethod `json:"method"`
	Label      string               `json:"label"`
	Amount     decimal.Decimal      `json:"amount"`
	Percentage decimal.Decimal      `json:"percentage"`
}

type pointResponse struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetMargin decimal.Decimal `json:"netMargin"`
}

type methodPredictionResponse struct {
	Method          ledger.PaymentMethod `json:"method"`
	PredictedAmount decimal.Decimal      `json:"predictedAmount"`
}

type predictionResponse struct {
	Type                         finance.PredictionType     `json:"type"`
	RemainingDays                int                        `json:"remainingDays"`
	PredictedRevenue             decimal.Decimal            `json:"predictedRevenue"`
	PredictedExpenses            decimal.Decimal            `json:"predictedExpenses"`
	PredictedNetMargin           decimal.Decimal            `json:"predictedNetMargin"`
	PredictedNetMarginPercentage decimal.Decimal            `json:"predictedNetMarginPercentage"`
	PaymentMethods               []methodPredictionResponse `json:"paymentMethods"`
}

type dashboardResponse struct {
	Period      finance.Period       `json:"period"`
	StartDate   string               `json:"startDate"`
	EndDate     string               `json:"endDate"`
	Currency    string               `json:"currency"`
	KPIs        kpiResponse          `json:"kpis"`
	Breakdown   []shareResponse      `json:"paymentMethodBreakdown"`
	TimeSeries  []pointResponse      `json:"timeSeries"`
	Predictions []predictionResponse `json:"predictions"`
}

func toResponse(p finance.Period, currency string, v finance.DashboardView) dashboardResponse {
	resp := dashboardResponse{
		Period:    p,
		StartDate: finance.DayOf(v.Start).String(),
		EndDate:   finance.DayOf(v.End).String(),
		Currency:  currency,
		KPIs: kpiResponse{
			TotalRevenue:        v.KPIs.TotalRevenue,
			TotalExpenses:       v.KPIs.TotalExpenses,
			NetMargin:           v.KPIs.NetMargin,
			NetMarginPercentage: v.KPIs.NetMarginPercentage.Round(2),
		},
		Breakdown:   make([]shareResponse, len(v.Breakdown)),
		TimeSeries:  make([]pointResponse, len(v.Series)),
		Predictions: []predictionResponse{toPrediction(v.Week), toPrediction(v.Month)},
	}

	for i, s := range v.Breakdown {
		resp.Breakdown[i] = shareResponse{
			Method:     s.Method,
			Label:      entry.PaymentLabel(s.Method),
			Amount:     s.Amount,
			Percentage: s.Percentage.Round(2),
		}
	}

	for i, pt := range v.Series {
		resp.TimeSeries[i] = pointResponse{
			Date:      pt.Day.String(),
			Revenue:   pt.Revenue,
			Expenses:  pt.Expenses,
			NetMargin: pt.NetMargin,
		}
	}

	return resp
}

func toPrediction(p finance.Prediction) predictionResponse {
	methods := make([]methodPredictionResponse, len(p.PaymentMethods))
	for i, m := range p.PaymentMethods {
		methods[i] = methodPredictionResponse{Method: m.Method, PredictedAmount: m.PredictedAmount.Round(2)}
	}

	return predictionResponse{
		Type:                         p.Type,
		RemainingDays:                p.RemainingDays,
		PredictedRevenue:             p.PredictedRevenue.Round(2),
		PredictedExpenses:            p.PredictedExpenses.Round(2),
		PredictedNetMargin:           p.PredictedNetMargin.Round(2),
		PredictedNetMarginPercentage: p.PredictedNetMarginPercentage.Round(2),
		PaymentMethods:               methods,
	}
}
