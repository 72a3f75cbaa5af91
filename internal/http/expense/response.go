package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type expenseLineResponse struct {
	ID       string                 `json:"id"`
	Category ledger.ExpenseCategory `json:"category"`
	Label    string                 `json:"label"`
	Amount   decimal.Decimal        `json:"amount"`
}

type expenseResponse struct {
	ID           string                `json:"id"`
	RestaurantID string                `json:"restaurantId"`
	Date         string                `json:"date"`
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
	IsDetailed   bool                  `json:"isDetailed"`
	ExpenseLines []expenseLineResponse `json:"expenseLines,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func toResponse(e ledger.DailyExpense) expenseResponse {
	resp := expenseResponse{
		ID:           e.ID,
		RestaurantID: e.RestaurantID,
		Date:         e.Date.Format(time.DateOnly),
		TotalAmount:  e.TotalAmount,
		IsDetailed:   e.IsDetailed,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	for _, l := range e.ExpenseLines {
		resp.ExpenseLines = append(resp.ExpenseLines, expenseLineResponse{
			ID:       l.ID,
			Category: l.Category,
			Label:    entry.CategoryLabel(l.Category),
			Amount:   l.Amount,
		})
	}

	return resp
}

func toResponseList(es []ledger.DailyExpense) []expenseResponse {
	resp := make([]expenseResponse, len(es))
	for i, e := range es {
		resp[i] = toResponse(e)
	}

	return resp
}
