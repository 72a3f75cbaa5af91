package revenue

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type paymentLineResponse struct {
	ID     string               `json:"id"`
	Method ledger.PaymentMethod `json:"method"`
	Label  string               `json:"label"`
	Amount decimal.Decimal      `json:"amount"`
}

type revenueResponse struct {
	ID             string                `json:"id"`
	RestaurantID   string                `json:"restaurantId"`
	Date           string                `json:"date"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	PaymentMethods []paymentLineResponse `json:"paymentMethods"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func toResponse(r ledger.DailyRevenue) revenueResponse {
	lines := make([]paymentLineResponse, len(r.PaymentMethods))
	for i, pm := range r.PaymentMethods {
		lines[i] = paymentLineResponse{
			ID:     pm.ID,
			Method: pm.Method,
			Label:  entry.PaymentLabel(pm.Method),
			Amount: pm.Amount,
		}
	}

	return revenueResponse{
		ID:             r.ID,
		RestaurantID:   r.RestaurantID,
		Date:           r.Date.Format(time.DateOnly),
		TotalAmount:    r.TotalAmount,
		PaymentMethods: lines,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toResponseList(rs []ledger.DailyRevenue) []revenueResponse {
	resp := make([]revenueResponse, len(rs))
	for i, r := range rs {
		resp[i] = toResponse(r)
	}

	return resp
}
