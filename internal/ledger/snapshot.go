package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StorageKey is the key under which the encoded state is stored.
const StorageKey = "placebi-storage"

// amount encodes a decimal as a bare JSON number. Both quoted and bare numbers decode.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}

	*a = amount(d)

	return nil
}

type snapshotJSON struct {
	Restaurant *restaurantJSON `json:"restaurant"`
	Revenues   []revenueJSON   `json:"revenues"`
	Expenses   []expenseJSON   `json:"expenses"`
}

type restaurantJSON struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Location  string         `json:"location"`
	Type      RestaurantType `json:"type"`
	Currency  string         `json:"currency"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type paymentLineJSON struct {
	ID     string        `json:"id"`
	Method PaymentMethod `json:"method"`
	Amount amount        `json:"amount"`
}

type revenueJSON struct {
	ID             string            `json:"id"`
	RestaurantID   string            `json:"restaurantId"`
	Date           time.Time         `json:"date"`
	TotalAmount    amount            `json:"totalAmount"`
	PaymentMethods []paymentLineJSON `json:"paymentMethods"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type expenseLineJSON struct {
	ID       string          `json:"id"`
	Category ExpenseCategory `json:"category"`
	Amount   amount          `json:"amount"`
}

type expenseJSON struct {
	ID           string            `json:"id"`
	RestaurantID string            `json:"restaurantId"`
	Date         time.Time         `json:"date"`
	TotalAmount  amount            `json:"totalAmount"`
	IsDetailed   bool              `json:"isDetailed"`
	ExpenseLines []expenseLineJSON `json:"expenseLines,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// EncodeState serializes the state into the persisted JSON layout.
// Dates are written as RFC 3339 strings and amounts as JSON numbers.
func EncodeState(s State) ([]byte, error) {
	out := snapshotJSON{
		Revenues: make([]revenueJSON, 0, len(s.Revenues)),
		Expenses: make([]expenseJSON, 0, len(s.Expenses)),
	}

	if r := s.Restaurant; r != nil {
		out.Restaurant = &restaurantJSON{
			ID:        r.ID,
			Name:      r.Name,
			Location:  r.Location,
			Type:      r.Type,
			Currency:  r.Currency,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}

	for _, r := range s.Revenues {
		var lines []paymentLineJSON
		if r.PaymentMethods != nil {
			lines = make([]paymentLineJSON, len(r.PaymentMethods))
		}

		for i, pm := range r.PaymentMethods {
			lines[i] = paymentLineJSON{ID: pm.ID, Method: pm.Method, Amount: amount(pm.Amount)}
		}

		out.Revenues = append(out.Revenues, revenueJSON{
			ID:             r.ID,
			RestaurantID:   r.RestaurantID,
			Date:           r.Date,
			TotalAmount:    amount(r.TotalAmount),
			PaymentMethods: lines,
			Notes:          r.Notes,
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		})
	}

	for _, e := range s.Expenses {
		var lines []expenseLineJSON
		if e.ExpenseLines != nil {
			lines = make([]expenseLineJSON, len(e.ExpenseLines))
		}

		for i, l := range e.ExpenseLines {
			lines[i] = expenseLineJSON{ID: l.ID, Category: l.Category, Amount: amount(l.Amount)}
		}

		out.Expenses = append(out.Expenses, expenseJSON{
			ID:           e.ID,
			RestaurantID: e.RestaurantID,
			Date:         e.Date,
			TotalAmount:  amount(e.TotalAmount),
			IsDetailed:   e.IsDetailed,
			ExpenseLines: lines,
			Notes:        e.Notes,
			CreatedAt:    e.CreatedAt,
			UpdatedAt:    e.UpdatedAt,
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}

	return b, nil
}

// DecodeState parses a blob written by EncodeState. Collections are re-sorted
// most recent first, so blobs written by other tools are accepted in any order.
func DecodeState(b []byte) (State, error) {
	var in snapshotJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return State{}, fmt.Errorf("decoding state: %w", err)
	}

	s := State{
		Revenues: make([]DailyRevenue, 0, len(in.Revenues)),
		Expenses: make([]DailyExpense, 0, len(in.Expenses)),
	}

	if r := in.Restaurant; r != nil {
		s.Restaurant = &Restaurant{
			ID:        r.ID,
			Name:      r.Name,
			Location:  r.Location,
			Type:      r.Type,
			Currency:  r.Currency,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}

	for _, r := range in.Revenues {
		var lines []PaymentLine
		if r.PaymentMethods != nil {
			lines = make([]PaymentLine, len(r.PaymentMethods))
		}

		for i, pm := range r.PaymentMethods {
			lines[i] = PaymentLine{ID: pm.ID, Method: pm.Method, Amount: decimal.Decimal(pm.Amount)}
		}

		s.Revenues = append(s.Revenues, DailyRevenue{
			ID:             r.ID,
			RestaurantID:   r.RestaurantID,
			Date:           r.Date,
			TotalAmount:    decimal.Decimal(r.TotalAmount),
			PaymentMethods: lines,
			Notes:          r.Notes,
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		})
	}

	for _, e := range in.Expenses {
		var lines []ExpenseLine
		if e.ExpenseLines != nil {
			lines = make([]ExpenseLine, len(e.ExpenseLines))
		}

		for i, l := range e.ExpenseLines {
			lines[i] = ExpenseLine{ID: l.ID, Category: l.Category, Amount: decimal.Decimal(l.Amount)}
		}

		s.Expenses = append(s.Expenses, DailyExpense{
			ID:           e.ID,
			RestaurantID: e.RestaurantID,
			Date:         e.Date,
			TotalAmount:  decimal.Decimal(e.TotalAmount),
			IsDetailed:   e.IsDetailed,
			ExpenseLines: lines,
			Notes:        e.Notes,
			CreatedAt:    e.CreatedAt,
			UpdatedAt:    e.UpdatedAt,
		})
	}

	sortRevenues(s.Revenues)
	sortExpenses(s.Expenses)

	return s, nil
}
