package ledger

import (
	"slices"
	"time"
)

// State is the whole application state: the profile and the revenue/expense history.
// Revenues and Expenses are kept sorted by date, most recent first.
// State does no I/O; Service owns one and persists it.
type State struct {
	Restaurant *Restaurant
	Revenues   []DailyRevenue
	Expenses   []DailyExpense
}

// Clone returns a deep copy that shares no slices or pointers with s.
func (s *State) Clone() State {
	out := State{
		Revenues: make([]DailyRevenue, len(s.Revenues)),
		Expenses: make([]DailyExpense, len(s.Expenses)),
	}

	if s.Restaurant != nil {
		r := *s.Restaurant
		out.Restaurant = &r
	}

	for i, r := range s.Revenues {
		out.Revenues[i] = r.clone()
	}

	for i, e := range s.Expenses {
		out.Expenses[i] = e.clone()
	}

	return out
}

func (s *State) SetRestaurant(r Restaurant) {
	s.Restaurant = &r
}

func (s *State) AddRevenue(r DailyRevenue) {
	s.Revenues = append(s.Revenues, r.clone())
	sortRevenues(s.Revenues)
}

func (s *State) AddExpense(e DailyExpense) {
	s.Expenses = append(s.Expenses, e.clone())
	sortExpenses(s.Expenses)
}

// UpdateRevenue merges patch into the revenue with the given id. A new date
// moves the record to its sorted position. It reports whether a record matched; an unknown id leaves the state untouched.
func (s *State) UpdateRevenue(id string, patch RevenuePatch, now time.Time) bool {
	i := slices.IndexFunc(s.Revenues, func(r DailyRevenue) bool { return r.ID == id })
	if i < 0 {
		return false
	}

	r := &s.Revenues[i]

	if patch.Date != nil {
		r.Date = *patch.Date
	}

	if patch.TotalAmount != nil {
		r.TotalAmount = *patch.TotalAmount
	}

	if patch.PaymentMethods != nil {
		r.PaymentMethods = slices.Clone(patch.PaymentMethods)
	}

	if patch.Notes != nil {
		r.Notes = *patch.Notes
	}

	r.UpdatedAt = now

	if patch.Date != nil {
		sortRevenues(s.Revenues)
	}

	return true
}

// UpdateExpense merges patch into the expense with the given id. A new date
// moves the record to its sorted position. It reports whether a record matched; an unknown id leaves the state untouched.
func (s *State) UpdateExpense(id string, patch ExpensePatch, now time.Time) bool {
	i := slices.IndexFunc(s.Expenses, func(e DailyExpense) bool { return e.ID == id })
	if i < 0 {
		return false
	}

	e := &s.Expenses[i]

	if patch.Date != nil {
		e.Date = *patch.Date
	}

	if patch.TotalAmount != nil {
		e.TotalAmount = *patch.TotalAmount
	}

	if patch.IsDetailed != nil {
		e.IsDetailed = *patch.IsDetailed
	}

	if patch.ExpenseLines != nil {
		e.ExpenseLines = slices.Clone(patch.ExpenseLines)
	}

	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}

	e.UpdatedAt = now

	if patch.Date != nil {
		sortExpenses(s.Expenses)
	}

	return true
}

// DeleteRevenue removes the revenue with the given id and reports whether it existed.
func (s *State) DeleteRevenue(id string) bool {
	n := len(s.Revenues)
	s.Revenues = slices.DeleteFunc(s.Revenues, func(r DailyRevenue) bool { return r.ID == id })

	return len(s.Revenues) != n
}

// DeleteExpense removes the expense with the given id and reports whether it existed.
func (s *State) DeleteExpense(id string) bool {
	n := len(s.Expenses)
	s.Expenses = slices.DeleteFunc(s.Expenses, func(e DailyExpense) bool { return e.ID == id })

	return len(s.Expenses) != n
}

// RevenuesBetween returns copies of the revenues dated within [start, end], in state order.
// Callers pass day boundaries (midnight and end of day) for day-level filtering.
func (s *State) RevenuesBetween(start, end time.Time) []DailyRevenue {
	out := make([]DailyRevenue, 0)

	for _, r := range s.Revenues {
		if inRange(r.Date, start, end) {
			out = append(out, r.clone())
		}
	}

	return out
}

// ExpensesBetween returns copies of the expenses dated within [start, end], in state order.
func (s *State) ExpensesBetween(start, end time.Time) []DailyExpense {
	out := make([]DailyExpense, 0)

	for _, e := range s.Expenses {
		if inRange(e.Date, start, end) {
			out = append(out, e.clone())
		}
	}

	return out
}

func (s *State) Reset() {
	*s = State{
		Revenues: []DailyRevenue{},
		Expenses: []DailyExpense{},
	}
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// sortRevenues orders by date, most recent first. Equal dates keep insertion order.
func sortRevenues(rs []DailyRevenue) {
	slices.SortStableFunc(rs, func(a, b DailyRevenue) int {
		return b.Date.Compare(a.Date)
	})
}

func sortExpenses(es []DailyExpense) {
	slices.SortStableFunc(es, func(a, b DailyExpense) int {
		return b.Date.Compare(a.Date)
	})
}
