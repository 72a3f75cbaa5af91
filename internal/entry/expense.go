package entry

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type ExpenseLineInput struct {
	Category ledger.ExpenseCategory `json:"category" validate:"required,oneof=rent salaries ingredients utilities transport marketing others"`
	Amount   decimal.Decimal        `json:"amount"`
}

type ExpenseInput struct {
	Date         string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IsDetailed   bool                `json:"isDetailed"`
	TotalAmount  decimal.NullDecimal `json:"totalAmount"`
	ExpenseLines []ExpenseLineInput  `json:"expenseLines" validate:"dive"`
	Notes        string              `json:"notes" validate:"max=1000"`
}

// Expense validates the expense form. A simple expense needs a positive total
// and carries no lines. A detailed expense needs at least one positive line and
// its total is the sum of the positive lines.
func (f *Form) Expense(in ExpenseInput, restaurantID string) (ledger.DailyExpense, error) {
	errs := FieldErrors{}
	f.check(in, errs)
	checkExpenseAmounts(in.ExpenseLines, errs)

	if len(errs) > 0 {
		return ledger.DailyExpense{}, errs
	}

	var (
		total decimal.Decimal
		lines []ledger.ExpenseLine
	)

	if in.IsDetailed {
		lines = f.expenseLines(in.ExpenseLines)
		if len(lines) == 0 {
			errs["expenseLines"] = "Au moins une ligne avec un montant est requise"
		}

		total = sumLines(lines)
	} else {
		if !positive(in.TotalAmount) {
			errs["totalAmount"] = "Le montant total est requis"
		}

		total = in.TotalAmount.Decimal
	}

	if len(errs) > 0 {
		return ledger.DailyExpense{}, errs
	}

	now := f.now()

	return ledger.DailyExpense{
		ID:           f.newID(),
		RestaurantID: restaurantID,
		Date:         f.date(in.Date),
		TotalAmount:  total,
		IsDetailed:   in.IsDetailed,
		ExpenseLines: lines,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ExpenseUpdate is a partial edit. Absent fields are left as they are.
type ExpenseUpdate struct {
	Date         *string             `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TotalAmount  *decimal.Decimal    `json:"totalAmount"`
	IsDetailed   *bool               `json:"isDetailed"`
	ExpenseLines *[]ExpenseLineInput `json:"expenseLines" validate:"omitempty,dive"`
	Notes        *string             `json:"notes" validate:"omitempty,max=1000"`
}

// ExpensePatch validates a partial edit. When new lines are given without a
// total, the total is recomputed from them.
func (f *Form) ExpensePatch(in ExpenseUpdate) (ledger.ExpensePatch, error) {
	errs := FieldErrors{}
	f.check(in, errs)

	if in.TotalAmount != nil && !in.TotalAmount.IsPositive() {
		errs["totalAmount"] = "Le montant total doit être supérieur à 0"
	}

	if in.ExpenseLines != nil {
		checkExpenseAmounts(*in.ExpenseLines, errs)
	}

	if len(errs) > 0 {
		return ledger.ExpensePatch{}, errs
	}

	patch := ledger.ExpensePatch{
		TotalAmount: in.TotalAmount,
		IsDetailed:  in.IsDetailed,
	}

	if in.Date != nil {
		d := f.date(*in.Date)
		patch.Date = &d
	}

	if in.ExpenseLines != nil {
		patch.ExpenseLines = f.expenseLines(*in.ExpenseLines)

		if patch.TotalAmount == nil && len(patch.ExpenseLines) > 0 {
			total := sumLines(patch.ExpenseLines)
			patch.TotalAmount = &total
		}
	}

	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		patch.Notes = &notes
	}

	return patch, nil
}

func checkExpenseAmounts(lines []ExpenseLineInput, errs FieldErrors) {
	for i, l := range lines {
		if l.Amount.IsNegative() {
			errs[fmt.Sprintf("expenseLines[%d].amount", i)] = "Le montant ne peut pas être négatif"
		}
	}
}

func (f *Form) expenseLines(in []ExpenseLineInput) []ledger.ExpenseLine {
	out := make([]ledger.ExpenseLine, 0, len(in))

	for _, l := range in {
		if !l.Amount.IsPositive() {
			continue
		}

		out = append(out, ledger.ExpenseLine{ID: f.newID(), Category: l.Category, Amount: l.Amount})
	}

	return out
}

func sumLines(lines []ledger.ExpenseLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}

	return total
}
