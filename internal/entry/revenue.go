package entry

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

// RevenueMode selects how the revenue form computes the day's total.
type RevenueMode string

const (
	// RevenueGlobal takes one amount per method; the total is their sum.
	RevenueGlobal RevenueMode = "global"
	// RevenueDetailed takes an explicit total and free payment lines.
	RevenueDetailed RevenueMode = "detailed"
)

type PaymentInput struct {
	Method ledger.PaymentMethod `json:"method" validate:"required,oneof=wave orange_money cash"`
	Amount decimal.Decimal      `json:"amount"`
}

type RevenueInput struct {
	Date           string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Mode           RevenueMode         `json:"mode" validate:"required,oneof=global detailed"`
	TotalAmount    decimal.NullDecimal `json:"totalAmount"`
	PaymentMethods []PaymentInput      `json:"paymentMethods" validate:"dive"`
	Notes          string              `json:"notes" validate:"max=1000"`
}

// Revenue validates the revenue form and builds a new record for restaurantID.
// Lines with a zero amount are dropped in both modes.
func (f *Form) Revenue(in RevenueInput, restaurantID string) (ledger.DailyRevenue, error) {
	errs := FieldErrors{}
	f.check(in, errs)
	checkPaymentAmounts(in.PaymentMethods, errs)

	if len(errs) > 0 {
		return ledger.DailyRevenue{}, errs
	}

	sum := decimal.Zero
	hasLine := false

	for _, pm := range in.PaymentMethods {
		sum = sum.Add(pm.Amount)
		hasLine = hasLine || pm.Amount.IsPositive()
	}

	var total decimal.Decimal

	switch in.Mode {
	case RevenueGlobal:
		if !sum.IsPositive() {
			errs["paymentMethods"] = "Le total des méthodes de paiement doit être supérieur à 0"
		}

		total = sum
	case RevenueDetailed:
		if !positive(in.TotalAmount) {
			errs["totalAmount"] = "Le montant total est requis"
		}

		if !hasLine {
			errs["paymentMethods"] = "Au moins une ligne avec un montant est requise"
		}

		total = in.TotalAmount.Decimal
	}

	if len(errs) > 0 {
		return ledger.DailyRevenue{}, errs
	}

	now := f.now()

	return ledger.DailyRevenue{
		ID:             f.newID(),
		RestaurantID:   restaurantID,
		Date:           f.date(in.Date),
		TotalAmount:    total,
		PaymentMethods: f.paymentLines(in.PaymentMethods),
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// RevenueUpdate is a partial edit. Absent fields are left as they are.
type RevenueUpdate struct {
	Date           *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TotalAmount    *decimal.Decimal `json:"totalAmount"`
	PaymentMethods *[]PaymentInput  `json:"paymentMethods" validate:"omitempty,dive"`
	Notes          *string          `json:"notes" validate:"omitempty,max=1000"`
}

// RevenuePatch validates a partial edit. Provided amounts must not be negative;
// the total and the lines are not reconciled.
func (f *Form) RevenuePatch(in RevenueUpdate) (ledger.RevenuePatch, error) {
	errs := FieldErrors{}
	f.check(in, errs)

	if in.TotalAmount != nil && !in.TotalAmount.IsPositive() {
		errs["totalAmount"] = "Le montant total doit être supérieur à 0"
	}

	if in.PaymentMethods != nil {
		checkPaymentAmounts(*in.PaymentMethods, errs)
	}

	if len(errs) > 0 {
		return ledger.RevenuePatch{}, errs
	}

	var patch ledger.RevenuePatch

	if in.Date != nil {
		d := f.date(*in.Date)
		patch.Date = &d
	}

	patch.TotalAmount = in.TotalAmount

	if in.PaymentMethods != nil {
		patch.PaymentMethods = f.paymentLines(*in.PaymentMethods)
	}

	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		patch.Notes = &notes
	}

	return patch, nil
}

func checkPaymentAmounts(lines []PaymentInput, errs FieldErrors) {
	for i, pm := range lines {
		if pm.Amount.IsNegative() {
			errs[fmt.Sprintf("paymentMethods[%d].amount", i)] = "Le montant ne peut pas être négatif"
		}
	}
}

// paymentLines keeps the positive lines, each with a fresh id. The result is
// never nil.
func (f *Form) paymentLines(in []PaymentInput) []ledger.PaymentLine {
	out := make([]ledger.PaymentLine, 0, len(in))

	for _, pm := range in {
		if !pm.Amount.IsPositive() {
			continue
		}

		out = append(out, ledger.PaymentLine{ID: f.newID(), Method: pm.Method, Amount: pm.Amount})
	}

	return out
}
