package entry

import "github.com/MrJamesThe3rd/placebi/internal/ledger"

var paymentLabels = map[ledger.PaymentMethod]string{
	ledger.PaymentWave:        "Wave",
	ledger.PaymentOrangeMoney: "Orange Money",
	ledger.PaymentCash:        "Espèces",
}

var categoryLabels = map[ledger.ExpenseCategory]string{
	ledger.CategoryRent:        "Loyer",
	ledger.CategorySalaries:    "Salaires",
	ledger.CategoryIngredients: "Ingrédients",
	ledger.CategoryUtilities:   "Services publics (eau, électricité)",
	ledger.CategoryTransport:   "Transport",
	ledger.CategoryMarketing:   "Marketing",
	ledger.CategoryOthers:      "Autres",
}

var typeLabels = map[ledger.RestaurantType]string{
	ledger.RestaurantTypeRestaurant: "Restaurant",
	ledger.RestaurantTypeFastFood:   "Fast Food",
	ledger.RestaurantTypeCafe:       "Café",
	ledger.RestaurantTypeBar:        "Bar",
	ledger.RestaurantTypeOther:      "Autre",
}

// PaymentLabel returns the display name of m, or m itself when unknown.
func PaymentLabel(m ledger.PaymentMethod) string {
	if l, ok := paymentLabels[m]; ok {
		return l
	}

	return string(m)
}

func CategoryLabel(c ledger.ExpenseCategory) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}

	return string(c)
}

func TypeLabel(t ledger.RestaurantType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}

	return string(t)
}
