package ledger

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")
	ErrPersist  = errors.New("persisting state")
)

// RestaurantType is the kind of establishment chosen at setup.
type RestaurantType string

const (
	RestaurantTypeRestaurant RestaurantType = "restaurant"
	RestaurantTypeFastFood   RestaurantType = "fast_food"
	RestaurantTypeCafe       RestaurantType = "cafe"
	RestaurantTypeBar        RestaurantType = "bar"
	RestaurantTypeOther      RestaurantType = "other"
)

var RestaurantTypes = []RestaurantType{
	RestaurantTypeRestaurant,
	RestaurantTypeFastFood,
	RestaurantTypeCafe,
	RestaurantTypeBar,
	RestaurantTypeOther,
}

func (t RestaurantType) Valid() bool {
	switch t {
	case RestaurantTypeRestaurant, RestaurantTypeFastFood, RestaurantTypeCafe, RestaurantTypeBar, RestaurantTypeOther:
		return true
	}

	return false
}

// PaymentMethod is how a customer paid.
type PaymentMethod string

const (
	PaymentWave        PaymentMethod = "wave"
	PaymentOrangeMoney PaymentMethod = "orange_money"
	PaymentCash        PaymentMethod = "cash"
)

// PaymentMethods lists the methods in the fixed order used by every breakdown.
var PaymentMethods = []PaymentMethod{PaymentWave, PaymentOrangeMoney, PaymentCash}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentWave, PaymentOrangeMoney, PaymentCash:
		return true
	}

	return false
}

// ExpenseCategory classifies a detailed expense line.
type ExpenseCategory string

const (
	CategoryRent        ExpenseCategory = "rent"
	CategorySalaries    ExpenseCategory = "salaries"
	CategoryIngredients ExpenseCategory = "ingredients"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategoryTransport   ExpenseCategory = "transport"
	CategoryMarketing   ExpenseCategory = "marketing"
	CategoryOthers      ExpenseCategory = "others"
)

var ExpenseCategories = []ExpenseCategory{
	CategoryRent,
	CategorySalaries,
	CategoryIngredients,
	CategoryUtilities,
	CategoryTransport,
	CategoryMarketing,
	CategoryOthers,
}

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryRent, CategorySalaries, CategoryIngredients, CategoryUtilities,
		CategoryTransport, CategoryMarketing, CategoryOthers:
		return true
	}

	return false
}

// Restaurant is the single profile of the installation.
type Restaurant struct {
	ID        string
	Name      string
	Location  string
	Type      RestaurantType
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentLine is the part of a day's revenue paid with one method.
type PaymentLine struct {
	ID     string
	Method PaymentMethod
	Amount decimal.Decimal
}

// DailyRevenue is one revenue entry. TotalAmount is not reconciled with the payment lines.
type DailyRevenue struct {
	ID             string
	RestaurantID   string
	Date           time.Time
	TotalAmount    decimal.Decimal
	PaymentMethods []PaymentLine
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpenseLine is one categorized part of a detailed expense.
type ExpenseLine struct {
	ID       string
	Category ExpenseCategory
	Amount   decimal.Decimal
}

// DailyExpense is one expense entry. ExpenseLines is only set when IsDetailed.
type DailyExpense struct {
	ID           string
	RestaurantID string
	Date         time.Time
	TotalAmount  decimal.Decimal
	IsDetailed   bool
	ExpenseLines []ExpenseLine
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RevenuePatch holds the fields to merge into an existing revenue. Nil fields are left untouched.
type RevenuePatch struct {
	Date           *time.Time
	TotalAmount    *decimal.Decimal
	PaymentMethods []PaymentLine
	Notes          *string
}

// ExpensePatch holds the fields to merge into an existing expense. Nil fields are left untouched.
type ExpensePatch struct {
	Date         *time.Time
	TotalAmount  *decimal.Decimal
	IsDetailed   *bool
	ExpenseLines []ExpenseLine
	Notes        *string
}

func (r DailyRevenue) clone() DailyRevenue {
	r.PaymentMethods = slices.Clone(r.PaymentMethods)
	return r
}

func (e DailyExpense) clone() DailyExpense {
	e.ExpenseLines = slices.Clone(e.ExpenseLines)
	return e
}
