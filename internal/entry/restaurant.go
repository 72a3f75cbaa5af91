package entry

import (
	"strings"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
	"github.com/MrJamesThe3rd/placebi/internal/money"
)

type RestaurantInput struct {
	Name     string                `json:"name" validate:"required,max=120"`
	Location string                `json:"location" validate:"required,max=120"`
	Type     ledger.RestaurantType `json:"type" validate:"omitempty,oneof=restaurant fast_food cafe bar other"`
	Currency string                `json:"currency"`
}

// Restaurant validates the setup form. Name and location are trimmed and
// required. Type defaults to restaurant and currency to XOF. When current is
// non-nil the profile is edited in place, keeping its id and creation time.
func (f *Form) Restaurant(in RestaurantInput, current *ledger.Restaurant) (ledger.Restaurant, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)

	if in.Type == "" {
		in.Type = ledger.RestaurantTypeRestaurant
	}

	errs := FieldErrors{}
	f.check(in, errs)

	currency := money.DefaultCurrency
	if strings.TrimSpace(in.Currency) != "" {
		code, err := money.ParseCurrency(in.Currency)
		if err != nil {
			errs["currency"] = "Devise inconnue"
		}

		currency = code
	}

	if len(errs) > 0 {
		return ledger.Restaurant{}, errs
	}

	now := f.now()

	r := ledger.Restaurant{
		ID:        f.newID(),
		Name:      in.Name,
		Location:  in.Location,
		Type:      in.Type,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if current != nil {
		r.ID = current.ID
		r.CreatedAt = current.CreatedAt
	}

	return r, nil
}
