// Package entry turns user input from the setup, revenue and expense forms into
// ledger records. Nothing is committed here; callers pass the result to ledger.Service.
package entry

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldErrors maps a form field to a message meant for the person filling the form.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(e))

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}

	return "invalid input: " + strings.Join(parts, "; ")
}

// AsFieldErrors reports whether err carries field errors and returns them.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}

	return nil, false
}

// Form builds ledger records from validated input.
type Form struct {
	validate *validator.Validate
	now      func() time.Time
	loc      *time.Location
	newID    func() string
}

type Option func(*Form)

func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// WithLocation sets the location used to read YYYY-MM-DD dates.
func WithLocation(loc *time.Location) Option {
	return func(f *Form) {
		f.loc = loc
	}
}

func NewForm(opts ...Option) *Form {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	f := &Form{
		validate: v,
		now:      time.Now,
		loc:      time.Local,
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Location is where form dates are read.
func (f *Form) Location() *time.Location {
	return f.loc
}

// check runs the struct validation and converts failures into FieldErrors keyed
// by JSON path, e.g. "paymentMethods[1].method".
func (f *Form) check(in any, errs FieldErrors) {
	err := f.validate.Struct(in)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return
	}

	for _, fe := range verrs {
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		if _, dup := errs[field]; !dup {
			errs[field] = message(fe)
		}
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est requis"
	case "oneof":
		return "Valeur non reconnue"
	case "datetime":
		return "Date invalide, format attendu AAAA-MM-JJ"
	case "max":
		return "Texte trop long"
	}

	return "Valeur invalide"
}

// Today is midnight of the current day in the form's location.
func (f *Form) Today() time.Time {
	y, m, d := f.now().In(f.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, f.loc)
}

// date reads a YYYY-MM-DD value at midnight in the form's location. An empty
// value means today.
func (f *Form) date(s string) time.Time {
	if s == "" {
		return f.Today()
	}

	// Format already checked by the datetime tag.
	t, _ := time.ParseInLocation(time.DateOnly, s, f.loc)

	return t
}

func positive(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsPositive()
}

// ParseDay reads a YYYY-MM-DD query value at midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t, nil
}
