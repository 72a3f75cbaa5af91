package dashboard

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/finance"
	"github.com/MrJamesThe3rd/placebi/internal/http/render"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
	"github.com/MrJamesThe3rd/placebi/internal/metrics"
)

type Handler struct {
	svc *ledger.Service
	loc *time.Location
	now func() time.Time
}

type Option func(*Handler)

func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func NewHandler(svc *ledger.Service, loc *time.Location, opts ...Option) *Handler {
	h := &Handler{svc: svc, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rest, ok := h.svc.Restaurant()
	if !ok {
		render.SetupRequired(w)
		return
	}

	now := h.now().In(h.loc)

	period := finance.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = finance.PeriodThisMonth
	}

	start, end, err := h.rangeFor(r, period, now)
	if err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := finance.Dashboard(h.svc.Snapshot(), start, end, now)
	if err != nil {
		render.Err(w, r, err)
		return
	}

	metrics.ObserveDashboard(string(period))

	render.JSON(w, http.StatusOK, toResponse(period, rest.Currency, view))
}

func (h *Handler) rangeFor(r *http.Request, period finance.Period, now time.Time) (time.Time, time.Time, error) {
	if !period.Valid() {
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}

	if period != finance.PeriodCustom {
		return finance.PeriodRange(period, now)
	}

	q := r.URL.Query()

	from, err := entry.ParseDay(q.Get("start_date"), h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
	}

	to, err := entry.ParseDay(q.Get("end_date"), h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
	}

	return finance.CustomRange(finance.DayOf(from), finance.DayOf(to), h.loc)
}
