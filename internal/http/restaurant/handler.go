package restaurant

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/http/render"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type Handler struct {
	svc  *ledger.Service
	form *entry.Form
}

func NewHandler(svc *ledger.Service, form *entry.Form) *Handler {
	return &Handler{svc: svc, form: form}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/", h.setup)
	r.Delete("/", h.reset)
}

type restaurantResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Location  string                `json:"location"`
	Type      ledger.RestaurantType `json:"type"`
	TypeLabel string                `json:"typeLabel"`
	Currency  string                `json:"currency"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func toResponse(r ledger.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Type:      r.Type,
		TypeLabel: entry.TypeLabel(r.Type),
		Currency:  r.Currency,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	rest, ok := h.svc.Restaurant()
	if !ok {
		render.SetupRequired(w)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rest))
}

// setup creates the profile, or edits it when one already exists.
func (h *Handler) setup(w http.ResponseWriter, r *http.Request) {
	var req entry.RestaurantInput
	if !render.Decode(w, r, &req) {
		return
	}

	var current *ledger.Restaurant
	if rest, ok := h.svc.Restaurant(); ok {
		current = &rest
	}

	rest, err := h.form.Restaurant(req, current)
	if err != nil {
		render.Err(w, r, err)
		return
	}

	if err := h.svc.SetRestaurant(r.Context(), rest); err != nil {
		render.Err(w, r, err)
		return
	}

	status := http.StatusCreated
	if current != nil {
		status = http.StatusOK
	}

	render.JSON(w, status, toResponse(rest))
}

// reset wipes the profile and every recorded revenue and expense.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		render.Err(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
