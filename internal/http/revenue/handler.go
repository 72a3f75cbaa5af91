package revenue

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/http/params"
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
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req entry.RevenueInput
	if !render.Decode(w, r, &req) {
		return
	}

	rest, ok := h.svc.Restaurant()
	if !ok {
		render.SetupRequired(w)
		return
	}

	rev, err := h.form.Revenue(req, rest.ID)
	if err != nil {
		render.Err(w, r, err)
		return
	}

	if err := h.svc.AddRevenue(r.Context(), rev); err != nil {
		render.Err(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(rev))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	start, end, err := params.DayRange(r, h.form.Location())
	if err != nil {
		render.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(h.svc.RevenuesBetween(start, end)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rev, err := h.svc.Revenue(chi.URLParam(r, "id"))
	if err != nil {
		render.Err(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rev))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.svc.Revenue(id); err != nil {
		render.Err(w, r, err)
		return
	}

	var req entry.RevenueUpdate
	if !render.Decode(w, r, &req) {
		return
	}

	patch, err := h.form.RevenuePatch(req)
	if err != nil {
		render.Err(w, r, err)
		return
	}

	if err := h.svc.UpdateRevenue(r.Context(), id, patch); err != nil {
		render.Err(w, r, err)
		return
	}

	rev, err := h.svc.Revenue(id)
	if err != nil {
		render.Err(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rev))
}

// delete answers 204 even for unknown ids.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRevenue(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Err(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
