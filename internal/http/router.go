package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/placebi/internal/http/dashboard"
	"github.com/MrJamesThe3rd/placebi/internal/http/expense"
	"github.com/MrJamesThe3rd/placebi/internal/http/render"
	"github.com/MrJamesThe3rd/placebi/internal/http/restaurant"
	"github.com/MrJamesThe3rd/placebi/internal/http/revenue"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
	"github.com/MrJamesThe3rd/placebi/internal/metrics"
)

// ProfileSource tells whether the restaurant profile exists.
type ProfileSource interface {
	Restaurant() (ledger.Restaurant, bool)
}

func New(
	allowedOrigins []string,
	profiles ProfileSource,
	restaurantV1 *restaurant.Handler,
	revenuesV1 *revenue.Handler,
	expensesV1 *expense.Handler,
	dashboardV1 *dashboard.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/restaurant", restaurantV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(RequireRestaurant(profiles))

			r.Route("/revenues", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				revenuesV1.Routes(r)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})

			r.Route("/dashboard", dashboardV1.Routes)
		})
	})

	return router
}

// RequireRestaurant answers 409 with a redirect to setup until a profile exists.
func RequireRestaurant(profiles ProfileSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := profiles.Restaurant(); !ok {
				render.SetupRequired(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
