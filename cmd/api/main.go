package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/placebi/internal/config"
	"github.com/MrJamesThe3rd/placebi/internal/entry"
	placebiHttp "github.com/MrJamesThe3rd/placebi/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/placebi/internal/http/dashboard"
	expenseHandler "github.com/MrJamesThe3rd/placebi/internal/http/expense"
	restaurantHandler "github.com/MrJamesThe3rd/placebi/internal/http/restaurant"
	revenueHandler "github.com/MrJamesThe3rd/placebi/internal/http/revenue"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
	"github.com/MrJamesThe3rd/placebi/internal/ledger/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so that deferred cleanup always happens.
func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	repo, closeRepo, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	defer closeRepo()

	svc := ledger.NewService(repo)

	if err := svc.Load(ctx); err != nil {
		slog.Warn("failed to load saved state, starting empty", "error", err)
	}

	form := entry.NewForm()

	var (
		restaurantH = restaurantHandler.NewHandler(svc, form)
		revenueH    = revenueHandler.NewHandler(svc, form)
		expenseH    = expenseHandler.NewHandler(svc, form)
		dashboardH  = dashboardHandler.NewHandler(svc, form.Location())
	)

	router := placebiHttp.New(cfg.Server.CORSOrigins, svc, restaurantH, revenueH, expenseH, dashboardH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", server.Addr, "storage", cfg.Storage.Backend)

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}
