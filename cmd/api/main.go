package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/MWhitfield89/strata/internal/config"
	"github.com/MWhitfield89/strata/internal/database"
	"github.com/MWhitfield89/strata/internal/entitlement"
	rollStore "github.com/MWhitfield89/strata/internal/entitlement/store"
	strataHttp "github.com/MWhitfield89/strata/internal/http"
	levyHandler "github.com/MWhitfield89/strata/internal/http/levy"
	rollHandler "github.com/MWhitfield89/strata/internal/http/roll"
	"github.com/MWhitfield89/strata/internal/importer"
	"github.com/MWhitfield89/strata/internal/issuance"
	"github.com/MWhitfield89/strata/internal/levy"
	levyStore "github.com/MWhitfield89/strata/internal/levy/store"
	"github.com/MWhitfield89/strata/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		runStore = levyStore.New(db)
		lotStore = rollStore.New(db)

		rollService     = entitlement.NewService(lotStore)
		levyService     = levy.NewService(runStore, rollService)
		mailer          = notify.NewMailer(cfg.Mailer.BaseURL, cfg.Mailer.APIKey, cfg.Mailer.From)
		issuanceService = issuance.NewService(runStore, mailer, cfg.Dispatch.Workers)
		importService   = importer.NewService()
	)

	var (
		levyH = levyHandler.NewHandler(levyService, issuanceService)
		rollH = rollHandler.NewHandler(importService, rollService)
	)

	router := strataHttp.New(levyH, rollH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
