package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MWhitfield89/strata/internal/http/levy"
	"github.com/MWhitfield89/strata/internal/http/roll"
)

func New(
	levyV1 *levy.Handler,
	rollV1 *roll.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/levy-runs", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			levyV1.RunRoutes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			levyV1.InvoiceRoutes(r)
		})

		r.Route("/roll", rollV1.Routes)
	})

	return router
}
