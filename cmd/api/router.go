package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/shopper-funnel/internal/infra/http/handlers"
	"github.com/xavierca1/shopper-funnel/internal/infra/http/middleware"
)

type routerDeps struct {
	AllowedOrigins []string
	RegisterLimit  *middleware.RateLimiter
	Applicants     *handlers.ApplicantHandler
	Validation     *handlers.ValidationHandler
	Funnel         *handlers.FunnelHandler
	Seed           *handlers.SeedHandler
	Health         *handlers.HealthHandler
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/funnel.json", d.Funnel.Handle)
	r.Post("/seed_data/{count}", d.Seed.Handle)

	r.Route("/applicants", func(r chi.Router) {
		r.With(d.RegisterLimit.Handler).Post("/", d.Applicants.Register)
		r.Get("/", d.Applicants.Get)
		r.Post("/validate", d.Validation.Handle)
		r.Put("/{email}", d.Applicants.Update)
		r.Patch("/{email}/state", d.Applicants.AdvanceState)
	})

	return r
}
