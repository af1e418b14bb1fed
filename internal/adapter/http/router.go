package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/handler"
	"github.com/khrisnaSoluix/lending-engine/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LoanHandler     *handler.LoanHandler
	TransferHandler *handler.TransferHandler
	ScheduleHandler *handler.ScheduleHandler
	HealthHandler   *handler.HealthHandler
	RateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Loan accounts
		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Open)
			r.Get("/", cfg.LoanHandler.List)
			r.Get("/{id}", cfg.LoanHandler.Get)
			r.Get("/{id}/balances", cfg.LoanHandler.Balances)
			r.Get("/{id}/derived", cfg.LoanHandler.Derived)
			r.Get("/{id}/postings", cfg.LoanHandler.Postings)
			r.Put("/{id}/parameters", cfg.LoanHandler.UpdateParameters)
			r.Post("/{id}/flags", cfg.LoanHandler.AddFlag)
			r.Post("/{id}/close", cfg.LoanHandler.Close)
			r.Post("/{id}/write-off", cfg.LoanHandler.WriteOff)
		})

		// Transfers
		r.Post("/transfers", cfg.TransferHandler.Submit)

		// Schedule sweep
		r.Post("/schedules/run", cfg.ScheduleHandler.Run)
	})

	return r
}
