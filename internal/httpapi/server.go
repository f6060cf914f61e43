/*
server.go - HTTP router and middleware configuration

ROUTER: chi, with go-chi/cors for browser clients.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, echoed in logs
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. logRequests: One slog line per request
  4. CORS:       Cross-origin requests for a frontend

ROUTE GROUPS:
  /api/employees/*   Employees and their ratings
  /api/employers/*   Employers
  /api/tests/*       Skill tests
  /api/activity/*    Activity feed
  /api/state         Introspection of the console

SECURITY NOTE:
  No authentication. The console is single-tenant and meant for a local
  machine; bind it to 127.0.0.1 unless a proxy guards it.
*/
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORSOptions configures the CORS middleware.
type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int // seconds
}

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, c CORSOptions) *chi.Mux {
	origins := c.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests(h.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         c.MaxAge,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Patch("/{id}", h.UpdateEmployee)
			r.Post("/{id}/ratings", h.RateEmployee)
		})

		r.Route("/employers", func(r chi.Router) {
			r.Get("/", h.ListEmployers)
			r.Post("/", h.CreateEmployer)
			r.Get("/{id}", h.GetEmployer)
			r.Patch("/{id}", h.UpdateEmployer)
			r.Delete("/{id}", h.DeleteEmployer)
		})

		r.Route("/tests", func(r chi.Router) {
			r.Get("/", h.ListTests)
			r.Post("/", h.CreateTest)
			r.Get("/{id}", h.GetTest)
			r.Patch("/{id}", h.UpdateTest)
			r.Delete("/{id}", h.DeleteTest)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Get("/", h.ListActivity)
			r.Post("/", h.LogActivity)
			r.Delete("/", h.ClearActivity)
			r.Get("/summary", h.ActivitySummary)
		})

		r.Get("/state", h.GetState)
	})

	return r
}

// logRequests writes one line per request to logger.
func logRequests(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
