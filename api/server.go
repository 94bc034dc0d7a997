/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a local frontend

ROUTE GROUPS:
  /api/tick/*           Snapshots and the live stream
  /api/tray             Menubar state
  /api/settings/*       Settings
  /api/vacation         Today's vacation
  /api/schedule/*       Today's schedule override
  /api/work-completed/* Completion acknowledgement
  /api/pay-period/*     Pay period view and CSV export
  /api/recovery/*       Raw recovery documents

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080", "tauri://localhost"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/tick", func(r chi.Router) {
			r.Get("/", h.GetTick)
			r.Get("/stream", h.StreamTicks)
		})
		r.Get("/tray", h.GetTray)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.PutSettings)
			r.Post("/reset", h.ResetSettings)
		})

		r.Route("/vacation", func(r chi.Router) {
			r.Get("/", h.GetVacation)
			r.Post("/", h.SetVacation)
			r.Delete("/", h.ClearVacation)
		})

		r.Route("/schedule/today", func(r chi.Router) {
			r.Get("/", h.GetTodaySchedule)
			r.Put("/", h.SetTodaySchedule)
			r.Delete("/", h.ClearTodaySchedule)
		})

		r.Route("/work-completed/ack", func(r chi.Router) {
			r.Get("/", h.GetWorkCompletedAck)
			r.Post("/", h.AckWorkCompleted)
		})

		r.Route("/pay-period", func(r chi.Router) {
			r.Get("/", h.GetPayPeriod)
			r.Get("/days.csv", h.ExportPayPeriodDays)
		})

		r.Route("/recovery", func(r chi.Router) {
			r.Get("/{name}", h.GetRecovery)
			r.Put("/{name}", h.PutRecovery)
			r.Delete("/{name}", h.DeleteRecovery)
		})
	})

	return r
}
