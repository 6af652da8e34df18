package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/tripshield/backend/internal/api/handlers"
	mw "github.com/tripshield/backend/internal/api/middleware"
	"github.com/tripshield/backend/internal/session"
)

type Dependencies struct {
	Sessions         session.Store
	AdminHandler     *handlers.AdminHandler
	TouristsHandler  *handlers.TouristsHandler
	AlertsHandler    *handlers.AlertsHandler
	UsersHandler     *handlers.UsersHandler
	UsageLogsHandler *handlers.UsageLogsHandler
	StatsHandler     *handlers.StatsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/admin", func(admin chi.Router) {
		admin.Post("/login", dep.AdminHandler.Login)
		admin.Post("/logout", dep.AdminHandler.Logout)
		admin.With(mw.RequireSession(dep.Sessions)).Get("/me", dep.AdminHandler.Me)

		admin.Route("/tourist", func(tr chi.Router) {
			tr.Post("/", dep.TouristsHandler.Create)
			tr.Get("/", dep.TouristsHandler.List)
			tr.Get("/{id}", dep.TouristsHandler.Get)
			tr.Get("/{id}/alerts", dep.TouristsHandler.ListAlerts)
			tr.Put("/{id}", dep.TouristsHandler.Update)
			tr.Delete("/{id}", dep.TouristsHandler.Delete)
		})

		admin.Route("/alerts", func(ar chi.Router) {
			ar.Post("/", dep.AlertsHandler.Create)
			ar.Get("/", dep.AlertsHandler.List)
			ar.Get("/{id}", dep.AlertsHandler.Get)
			ar.Put("/{id}", dep.AlertsHandler.Update)
			ar.Delete("/{id}", dep.AlertsHandler.Delete)
		})

		admin.Route("/users", func(ur chi.Router) {
			ur.Post("/", dep.UsersHandler.Create)
			ur.Get("/", dep.UsersHandler.List)
			ur.Get("/{id}", dep.UsersHandler.Get)
			ur.Put("/{id}", dep.UsersHandler.Update)
			ur.Delete("/{id}", dep.UsersHandler.Delete)
		})

		admin.Route("/usage-logs", func(lr chi.Router) {
			lr.Post("/", dep.UsageLogsHandler.Create)
			lr.Get("/", dep.UsageLogsHandler.List)
			// Fixed segments go before the id match so chi does not
			// swallow /stats/... or /cleanup/... as ids.
			lr.Get("/stats/actions", dep.UsageLogsHandler.StatsActions)
			lr.Get("/stats/users", dep.UsageLogsHandler.StatsUsers)
			lr.Delete("/cleanup/old", dep.UsageLogsHandler.Cleanup)
			lr.Get("/{id}", dep.UsageLogsHandler.Get)
			lr.Delete("/{id}", dep.UsageLogsHandler.Delete)
		})

		admin.Route("/stats", func(sr chi.Router) {
			sr.Get("/tourists", dep.StatsHandler.Tourists)
			sr.Get("/alerts", dep.StatsHandler.Alerts)
			sr.Get("/usage", dep.StatsHandler.Usage)
			sr.Get("/overview", dep.StatsHandler.Overview)
			sr.Get("/users", dep.StatsHandler.Users)
		})
	})

	return r
}
