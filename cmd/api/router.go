package main

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sitecheckhq/sitecheck/internal/config"
	"github.com/sitecheckhq/sitecheck/internal/generator"
	"github.com/sitecheckhq/sitecheck/internal/handlers"
	"github.com/sitecheckhq/sitecheck/internal/middleware"
	"github.com/sitecheckhq/sitecheck/internal/repo"
)

// maxRequestBody caps request bodies at 1 MiB. Generation endpoints take no
// body and every other payload is small JSON.
const maxRequestBody = 1 << 20

// newRouter builds the full API router over an already-connected database.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.MaxBytes(maxRequestBody))

	gen := generator.New(database, cfg.LookaheadDays)

	auth := &handlers.AuthHandler{UserRepo: repo.NewUserRepo(database), Secret: []byte(cfg.JWTSecret)}
	assets := &handlers.AssetHandler{Repo: repo.NewAssetRepo(database)}
	auditRepo := repo.NewAuditRepo(database)
	schedules := &handlers.ScheduleHandler{Repo: repo.NewScheduleRepo(database), Audit: auditRepo}
	tasks := &handlers.TaskHandler{Repo: repo.NewTaskRepo(database)}
	templates := &handlers.TemplateHandler{Repo: repo.NewTemplateRepo(database)}
	audit := &handlers.AuditHandler{Repo: auditRepo}
	generate := &handlers.GenerateHandler{Schedules: repo.NewScheduleRepo(database), Generator: gen, Audit: auditRepo}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Login and register get a tighter per-IP limit than the rest of the API.
	authLimiter := middleware.AuthRateLimiter(cfg.AuthRateLimitPerMin, cfg.AuthRateLimitBurst)
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware([]byte(cfg.JWTSecret)))

		r.Get("/assets", assets.ListAssets)
		r.Post("/assets", assets.CreateAsset)
		r.Get("/assets/{id}", assets.GetAsset)
		r.Put("/assets/{id}", assets.UpdateAsset)
		r.Delete("/assets/{id}", assets.DeleteAsset)

		r.Get("/templates", templates.ListTemplates)
		r.Post("/templates", templates.CreateTemplate)
		r.Get("/templates/{id}", templates.GetTemplate)

		r.Get("/schedules", schedules.ListSchedules)
		r.Post("/schedules", schedules.CreateSchedule)
		r.Get("/schedules/{id}", schedules.GetSchedule)
		r.Put("/schedules/{id}", schedules.UpdateSchedule)
		r.Delete("/schedules/{id}", schedules.DeactivateSchedule)
		r.Post("/schedules/{id}/generate", generate.GenerateForSchedule)

		r.Post("/generate", generate.GenerateAll)

		r.Get("/tasks", tasks.ListTasks)
		r.Get("/tasks/{id}", tasks.GetTask)
		r.Patch("/tasks/{id}/status", tasks.UpdateTaskStatus)
		r.Patch("/tasks/{id}/assignee", tasks.AssignTask)

		r.Get("/audit", audit.ListAudit)
	})

	return r
}
