package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sitecheckhq/sitecheck/internal/generator"
	"github.com/sitecheckhq/sitecheck/internal/repo"
)

// GenerateHandler exposes on-demand task generation. The same code path the
// cron runner uses backs both endpoints, so a manual trigger and a scheduled
// pass always agree on what gets created.
type GenerateHandler struct {
	Schedules *repo.ScheduleRepo
	Generator *generator.Service
	Audit     *repo.AuditRepo
}

// GenerateForSchedule runs generation for a single schedule.
// POST /schedules/{id}/generate?lookahead_days=30
func (h *GenerateHandler) GenerateForSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	lookahead := 0
	if l := r.URL.Query().Get("lookahead_days"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val <= 0 || val > 365 {
			JSONError(w, "lookahead_days must be between 1 and 365", http.StatusBadRequest)
			return
		}
		lookahead = val
	}

	schedule, err := h.Schedules.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if schedule == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}
	if !schedule.Active {
		JSONError(w, "schedule is not active", http.StatusConflict)
		return
	}

	created, err := h.Generator.RunSchedule(r.Context(), *schedule, lookahead)
	if err != nil {
		JSONError(w, "generation failed", http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), requestUserID(r), "schedule.generate", "schedule", id,
			strconv.Itoa(created)+" tasks created")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"schedule_id":   id,
		"tasks_created": created,
	})
}

// GenerateAll runs generation for every active schedule and reports the
// per-schedule failures alongside the totals.
// POST /generate
func (h *GenerateHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Generator.RunAll(r.Context())
	if err != nil {
		JSONError(w, "generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
