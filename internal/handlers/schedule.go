package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sitecheckhq/sitecheck/internal/models"
	"github.com/sitecheckhq/sitecheck/internal/repo"
)

// ScheduleHandler serves recurring-inspection schedule endpoints. Audit is
// optional; when set, mutations are written to the audit log.
type ScheduleHandler struct {
	Repo  *repo.ScheduleRepo
	Audit *repo.AuditRepo
}

type scheduleInput struct {
	OrgID         int    `json:"org_id" validate:"required,min=1"`
	SiteID        int    `json:"site_id" validate:"required,min=1"`
	TemplateID    *int   `json:"template_id"`
	AssetIDs      []int  `json:"asset_ids"`
	LegacyAssetID *int   `json:"legacy_asset_id"`
	Frequency     string `json:"frequency" validate:"required"`
	StartDate     string `json:"start_date" validate:"required"`
	Active        *bool  `json:"active"`
}

// toModel validates the domain constraints that struct tags cannot express
// and returns the field-level problems found.
func (in *scheduleInput) toModel() (models.Schedule, map[string]string) {
	fields := map[string]string{}

	if !models.ValidFrequency(in.Frequency) {
		fields["frequency"] = "must be one of: daily, weekly, monthly, quarterly, annual"
	}

	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		fields["start_date"] = "must be a date in YYYY-MM-DD form"
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	return models.Schedule{
		OrgID:         in.OrgID,
		SiteID:        in.SiteID,
		TemplateID:    in.TemplateID,
		AssetIDs:      in.AssetIDs,
		LegacyAssetID: in.LegacyAssetID,
		Frequency:     in.Frequency,
		StartDate:     start,
		Active:        active,
	}, fields
}

//
// ==========================
// List Schedules
// ==========================
//

func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	schedules, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, "failed to fetch schedules", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

//
// ==========================
// Get Schedule By ID
// ==========================
//

func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	schedule, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if schedule == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

//
// ==========================
// Create Schedule
// ==========================
//

func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, fields := input.toModel()
	if len(fields) > 0 {
		JSONValidationError(w, "invalid schedule", fields, http.StatusBadRequest)
		return
	}

	created, err := h.Repo.Create(r.Context(), s)
	if err != nil {
		JSONError(w, "failed to create schedule", http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		// Audit failures must not fail the request.
		_ = h.Audit.Log(r.Context(), requestUserID(r), "schedule.create", "schedule", created.ID, created.Frequency)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

//
// ==========================
// Update Schedule
// ==========================
//

func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	var input scheduleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, fields := input.toModel()
	if len(fields) > 0 {
		JSONValidationError(w, "invalid schedule", fields, http.StatusBadRequest)
		return
	}

	if err := h.Repo.Update(r.Context(), id, s); err != nil {
		JSONError(w, "failed to update schedule", http.StatusInternalServerError)
		return
	}

	updated, err := h.Repo.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		JSONError(w, "schedule not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

//
// ==========================
// Deactivate Schedule (DELETE keeps the row; generation just stops)
// ==========================
//

func (h *ScheduleHandler) DeactivateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Deactivate(r.Context(), id); err != nil {
		JSONError(w, "failed to deactivate schedule", http.StatusInternalServerError)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), requestUserID(r), "schedule.deactivate", "schedule", id, "")
	}

	w.WriteHeader(http.StatusNoContent)
}
