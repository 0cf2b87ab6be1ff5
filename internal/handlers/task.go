package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sitecheckhq/sitecheck/internal/models"
	"github.com/sitecheckhq/sitecheck/internal/repo"
)

// TaskHandler serves generated inspection tasks. Tasks are created by the
// generator; the API only lists them and moves them through their lifecycle.
type TaskHandler struct {
	Repo *repo.TaskRepo
}

//
// ==========================
// List Tasks
// ==========================
//

// ListTasks supports filtering by schedule_id, site_id and status.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	limit := 50
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

	var filter repo.TaskFilter
	if s := r.URL.Query().Get("schedule_id"); s != "" {
		val, err := strconv.Atoi(s)
		if err != nil || val <= 0 {
			JSONError(w, "invalid schedule_id", http.StatusBadRequest)
			return
		}
		filter.ScheduleID = val
	}
	if s := r.URL.Query().Get("site_id"); s != "" {
		val, err := strconv.Atoi(s)
		if err != nil || val <= 0 {
			JSONError(w, "invalid site_id", http.StatusBadRequest)
			return
		}
		filter.SiteID = val
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if !models.ValidTaskStatus(s) {
			JSONError(w, "invalid status", http.StatusBadRequest)
			return
		}
		filter.Status = s
	}

	tasks, err := h.Repo.List(r.Context(), filter, limit, offset)
	if err != nil {
		JSONError(w, "failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

//
// ==========================
// Get Task By ID
// ==========================
//

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid task id", http.StatusBadRequest)
		return
	}

	task, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if task == nil {
		JSONError(w, "task not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

//
// ==========================
// Update Task Status
// ==========================
//

func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid task id", http.StatusBadRequest)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !models.ValidTaskStatus(input.Status) {
		JSONValidationError(w, "invalid task", map[string]string{
			"status": "must be one of: pending, in_progress, done, skipped",
		}, http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateStatus(r.Context(), id, input.Status); err != nil {
		JSONError(w, "failed to update task", http.StatusInternalServerError)
		return
	}

	task, err := h.Repo.GetByID(r.Context(), id)
	if err != nil || task == nil {
		JSONError(w, "task not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

//
// ==========================
// Assign Task (assignee_id null clears the assignment)
// ==========================
//

func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid task id", http.StatusBadRequest)
		return
	}

	var input struct {
		AssigneeID *int `json:"assignee_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Assign(r.Context(), id, input.AssigneeID); err != nil {
		JSONError(w, "failed to assign task", http.StatusInternalServerError)
		return
	}

	task, err := h.Repo.GetByID(r.Context(), id)
	if err != nil || task == nil {
		JSONError(w, "task not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}
