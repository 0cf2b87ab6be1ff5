package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sitecheckhq/sitecheck/internal/models"
	"github.com/sitecheckhq/sitecheck/internal/repo"
)

// TemplateHandler serves check template endpoints.
type TemplateHandler struct {
	Repo *repo.TemplateRepo
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Repo.List(r.Context())
	if err != nil {
		JSONError(w, "failed to fetch templates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}

func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid template id", http.StatusBadRequest)
		return
	}

	tpl, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if tpl == nil {
		JSONError(w, "template not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tpl)
}

func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		OrgID          int     `json:"org_id" validate:"required,min=1"`
		Name           string  `json:"name" validate:"required,min=2,max=255"`
		AssignStrategy *string `json:"assign_strategy"`
	}

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
	if input.AssignStrategy != nil {
		switch *input.AssignStrategy {
		case models.StrategyRotate, models.StrategyAll:
		default:
			JSONValidationError(w, "invalid template", map[string]string{
				"assign_strategy": "must be one of: rotate, all",
			}, http.StatusBadRequest)
			return
		}
	}

	tpl, err := h.Repo.Create(r.Context(), input.OrgID, input.Name, input.AssignStrategy)
	if err != nil {
		JSONError(w, "failed to create template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tpl)
}
