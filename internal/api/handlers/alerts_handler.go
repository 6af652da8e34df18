package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tripshield/backend/internal/api/types"
	"github.com/tripshield/backend/internal/api/validators"
	"github.com/tripshield/backend/internal/models"
	"github.com/tripshield/backend/internal/repository"
)

type AlertsHandler struct {
	repo     repository.AlertRepository
	validate *validator.Validate
}

func NewAlertsHandler(repo repository.AlertRepository, v *validator.Validate) *AlertsHandler {
	return &AlertsHandler{repo: repo, validate: v}
}

func (h *AlertsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.AlertCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, validators.Message(err))
		return
	}

	status := models.AlertStatus(req.Status)
	if status == "" {
		status = models.AlertActive
	}

	a := models.Alert{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		TouristID:   req.TouristID,
		CreatedByID: req.CreatedByID,
	}
	if err := h.repo.Create(r.Context(), &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Alert created", "alert": a})
}

func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.AlertStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeErrorStr(w, http.StatusBadRequest, "status must be one of ACTIVE ONGOING RESOLVED")
		return
	}

	alerts, err := h.repo.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

func (h *AlertsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Alert not found")
		return
	}

	var a models.Alert
	if err := h.repo.GetDetailed(r.Context(), id, &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alert": a})
}

func (h *AlertsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Alert not found")
		return
	}

	var req types.AlertUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, validators.Message(err))
		return
	}

	if err := h.repo.UpdateFields(r.Context(), id, req.Fields()); err != nil {
		writeError(w, err)
		return
	}

	var a models.Alert
	if err := h.repo.GetDetailed(r.Context(), id, &a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Alert updated", "alert": a})
}

func (h *AlertsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Alert not found")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Alert deleted"})
}
