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

type TouristsHandler struct {
	repo     repository.TouristRepository
	alerts   repository.AlertRepository
	validate *validator.Validate
}

func NewTouristsHandler(repo repository.TouristRepository, alerts repository.AlertRepository, v *validator.Validate) *TouristsHandler {
	return &TouristsHandler{repo: repo, alerts: alerts, validate: v}
}

func (h *TouristsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.TouristCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, validators.Message(err))
		return
	}

	t := models.Tourist{
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
		Aadhaar:  req.Aadhaar,
	}
	if err := h.repo.Create(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Tourist created", "tourist": t})
}

func (h *TouristsHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	location := r.URL.Query().Get("location")

	tourists, err := h.repo.List(r.Context(), search, location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tourists": tourists})
}

func (h *TouristsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Tourist not found")
		return
	}

	var t models.Tourist
	if r.URL.Query().Get("includeAlerts") == "true" {
		err = h.repo.GetWithAlerts(r.Context(), id, &t)
	} else {
		err = h.repo.GetByID(r.Context(), id, &t)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tourist": t})
}

func (h *TouristsHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Tourist not found")
		return
	}

	status := models.AlertStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeErrorStr(w, http.StatusBadRequest, "status must be one of ACTIVE ONGOING RESOLVED")
		return
	}

	var t models.Tourist
	if err := h.repo.GetByID(r.Context(), id, &t); err != nil {
		writeError(w, err)
		return
	}

	alerts, err := h.alerts.ListByTourist(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

func (h *TouristsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Tourist not found")
		return
	}

	var req types.TouristUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.repo.UpdateFields(r.Context(), id, req.Fields()); err != nil {
		writeError(w, err)
		return
	}

	var t models.Tourist
	if err := h.repo.GetByID(r.Context(), id, &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Tourist updated", "tourist": t})
}

func (h *TouristsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Tourist not found")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tourist deleted successfully"})
}
