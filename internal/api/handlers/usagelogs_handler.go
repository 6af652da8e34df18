package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/tripshield/backend/internal/api/types"
	"github.com/tripshield/backend/internal/api/validators"
	"github.com/tripshield/backend/internal/models"
	"github.com/tripshield/backend/internal/repository"
)

type UsageLogsHandler struct {
	repo     repository.UsageLogRepository
	validate *validator.Validate
	// retentionDays is the cleanup cutoff used when the caller omits ?days.
	retentionDays int
}

func NewUsageLogsHandler(repo repository.UsageLogRepository, v *validator.Validate, retentionDays int) *UsageLogsHandler {
	return &UsageLogsHandler{repo: repo, validate: v, retentionDays: retentionDays}
}

func (h *UsageLogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.UsageLogCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, validators.Message(err))
		return
	}

	log := models.UsageLog{
		Action: req.Action,
		UserID: req.UserID,
	}
	if len(req.Metadata) > 0 {
		log.Metadata = datatypes.JSON(req.Metadata)
	}
	if err := h.repo.Create(r.Context(), &log); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Usage log created successfully", "log": log})
}

func (h *UsageLogsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := repository.UsageLogListQuery{
		Action: r.URL.Query().Get("action"),
	}
	if s := r.URL.Query().Get("userId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeErrorStr(w, http.StatusBadRequest, "userId must be a valid id")
			return
		}
		q.UserID = &id
	}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if q.Offset < 0 {
		q.Offset = 0
	}

	logs, total, err := h.repo.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logs":       logs,
		"pagination": types.NewPagination(total, repository.ClampUsageLogLimit(q.Limit), q.Offset),
	})
}

func (h *UsageLogsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Usage log not found")
		return
	}

	var log models.UsageLog
	if err := h.repo.GetByID(r.Context(), id, &log); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"log": log})
}

func (h *UsageLogsHandler) StatsActions(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.CountByAction(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"actionStats": stats})
}

func (h *UsageLogsHandler) StatsUsers(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.CountByUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userStats": stats})
}

func (h *UsageLogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "Usage log not found")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Usage log deleted successfully"})
}

func (h *UsageLogsHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	days := h.retentionDays
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeErrorStr(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := h.repo.DeleteOlderThan(r.Context(), cutoff)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("Cleaned up %d usage logs older than %d days", deleted, days),
		"deletedCount": deleted,
	})
}
