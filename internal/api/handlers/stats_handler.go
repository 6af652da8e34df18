package handlers

import (
	"net/http"
	"strconv"

	"github.com/tripshield/backend/internal/services"
)

type StatsHandler struct {
	stats services.StatsService
}

func NewStatsHandler(stats services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Tourists(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.TouristStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.AlertStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) Usage(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.stats.UsageSnapshot(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) Users(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.UserStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
