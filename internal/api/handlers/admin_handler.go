package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tripshield/backend/internal/api/middleware"
	"github.com/tripshield/backend/internal/api/types"
	"github.com/tripshield/backend/internal/models"
	"github.com/tripshield/backend/internal/repository"
	"github.com/tripshield/backend/internal/session"
)

// AdminHandler serves login, logout and the current-user lookup.
type AdminHandler struct {
	users    repository.UserRepository
	sessions session.Store
	ttl      time.Duration
}

func NewAdminHandler(users repository.UserRepository, sessions session.Store, ttl time.Duration) *AdminHandler {
	return &AdminHandler{users: users, sessions: sessions, ttl: ttl}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Email == "" && req.BlockchainID == "" {
		writeErrorStr(w, http.StatusBadRequest, "Provide email or blockchainId")
		return
	}
	if req.BlockchainID != "" && req.Email == "" {
		writeErrorStr(w, http.StatusNotImplemented, "blockchainId login not implemented")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u models.User
	if err := h.users.GetByEmail(r.Context(), email, &u); err != nil {
		writeErrorStr(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Passwords are not part of this login contract; identity rests on the
	// email lookup alone.
	token, err := h.sessions.Create(r.Context(), u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.setSessionCookie(w, token, int(h.ttl.Seconds()))

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in",
		"user":    map[string]any{"id": u.ID, "email": u.Email, "name": u.Name},
	})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
		_ = h.sessions.Destroy(r.Context(), c.Value)
	}
	// MaxAge < 0 serializes as Max-Age=0, expiring the cookie immediately.
	h.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var u models.User
	if err := h.users.GetByID(r.Context(), userID, &u); err != nil {
		writeErrorStr(w, http.StatusUnauthorized, "Session invalid")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"createdAt": u.CreatedAt,
	})
}

func (h *AdminHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
