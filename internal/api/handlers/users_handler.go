package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tripshield/backend/internal/api/types"
	"github.com/tripshield/backend/internal/api/validators"
	"github.com/tripshield/backend/internal/models"
	"github.com/tripshield/backend/internal/repository"
)

type UsersHandler struct {
	repo     repository.UserRepository
	validate *validator.Validate
}

func NewUsersHandler(repo repository.UserRepository, v *validator.Validate) *UsersHandler {
	return &UsersHandler{repo: repo, validate: v}
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, validators.Message(err))
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleAuthority
	}

	u := models.User{Name: req.Name, Email: req.Email, Role: role}
	if err := h.repo.Create(r.Context(), &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User created", "user": u})
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	role := models.Role(r.URL.Query().Get("role"))
	if role != "" && !role.Valid() {
		writeErrorStr(w, http.StatusBadRequest, "role must be one of ADMIN AUTHORITY")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	users, total, err := h.repo.List(r.Context(), repository.UserListQuery{
		Role:   role,
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users":      users,
		"pagination": types.NewPagination(total, repository.ClampUserLimit(limit), offset),
	})
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "User not found")
		return
	}

	var u models.User
	if err := h.repo.GetByID(r.Context(), id, &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "User not found")
		return
	}

	var req types.UserUpdateRequest
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

	var u models.User
	if err := h.repo.GetByID(r.Context(), id, &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User updated", "user": u})
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
