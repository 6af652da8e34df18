package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripshield/backend/internal/api/validators"
	"github.com/tripshield/backend/internal/models"
)

func newUserRouter(repo *fakeUserRepo) http.Handler {
	h := NewUsersHandler(repo, validators.New())
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func TestCreateUser_NormalizesEmailAndDefaultsRole(t *testing.T) {
	repo := newFakeUserRepo()
	router := newUserRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":" Officer Rai ","email":" Officer.Rai@Example.COM "}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if _, ok := repo.byEmail["officer.rai@example.com"]; !ok {
		t.Fatalf("email not normalized, stored keys: %v", repo.byEmail)
	}
	body := decodeBody(t, rr)
	user := body["user"].(map[string]any)
	if user["role"] != "AUTHORITY" {
		t.Fatalf("expected default role AUTHORITY, got %v", user["role"])
	}
	if user["name"] != "Officer Rai" {
		t.Fatalf("name not trimmed: %q", user["name"])
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	router := newUserRouter(repo)

	payload := `{"name":"Officer Rai","email":"rai@example.com"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if i == 0 && rr.Code != http.StatusCreated {
			t.Fatalf("first create: expected 201, got %d", rr.Code)
		}
		if i == 1 {
			if rr.Code != http.StatusConflict {
				t.Fatalf("second create: expected 409, got %d", rr.Code)
			}
			if body := decodeBody(t, rr); body["error"] != "User already exists" {
				t.Fatalf("unexpected error %q", body["error"])
			}
		}
	}
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"X","email":"not-an-email"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["error"] != "email must be a valid email" {
		t.Fatalf("unexpected error %q", body["error"])
	}
}

func TestListUsers_InvalidRole(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	req := httptest.NewRequest(http.MethodGet, "/?role=SUPERUSER", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListUsers_Pagination(t *testing.T) {
	cases := []struct {
		name        string
		query       string
		total       int64
		wantLimit   float64
		wantHasMore bool
	}{
		{name: "oversized limit is capped", query: "?limit=1000", total: 120, wantLimit: 100, wantHasMore: true},
		{name: "last page", query: "?limit=50&offset=100", total: 120, wantLimit: 50, wantHasMore: false},
		{name: "defaults", query: "", total: 30, wantLimit: 50, wantHasMore: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			repo.listTotal = tc.total
			repo.listUsers = []models.User{{ID: uuid.New(), Name: "A", Email: "a@example.com", Role: models.RoleAdmin, CreatedAt: time.Now()}}
			router := newUserRouter(repo)

			req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
			}
			body := decodeBody(t, rr)
			p := body["pagination"].(map[string]any)
			if p["limit"] != tc.wantLimit {
				t.Fatalf("limit: want %v, got %v", tc.wantLimit, p["limit"])
			}
			if p["hasMore"] != tc.wantHasMore {
				t.Fatalf("hasMore: want %v, got %v", tc.wantHasMore, p["hasMore"])
			}
			if p["total"] != float64(tc.total) {
				t.Fatalf("total: want %d, got %v", tc.total, p["total"])
			}
		})
	}
}

func TestUpdateUser_RoleChange(t *testing.T) {
	repo := newFakeUserRepo()
	id := uuid.New()
	repo.users[id] = models.User{ID: id, Name: "Officer Rai", Email: "rai@example.com", Role: models.RoleAuthority}
	router := newUserRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/"+id.String(), strings.NewReader(`{"role":"ADMIN"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if repo.users[id].Role != models.RoleAdmin {
		t.Fatalf("role not updated: %s", repo.users[id].Role)
	}
}

func TestDeleteUser_Unknown(t *testing.T) {
	router := newUserRouter(newFakeUserRepo())

	req := httptest.NewRequest(http.MethodDelete, "/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
