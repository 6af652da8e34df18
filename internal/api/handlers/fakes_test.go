package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tripshield/backend/internal/models"
	"github.com/tripshield/backend/internal/repository"
	appErr "github.com/tripshield/backend/pkg/errors"
)

// In-memory repository fakes so handler tests exercise routing, decoding and
// response shaping without a database.

type fakeTouristRepo struct {
	tourists  map[uuid.UUID]models.Tourist
	alertsFor map[uuid.UUID][]models.Alert
	createErr error
}

func newFakeTouristRepo() *fakeTouristRepo {
	return &fakeTouristRepo{
		tourists:  map[uuid.UUID]models.Tourist{},
		alertsFor: map[uuid.UUID][]models.Alert{},
	}
}

func (f *fakeTouristRepo) Create(_ context.Context, t *models.Tourist) error {
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tourists[t.ID] = *t
	return nil
}

func (f *fakeTouristRepo) GetByID(_ context.Context, id any, dest *models.Tourist) error {
	t, ok := f.tourists[id.(uuid.UUID)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "Tourist not found")
	}
	*dest = t
	return nil
}

func (f *fakeTouristRepo) UpdateFields(_ context.Context, id any, fields map[string]any) error {
	t, ok := f.tourists[id.(uuid.UUID)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "Tourist not found")
	}
	if v, ok := fields["name"]; ok {
		t.Name = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		s := v.(string)
		t.Phone = &s
	}
	if v, ok := fields["location"]; ok {
		s := v.(string)
		t.Location = &s
	}
	if v, ok := fields["aadhaar"]; ok {
		s := v.(string)
		t.Aadhaar = &s
	}
	f.tourists[t.ID] = t
	return nil
}

func (f *fakeTouristRepo) Delete(_ context.Context, id any) error {
	if _, ok := f.tourists[id.(uuid.UUID)]; !ok {
		return appErr.New(appErr.CodeNotFound, "Tourist not found")
	}
	delete(f.tourists, id.(uuid.UUID))
	return nil
}

func (f *fakeTouristRepo) List(_ context.Context, search, location string) ([]models.Tourist, error) {
	out := make([]models.Tourist, 0, len(f.tourists))
	for _, t := range f.tourists {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTouristRepo) GetWithAlerts(_ context.Context, id uuid.UUID, dest *models.Tourist) error {
	if err := f.GetByID(context.Background(), id, dest); err != nil {
		return err
	}
	dest.Alerts = f.alertsFor[id]
	return nil
}

func (f *fakeTouristRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.tourists)), nil
}

func (f *fakeTouristRepo) CountByLocation(_ context.Context) ([]repository.LocationCount, error) {
	return nil, nil
}

type fakeAlertRepo struct {
	byTourist map[uuid.UUID][]models.Alert
	createErr error
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{byTourist: map[uuid.UUID][]models.Alert{}}
}

func (f *fakeAlertRepo) Create(_ context.Context, a *models.Alert) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	return nil
}

func (f *fakeAlertRepo) GetByID(_ context.Context, id any, dest *models.Alert) error {
	return appErr.New(appErr.CodeNotFound, "Alert not found")
}

func (f *fakeAlertRepo) UpdateFields(_ context.Context, id any, fields map[string]any) error {
	return appErr.New(appErr.CodeNotFound, "Alert not found")
}

func (f *fakeAlertRepo) Delete(_ context.Context, id any) error {
	return appErr.New(appErr.CodeNotFound, "Alert not found")
}

func (f *fakeAlertRepo) GetDetailed(_ context.Context, id uuid.UUID, dest *models.Alert) error {
	return appErr.New(appErr.CodeNotFound, "Alert not found")
}

func (f *fakeAlertRepo) List(_ context.Context, status models.AlertStatus) ([]models.Alert, error) {
	return nil, nil
}

func (f *fakeAlertRepo) ListByTourist(_ context.Context, touristID uuid.UUID, status models.AlertStatus) ([]models.Alert, error) {
	out := []models.Alert{}
	for _, a := range f.byTourist[touristID] {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlertRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (f *fakeAlertRepo) CountByStatus(_ context.Context, status models.AlertStatus) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	users     map[uuid.UUID]models.User
	byEmail   map[string]uuid.UUID
	listUsers []models.User
	listTotal int64
	lastQuery repository.UserListQuery
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   map[uuid.UUID]models.User{},
		byEmail: map[string]uuid.UUID{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return appErr.New(appErr.CodeConflict, "User already exists")
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	f.users[u.ID] = *u
	f.byEmail[u.Email] = u.ID
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id any, dest *models.User) error {
	u, ok := f.users[id.(uuid.UUID)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "User not found")
	}
	*dest = u
	return nil
}

func (f *fakeUserRepo) UpdateFields(_ context.Context, id any, fields map[string]any) error {
	u, ok := f.users[id.(uuid.UUID)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "User not found")
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := fields["role"]; ok {
		u.Role = models.Role(v.(string))
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id any) error {
	u, ok := f.users[id.(uuid.UUID)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "User not found")
	}
	delete(f.byEmail, u.Email)
	delete(f.users, u.ID)
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string, dest *models.User) error {
	id, ok := f.byEmail[email]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "User not found")
	}
	*dest = f.users[id]
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, q repository.UserListQuery) ([]models.User, int64, error) {
	f.lastQuery = q
	return f.listUsers, f.listTotal, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context) ([]repository.RoleCount, error) {
	return nil, nil
}

type fakeUsageLogRepo struct {
	logs        map[uuid.UUID]models.UsageLog
	createErr   error
	listLogs    []models.UsageLog
	listTotal   int64
	lastQuery   repository.UsageLogListQuery
	lastCutoff  time.Time
	deleted     int64
	actionStats []repository.ActionCount
	userStats   []repository.UserUsage
}

func newFakeUsageLogRepo() *fakeUsageLogRepo {
	return &fakeUsageLogRepo{logs: map[uuid.UUID]models.UsageLog{}}
}

func (f *fakeUsageLogRepo) Create(_ context.Context, log *models.UsageLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	log.ID = uuid.New()
	log.CreatedAt = time.Now()
	f.logs[log.ID] = *log
	return nil
}

func (f *fakeUsageLogRepo) GetByID(_ context.Context, id uuid.UUID, dest *models.UsageLog) error {
	log, ok := f.logs[id]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "Usage log not found")
	}
	*dest = log
	return nil
}

func (f *fakeUsageLogRepo) List(_ context.Context, q repository.UsageLogListQuery) ([]models.UsageLog, int64, error) {
	f.lastQuery = q
	return f.listLogs, f.listTotal, nil
}

func (f *fakeUsageLogRepo) Recent(_ context.Context, limit int) ([]models.UsageLog, error) {
	return f.listLogs, nil
}

func (f *fakeUsageLogRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.logs[id]; !ok {
		return appErr.New(appErr.CodeNotFound, "Usage log not found")
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeUsageLogRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	return f.deleted, nil
}

func (f *fakeUsageLogRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.logs)), nil
}

func (f *fakeUsageLogRepo) CountByAction(_ context.Context) ([]repository.ActionCount, error) {
	return f.actionStats, nil
}

func (f *fakeUsageLogRepo) CountByUser(_ context.Context) ([]repository.UserUsage, error) {
	return f.userStats, nil
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return body
}
