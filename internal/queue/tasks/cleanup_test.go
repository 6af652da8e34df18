package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tripshield/backend/internal/repository"
	"github.com/tripshield/backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubLogRepo struct {
	repository.UsageLogRepository
	lastCutoff time.Time
	deleted    int64
	err        error
}

func (s *stubLogRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.lastCutoff = cutoff
	return s.deleted, s.err
}

func TestNewCleanupTask(t *testing.T) {
	task, err := NewCleanupTask(30)
	if err != nil {
		t.Fatal(err)
	}
	if task.Type() != TypeUsageLogCleanup {
		t.Fatalf("type: %q", task.Type())
	}
	var p CleanupPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Days != 30 {
		t.Fatalf("days: %d", p.Days)
	}
}

func TestHandleCleanup_UsesPayloadDays(t *testing.T) {
	repo := &stubLogRepo{deleted: 12}
	h := NewCleanupTaskHandler(repo, 90)

	task, err := NewCleanupTask(7)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.HandleCleanup(context.Background(), task); err != nil {
		t.Fatal(err)
	}

	want := time.Now().AddDate(0, 0, -7)
	if diff := repo.lastCutoff.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff off by %v", diff)
	}
}

func TestHandleCleanup_DefaultsToConfiguredWindow(t *testing.T) {
	repo := &stubLogRepo{}
	h := NewCleanupTaskHandler(repo, 90)

	task, err := NewCleanupTask(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.HandleCleanup(context.Background(), task); err != nil {
		t.Fatal(err)
	}

	want := time.Now().AddDate(0, 0, -90)
	if diff := repo.lastCutoff.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("cutoff off by %v", diff)
	}
}

func TestHandleCleanup_PropagatesDeleteError(t *testing.T) {
	repo := &stubLogRepo{err: errors.New("db down")}
	h := NewCleanupTaskHandler(repo, 90)

	task := asynq.NewTask(TypeUsageLogCleanup, nil)
	if err := h.HandleCleanup(context.Background(), task); err == nil {
		t.Fatal("expected error")
	}
}
