package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/tripshield/backend/internal/repository"
	"github.com/tripshield/backend/pkg/logger"
)

// TypeUsageLogCleanup identifies the retention-cleanup task.
const TypeUsageLogCleanup = "usage_logs:cleanup"

// CleanupPayload optionally overrides the configured retention window.
type CleanupPayload struct {
	Days int `json:"days"`
}

// NewCleanupTask builds a cleanup task for the given retention window.
// days <= 0 means "use the configured default".
func NewCleanupTask(days int) (*asynq.Task, error) {
	b, err := json.Marshal(CleanupPayload{Days: days})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeUsageLogCleanup, b), nil
}

// CleanupTaskHandler runs the same bulk retention delete the HTTP endpoint
// exposes, on the worker's schedule.
type CleanupTaskHandler struct {
	logs        repository.UsageLogRepository
	defaultDays int
}

func NewCleanupTaskHandler(logs repository.UsageLogRepository, defaultDays int) *CleanupTaskHandler {
	return &CleanupTaskHandler{logs: logs, defaultDays: defaultDays}
}

func (h *CleanupTaskHandler) HandleCleanup(ctx context.Context, t *asynq.Task) error {
	var p CleanupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			logger.L().Error("invalid cleanup task payload", zap.Error(err))
			return err
		}
	}
	days := p.Days
	if days <= 0 {
		days = h.defaultDays
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := h.logs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.L().Error("usage log cleanup failed", zap.Error(err))
		return err
	}

	logger.L().Info("usage log cleanup completed",
		zap.Int("days", days),
		zap.Int64("deleted", deleted),
	)
	return nil
}
