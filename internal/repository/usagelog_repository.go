package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tripshield/backend/internal/models"
	appErr "github.com/tripshield/backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	usageLogDefaultLimit = 50
	usageLogMaxLimit     = 100

	usageSnapshotDefaultLimit = 200
	usageSnapshotMaxLimit     = 500
)

// UsageLogListQuery narrows and pages the usage-log list.
type UsageLogListQuery struct {
	Action string
	UserID *uuid.UUID
	Limit  int
	Offset int
}

// ActionCount is one row of the usage-by-action aggregate.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// UserUsage is one row of the usage-by-user aggregate, with the user's
// details joined in after grouping. UserID is nil for anonymous logs.
type UserUsage struct {
	UserID *uuid.UUID   `json:"userId"`
	Count  int64        `json:"count"`
	User   *models.User `json:"user"`
}

type UsageLogRepository interface {
	Create(ctx context.Context, log *models.UsageLog) error
	GetByID(ctx context.Context, id uuid.UUID, dest *models.UsageLog) error
	// List returns logs newest first with users joined, plus the unpaged total.
	List(ctx context.Context, q UsageLogListQuery) ([]models.UsageLog, int64, error)
	// Recent returns the newest logs with users joined, for the stats view.
	Recent(ctx context.Context, limit int) ([]models.UsageLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteOlderThan removes every log created before cutoff and reports
	// how many rows went away.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByAction(ctx context.Context) ([]ActionCount, error)
	CountByUser(ctx context.Context) ([]UserUsage, error)
}

type usageLogRepository struct {
	db *gorm.DB
}

func NewUsageLogRepository(db *gorm.DB) UsageLogRepository {
	return &usageLogRepository{db: db}
}

func (r *usageLogRepository) Create(ctx context.Context, log *models.UsageLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		// A dangling userId surfaces as an FK violation; the contract
		// reports that as a missing user rather than a validation error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return appErr.Wrap(err, appErr.CodeNotFound, "User not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create usage log failed")
	}
	// Reload with the user joined so the create response carries it.
	if log.UserID != nil {
		return r.GetByID(ctx, log.ID, log)
	}
	return nil
}

func (r *usageLogRepository) GetByID(ctx context.Context, id uuid.UUID, dest *models.UsageLog) error {
	err := r.db.WithContext(ctx).Preload("User").First(dest, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "Usage log not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get usage log failed")
	}
	return nil
}

// ClampUsageLogLimit applies the server-side page cap for usage-log lists.
func ClampUsageLogLimit(limit int) int {
	if limit <= 0 {
		return usageLogDefaultLimit
	}
	if limit > usageLogMaxLimit {
		return usageLogMaxLimit
	}
	return limit
}

// ClampSnapshotLimit applies the larger cap used by the stats usage view.
func ClampSnapshotLimit(limit int) int {
	if limit <= 0 {
		return usageSnapshotDefaultLimit
	}
	if limit > usageSnapshotMaxLimit {
		return usageSnapshotMaxLimit
	}
	return limit
}

func (r *usageLogRepository) List(ctx context.Context, q UsageLogListQuery) ([]models.UsageLog, int64, error) {
	q.Limit = ClampUsageLogLimit(q.Limit)
	if q.Offset < 0 {
		q.Offset = 0
	}

	base := r.db.WithContext(ctx).Model(&models.UsageLog{})
	if q.Action != "" {
		base = base.Where("action ILIKE ?", "%"+q.Action+"%")
	}
	if q.UserID != nil {
		base = base.Where("user_id = ?", *q.UserID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count usage logs failed")
	}

	var out []models.UsageLog
	err := base.Preload("User").
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list usage logs failed")
	}
	return out, total, nil
}

func (r *usageLogRepository) Recent(ctx context.Context, limit int) ([]models.UsageLog, error) {
	limit = ClampSnapshotLimit(limit)
	var out []models.UsageLog
	err := r.db.WithContext(ctx).Model(&models.UsageLog{}).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "fetch recent usage logs failed")
	}
	return out, nil
}

func (r *usageLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.UsageLog{}, "id = ?", id)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete usage log failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "Usage log not found")
	}
	return nil
}

func (r *usageLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.UsageLog{})
	if res.Error != nil {
		return 0, appErr.Wrap(res.Error, appErr.CodeInternal, "cleanup usage logs failed")
	}
	return res.RowsAffected, nil
}

func (r *usageLogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.UsageLog{}).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count usage logs failed")
	}
	return n, nil
}

func (r *usageLogRepository) CountByAction(ctx context.Context) ([]ActionCount, error) {
	var out []ActionCount
	err := r.db.WithContext(ctx).Model(&models.UsageLog{}).
		Select("action, COUNT(*) AS count").
		Group("action").
		Order("count DESC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "count usage by action failed")
	}
	return out, nil
}

func (r *usageLogRepository) CountByUser(ctx context.Context) ([]UserUsage, error) {
	var rows []UserUsage
	err := r.db.WithContext(ctx).Model(&models.UsageLog{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "count usage by user failed")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if row.UserID != nil {
			ids = append(ids, *row.UserID)
		}
	}
	if len(ids) == 0 {
		return rows, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "load users for usage stats failed")
	}
	byID := make(map[uuid.UUID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range rows {
		if rows[i].UserID != nil {
			rows[i].User = byID[*rows[i].UserID]
		}
	}
	return rows, nil
}
