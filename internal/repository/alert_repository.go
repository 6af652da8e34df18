package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tripshield/backend/internal/models"
	appErr "github.com/tripshield/backend/pkg/errors"
	"gorm.io/gorm"
)

type AlertRepository interface {
	BaseRepository[models.Alert]
	// GetDetailed loads an alert with its tourist and creator joined in.
	GetDetailed(ctx context.Context, id uuid.UUID, dest *models.Alert) error
	// List returns alerts newest first, optionally narrowed by status, with
	// tourist and creator joined in.
	List(ctx context.Context, status models.AlertStatus) ([]models.Alert, error)
	ListByTourist(ctx context.Context, touristID uuid.UUID, status models.AlertStatus) ([]models.Alert, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.AlertStatus) (int64, error)
}

type alertRepository struct {
	BaseRepository[models.Alert]
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{BaseRepository: NewBaseRepository[models.Alert](db, "Alert"), db: db}
}

func (r *alertRepository) GetDetailed(ctx context.Context, id uuid.UUID, dest *models.Alert) error {
	err := r.db.WithContext(ctx).
		Preload("Tourist").
		Preload("CreatedBy").
		First(dest, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "Alert not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get alert failed")
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context, status models.AlertStatus) ([]models.Alert, error) {
	q := r.db.WithContext(ctx).Model(&models.Alert{}).
		Preload("Tourist").
		Preload("CreatedBy")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.Alert
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list alerts failed")
	}
	return out, nil
}

func (r *alertRepository) ListByTourist(ctx context.Context, touristID uuid.UUID, status models.AlertStatus) ([]models.Alert, error) {
	q := r.db.WithContext(ctx).Model(&models.Alert{}).
		Preload("CreatedBy").
		Where("tourist_id = ?", touristID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.Alert
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list alerts by tourist failed")
	}
	return out, nil
}

func (r *alertRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Alert{}).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count alerts failed")
	}
	return n, nil
}

func (r *alertRepository) CountByStatus(ctx context.Context, status models.AlertStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("status = ?", status).
		Count(&n).Error
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count alerts by status failed")
	}
	return n, nil
}
