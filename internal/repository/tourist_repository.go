package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tripshield/backend/internal/models"
	appErr "github.com/tripshield/backend/pkg/errors"
	"gorm.io/gorm"
)

// LocationCount is one row of the tourists-by-location aggregate.
type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type TouristRepository interface {
	BaseRepository[models.Tourist]
	// List returns tourists newest first. A search term matches name
	// case-insensitively and phone/aadhaar as plain substrings; a location
	// term narrows by location. The two filters combine with AND.
	List(ctx context.Context, search, location string) ([]models.Tourist, error)
	GetWithAlerts(ctx context.Context, id uuid.UUID, dest *models.Tourist) error
	Count(ctx context.Context) (int64, error)
	CountByLocation(ctx context.Context) ([]LocationCount, error)
}

type touristRepository struct {
	BaseRepository[models.Tourist]
	db *gorm.DB
}

func NewTouristRepository(db *gorm.DB) TouristRepository {
	return &touristRepository{BaseRepository: NewBaseRepository[models.Tourist](db, "Tourist"), db: db}
}

func (r *touristRepository) List(ctx context.Context, search, location string) ([]models.Tourist, error) {
	q := r.db.WithContext(ctx).Model(&models.Tourist{})
	if search != "" {
		pat := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone LIKE ? OR aadhaar LIKE ?", pat, pat, pat)
	}
	if location != "" {
		q = q.Where("location ILIKE ?", "%"+location+"%")
	}
	var out []models.Tourist
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list tourists failed")
	}
	return out, nil
}

func (r *touristRepository) GetWithAlerts(ctx context.Context, id uuid.UUID, dest *models.Tourist) error {
	err := r.db.WithContext(ctx).
		Preload("Alerts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(dest, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "Tourist not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get tourist failed")
	}
	return nil
}

func (r *touristRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Tourist{}).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count tourists failed")
	}
	return n, nil
}

func (r *touristRepository) CountByLocation(ctx context.Context) ([]LocationCount, error) {
	var out []LocationCount
	err := r.db.WithContext(ctx).Model(&models.Tourist{}).
		Select("location, COUNT(*) AS count").
		Where("location IS NOT NULL").
		Group("location").
		Order("count DESC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "count tourists by location failed")
	}
	return out, nil
}
