package repository

import (
	"context"

	"github.com/tripshield/backend/internal/models"
	appErr "github.com/tripshield/backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	userListDefaultLimit = 50
	userListMaxLimit     = 100
)

// UserListQuery narrows and pages the user list.
type UserListQuery struct {
	Role   models.Role
	Search string
	Limit  int
	Offset int
}

// RoleCount is one row of the users-by-role aggregate.
type RoleCount struct {
	Role  models.Role `json:"role"`
	Count int64       `json:"count"`
}

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	// List returns users newest first together with the unpaged total.
	List(ctx context.Context, q UserListQuery) ([]models.User, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) ([]RoleCount, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db, "User"), db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "User not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

// ClampUserLimit applies the server-side page cap for user lists.
func ClampUserLimit(limit int) int {
	if limit <= 0 {
		return userListDefaultLimit
	}
	if limit > userListMaxLimit {
		return userListMaxLimit
	}
	return limit
}

func (r *userRepository) List(ctx context.Context, q UserListQuery) ([]models.User, int64, error) {
	q.Limit = ClampUserLimit(q.Limit)
	if q.Offset < 0 {
		q.Offset = 0
	}

	base := r.db.WithContext(ctx).Model(&models.User{})
	if q.Role != "" {
		base = base.Where("role = ?", q.Role)
	}
	if q.Search != "" {
		pat := "%" + q.Search + "%"
		base = base.Where("name ILIKE ? OR email ILIKE ?", pat, pat)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count users failed")
	}

	var out []models.User
	err := base.Order("created_at DESC").Limit(q.Limit).Offset(q.Offset).Find(&out).Error
	if err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, total, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count users failed")
	}
	return n, nil
}

func (r *userRepository) CountByRole(ctx context.Context) ([]RoleCount, error) {
	var out []RoleCount
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("count DESC").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "count users by role failed")
	}
	return out, nil
}
