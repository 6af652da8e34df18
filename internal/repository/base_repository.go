package repository

import (
	"context"

	appErr "github.com/tripshield/backend/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository defines the CRUD operations shared by every resource.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id any, dest *T) error
	UpdateFields(ctx context.Context, id any, fields map[string]any) error
	Delete(ctx context.Context, id any) error
}

type baseRepository[T any] struct {
	db *gorm.DB
	// name is the user-facing entity name used in not-found messages.
	name string
}

func NewBaseRepository[T any](db *gorm.DB, name string) BaseRepository[T] {
	return &baseRepository[T]{db: db, name: name}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return translateWriteError(err, "create "+r.name+" failed")
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id any, dest *T) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, r.name+" not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get "+r.name+" failed")
	}
	return nil
}

// UpdateFields applies a partial merge of the supplied columns only. An empty
// field set degrades to an existence check so the caller still gets a 404 for
// a missing row.
func (r *baseRepository[T]) UpdateFields(ctx context.Context, id any, fields map[string]any) error {
	if len(fields) == 0 {
		var t T
		return r.GetByID(ctx, id, &t)
	}
	var t T
	res := r.db.WithContext(ctx).Model(&t).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translateWriteError(res.Error, "update "+r.name+" failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, r.name+" not found")
	}
	return nil
}

func (r *baseRepository[T]) Delete(ctx context.Context, id any) error {
	var t T
	res := r.db.WithContext(ctx).Delete(&t, "id = ?", id)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete "+r.name+" failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, r.name+" not found")
	}
	return nil
}
