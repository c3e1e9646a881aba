package resources

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is the minimal surface shared by every published content record.
type Entity interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
}

// Repository exposes persistence helpers for one content collection.
type Repository[T any, PT interface {
	*T
	Entity
}] interface {
	WithTx(tx *gorm.DB) Repository[T, PT]
	Create(ctx context.Context, record PT) error
	Get(ctx context.Context, id uuid.UUID) (PT, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, record PT) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl[T any, PT interface {
	*T
	Entity
}] struct {
	db    *gorm.DB
	order string
}

// NewRepository returns a repository bound to the provided database. The
// order clause controls list output, for example "sort_order ASC" or
// "created_at DESC".
func NewRepository[T any, PT interface {
	*T
	Entity
}](db *gorm.DB, order string) Repository[T, PT] {
	if order == "" {
		order = "created_at DESC"
	}
	return &repositoryImpl[T, PT]{db: db, order: order}
}

func (r *repositoryImpl[T, PT]) WithTx(tx *gorm.DB) Repository[T, PT] {
	if tx == nil {
		return r
	}
	return &repositoryImpl[T, PT]{db: tx, order: r.order}
}

func (r *repositoryImpl[T, PT]) Create(ctx context.Context, record PT) error {
	if record.GetID() == uuid.Nil {
		record.SetID(uuid.New())
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repositoryImpl[T, PT]) Get(ctx context.Context, id uuid.UUID) (PT, error) {
	record := PT(new(T))
	if err := r.db.WithContext(ctx).First(record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repositoryImpl[T, PT]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := r.db.WithContext(ctx).Order(r.order).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Update overwrites every column except the primary key and creation
// timestamp. The caller must set the record id first.
func (r *repositoryImpl[T, PT]) Update(ctx context.Context, record PT) error {
	return r.db.WithContext(ctx).
		Model(record).
		Select("*").
		Omit("id", "created_at").
		Updates(record).Error
}

func (r *repositoryImpl[T, PT]) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	record := PT(new(T))
	result := r.db.WithContext(ctx).Delete(record, "id = ?", id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
