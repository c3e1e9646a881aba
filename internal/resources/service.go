package resources

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/brightwell-digital/cms-backend/pkg/db"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

// Service defines CRUD operations over one content collection. Mutations
// here are already moderated; the moderation layer is the only caller
// allowed to invoke them directly.
type Service[T any, PT interface {
	*T
	Entity
}] interface {
	Create(ctx context.Context, record PT) error
	Get(ctx context.Context, id uuid.UUID) (PT, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, record PT) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service[T any, PT interface {
	*T
	Entity
}] struct {
	repo     Repository[T, PT]
	validate *validator.Validate
}

// NewService wires the collection dependencies.
func NewService[T any, PT interface {
	*T
	Entity
}](repo Repository[T, PT]) (Service[T, PT], error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "resource repository required")
	}
	return &service[T, PT]{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (s *service[T, PT]) Create(ctx context.Context, record PT) error {
	if err := s.validate.Struct(record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid record")
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "record already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create record")
	}
	return nil
}

func (s *service[T, PT]) Get(ctx context.Context, id uuid.UUID) (PT, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record id required")
	}
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load record")
	}
	return record, nil
}

func (s *service[T, PT]) List(ctx context.Context) ([]T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list records")
	}
	return records, nil
}

func (s *service[T, PT]) Update(ctx context.Context, record PT) error {
	if record.GetID() == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "record id required")
	}
	if err := s.validate.Struct(record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid record")
	}

	// Load first so a missing row surfaces as not found instead of a no-op.
	if _, err := s.repo.Get(ctx, record.GetID()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load record")
	}

	if err := s.repo.Update(ctx, record); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "record already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update record")
	}
	return nil
}

func (s *service[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "record id required")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete record")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	return nil
}
