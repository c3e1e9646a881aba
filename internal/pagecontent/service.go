package pagecontent

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

// Service defines page content block operations. Blocks are addressed by
// (page, section) rather than by id, so a create and an update both
// resolve to the same upsert.
type Service interface {
	Upsert(ctx context.Context, block *models.PageContent) error
	Get(ctx context.Context, page, section string) (*models.PageContent, error)
	ListByPage(ctx context.Context, page string) ([]models.PageContent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires page content dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "page content repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Upsert(ctx context.Context, block *models.PageContent) error {
	if strings.TrimSpace(block.Page) == "" || strings.TrimSpace(block.Section) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "page and section are required")
	}
	if err := s.repo.Upsert(ctx, block); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert page content")
	}
	return nil
}

func (s *service) Get(ctx context.Context, page, section string) (*models.PageContent, error) {
	if strings.TrimSpace(page) == "" || strings.TrimSpace(section) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page and section are required")
	}
	block, err := s.repo.Get(ctx, page, section)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page content not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page content")
	}
	return block, nil
}

func (s *service) ListByPage(ctx context.Context, page string) ([]models.PageContent, error) {
	blocks, err := s.repo.ListByPage(ctx, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list page content")
	}
	return blocks, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "block id required")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete page content")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "page content not found")
	}
	return nil
}
