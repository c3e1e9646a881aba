package pagecontent

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
)

// Repository exposes persistence helpers for page content blocks.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, block *models.PageContent) error
	Get(ctx context.Context, page, section string) (*models.PageContent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PageContent, error)
	ListByPage(ctx context.Context, page string) ([]models.PageContent, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a page content repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// Upsert writes the block content keyed by (page, section). An existing
// row keeps its id; a new row gets one assigned.
func (r *repositoryImpl) Upsert(ctx context.Context, block *models.PageContent) error {
	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "page"}, {Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(block).Error
}

func (r *repositoryImpl) Get(ctx context.Context, page, section string) (*models.PageContent, error) {
	var block models.PageContent
	if err := r.db.WithContext(ctx).
		First(&block, "page = ? AND section = ?", page, section).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.PageContent, error) {
	var block models.PageContent
	if err := r.db.WithContext(ctx).First(&block, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *repositoryImpl) ListByPage(ctx context.Context, page string) ([]models.PageContent, error) {
	query := r.db.WithContext(ctx).Model(&models.PageContent{})
	if page != "" {
		query = query.Where("page = ?", page)
	}
	var blocks []models.PageContent
	if err := query.Order("page ASC, section ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.PageContent{}, "id = ?", id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
