package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
)

// Repository exposes persistence helpers for pending changes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, change *models.PendingChange) error
	Get(ctx context.Context, id uuid.UUID) (*models.PendingChange, error)
	List(ctx context.Context, params listChangesParams) ([]models.PendingChange, error)
	HasOpenChange(ctx context.Context, entityID uuid.UUID) (bool, error)
	MarkReviewed(ctx context.Context, id uuid.UUID, status enums.ChangeStatus, reviewer string, comments *string, now time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a pending change repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listChangesParams struct {
	Status      enums.ChangeStatus
	EntityType  enums.EntityType
	SubmittedBy string
	Limit       int
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, change *models.PendingChange) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	if change.SubmittedAt.IsZero() {
		change.SubmittedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(change).Error
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.PendingChange, error) {
	var change models.PendingChange
	if err := r.db.WithContext(ctx).First(&change, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &change, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listChangesParams) ([]models.PendingChange, error) {
	query := r.db.WithContext(ctx).Model(&models.PendingChange{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.SubmittedBy != "" {
		query = query.Where("submitted_by = ?", params.SubmittedBy)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	var changes []models.PendingChange
	if err := query.Order("submitted_at DESC, id DESC").Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

func (r *repositoryImpl) HasOpenChange(ctx context.Context, entityID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PendingChange{}).
		Where("entity_id = ? AND status = ?", entityID, enums.ChangeStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkReviewed flips a pending envelope to its terminal status. The
// status guard in the WHERE clause makes concurrent reviews settle to
// exactly one winner.
func (r *repositoryImpl) MarkReviewed(ctx context.Context, id uuid.UUID, status enums.ChangeStatus, reviewer string, comments *string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PendingChange{}).
		Where("id = ? AND status = ?", id, enums.ChangeStatusPending).
		Updates(map[string]any{
			"status":          status,
			"reviewed_by":     reviewer,
			"reviewed_at":     now,
			"review_comments": comments,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.PendingChange{}, "id = ?", id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
