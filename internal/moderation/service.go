package moderation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/brightwell-digital/cms-backend/pkg/db"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/metrics"
)

// preApprovedComment marks envelopes written by roles that skip review.
const preApprovedComment = "published without review"

// Publisher applies an approved change to its live collection.
type Publisher interface {
	Publish(ctx context.Context, change *models.PendingChange) error
}

// AuditSink records review activity. Implementations must not fail the
// calling operation.
type AuditSink interface {
	Record(ctx context.Context, entry *models.AuditLog)
}

// Service owns the pending change lifecycle: envelopes enter pending and
// settle exactly once into approved or rejected.
type Service interface {
	Submit(ctx context.Context, params SubmitParams) (*models.PendingChange, error)
	SubmitPreApproved(ctx context.Context, params SubmitParams) (*models.PendingChange, error)
	HasOpenChange(ctx context.Context, entityID uuid.UUID) (bool, error)
	Approve(ctx context.Context, id uuid.UUID, reviewer string, comments *string) (*models.PendingChange, error)
	Reject(ctx context.Context, id uuid.UUID, reviewer string, comments string) (*models.PendingChange, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PendingChange, error)
	List(ctx context.Context, params ListParams) ([]models.PendingChange, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
}

type service struct {
	repo      Repository
	publisher Publisher
	audit     AuditSink
	metrics   *metrics.ModerationMetrics
}

// SubmitParams captures one proposed mutation.
type SubmitParams struct {
	EntityType   enums.EntityType
	EntityID     *uuid.UUID
	Action       enums.ChangeAction
	SubmittedBy  string
	ChangeData   string
	OriginalData *string
}

// ListParams filters the change queue. Zero values mean no filter.
type ListParams struct {
	Status      enums.ChangeStatus
	EntityType  enums.EntityType
	SubmittedBy string
	Limit       int
}

// NewService wires moderation dependencies. Metrics may be nil.
func NewService(repo Repository, publisher Publisher, audit AuditSink, m *metrics.ModerationMetrics) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "moderation repository required")
	}
	if publisher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "publisher required")
	}
	if audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit sink required")
	}
	return &service{repo: repo, publisher: publisher, audit: audit, metrics: m}, nil
}

func (s *service) Submit(ctx context.Context, params SubmitParams) (*models.PendingChange, error) {
	change, err := buildEnvelope(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, change); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "entity already has an open change")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store pending change")
	}

	s.metrics.IncSubmitted(string(change.EntityType))
	s.audit.Record(ctx, &models.AuditLog{
		Actor:      change.SubmittedBy,
		Action:     enums.AuditActionSubmit,
		EntityType: &change.EntityType,
		EntityID:   change.EntityID,
		ChangeID:   &change.ID,
	})
	return change, nil
}

// SubmitPreApproved publishes immediately and records the envelope
// already settled. Used for roles that skip review; the envelope keeps
// the queue history complete.
func (s *service) SubmitPreApproved(ctx context.Context, params SubmitParams) (*models.PendingChange, error) {
	change, err := buildEnvelope(params)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, change); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change.Status = enums.ChangeStatusApproved
	change.ReviewedBy = &change.SubmittedBy
	change.ReviewedAt = &now
	change.ReviewComments = strPtr(preApprovedComment)

	if err := s.repo.Create(ctx, change); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store approved change")
	}

	s.metrics.IncSubmitted(string(change.EntityType))
	s.metrics.IncApproved(string(change.EntityType))
	s.audit.Record(ctx, &models.AuditLog{
		Actor:      change.SubmittedBy,
		Action:     enums.AuditActionApprove,
		EntityType: &change.EntityType,
		EntityID:   change.EntityID,
		ChangeID:   &change.ID,
		Detail:     strPtr(preApprovedComment),
	})
	return change, nil
}

func (s *service) HasOpenChange(ctx context.Context, entityID uuid.UUID) (bool, error) {
	if entityID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "entity id required")
	}
	open, err := s.repo.HasOpenChange(ctx, entityID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check open changes")
	}
	return open, nil
}

// Approve publishes the change and then settles the envelope. Publishing
// first means a failed publish leaves the envelope pending and
// retryable; the settle step is conditional so racing reviewers cannot
// both win.
func (s *service) Approve(ctx context.Context, id uuid.UUID, reviewer string, comments *string) (*models.PendingChange, error) {
	if reviewer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviewer required")
	}

	change, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if change.Status != enums.ChangeStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "change already reviewed")
	}

	if err := s.publisher.Publish(ctx, change); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated, err := s.repo.MarkReviewed(ctx, id, enums.ChangeStatusApproved, reviewer, comments, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle change")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "change already reviewed")
	}

	change.Status = enums.ChangeStatusApproved
	change.ReviewedBy = &reviewer
	change.ReviewedAt = &now
	change.ReviewComments = comments

	s.metrics.IncApproved(string(change.EntityType))
	s.audit.Record(ctx, &models.AuditLog{
		Actor:      reviewer,
		Action:     enums.AuditActionApprove,
		EntityType: &change.EntityType,
		EntityID:   change.EntityID,
		ChangeID:   &change.ID,
		Detail:     comments,
	})
	return change, nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, reviewer string, comments string) (*models.PendingChange, error) {
	if reviewer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviewer required")
	}
	comments = strings.TrimSpace(comments)
	if comments == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection comments required")
	}

	change, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if change.Status != enums.ChangeStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "change already reviewed")
	}

	now := time.Now().UTC()
	updated, err := s.repo.MarkReviewed(ctx, id, enums.ChangeStatusRejected, reviewer, &comments, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle change")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "change already reviewed")
	}

	change.Status = enums.ChangeStatusRejected
	change.ReviewedBy = &reviewer
	change.ReviewedAt = &now
	change.ReviewComments = &comments

	s.metrics.IncRejected(string(change.EntityType))
	s.audit.Record(ctx, &models.AuditLog{
		Actor:      reviewer,
		Action:     enums.AuditActionReject,
		EntityType: &change.EntityType,
		EntityID:   change.EntityID,
		ChangeID:   &change.ID,
		Detail:     &comments,
	})
	return change, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PendingChange, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "change id required")
	}
	change, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "change not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load change")
	}
	return change, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.PendingChange, error) {
	if params.Status != "" && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if params.EntityType != "" && !params.EntityType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid entity type filter")
	}

	changes, err := s.repo.List(ctx, listChangesParams{
		Status:      params.Status,
		EntityType:  params.EntityType,
		SubmittedBy: params.SubmittedBy,
		Limit:       params.Limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list changes")
	}
	return changes, nil
}

// Delete removes a settled envelope from the queue history. A pending
// envelope must be reviewed first.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	change, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if change.Status == enums.ChangeStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete a pending change")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete change")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "change not found")
	}

	s.audit.Record(ctx, &models.AuditLog{
		Actor:      actor,
		Action:     enums.AuditActionDelete,
		EntityType: &change.EntityType,
		EntityID:   change.EntityID,
		ChangeID:   &change.ID,
	})
	return nil
}

func buildEnvelope(params SubmitParams) (*models.PendingChange, error) {
	if !params.EntityType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid entity type")
	}
	if !params.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid change action")
	}
	if strings.TrimSpace(params.SubmittedBy) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submitter required")
	}
	if !json.Valid([]byte(params.ChangeData)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "change data must be valid JSON")
	}

	entityID := params.EntityID
	switch params.Action {
	case enums.ChangeActionCreate:
		// Creates target a record that does not exist yet.
		entityID = nil
	default:
		if entityID == nil || *entityID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "entity id required for update and delete")
		}
	}

	return &models.PendingChange{
		EntityType:   params.EntityType,
		EntityID:     entityID,
		Action:       params.Action,
		Status:       enums.ChangeStatusPending,
		SubmittedBy:  params.SubmittedBy,
		SubmittedAt:  time.Now().UTC(),
		ChangeData:   params.ChangeData,
		OriginalData: params.OriginalData,
	}, nil
}

func strPtr(s string) *string { return &s }
