package audit

import (
	"context"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
	"github.com/brightwell-digital/cms-backend/pkg/pagination"
)

// Service records and queries the audit trail.
type Service interface {
	Record(ctx context.Context, entry *models.AuditLog)
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// ListParams filters the audit trail. Zero values mean no filter.
type ListParams struct {
	Actor      string
	Action     enums.AuditAction
	EntityType enums.EntityType
	Limit      int
	Cursor     string
}

// ListResult wraps returned entries and the cursor for the next page.
type ListResult struct {
	Items  []models.AuditLog `json:"items"`
	Cursor string            `json:"cursor"`
}

// NewService wires audit dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Record appends one entry. A write failure is logged and swallowed so
// the audited operation never rolls back over its own paper trail.
func (s *service) Record(ctx context.Context, entry *models.AuditLog) {
	if entry == nil {
		return
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logg.Error(ctx, "writing audit entry", err)
	}
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Action != "" && !params.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid action filter")
	}
	if params.EntityType != "" && !params.EntityType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid entity type filter")
	}

	query := listEntriesParams{
		Actor:      params.Actor,
		Action:     params.Action,
		EntityType: params.EntityType,
		Limit:      params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.Decode(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	entries, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.Encode(*next)
	}
	return &ListResult{Items: entries, Cursor: cursor}, nil
}
