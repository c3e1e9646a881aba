package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/api/middleware"
	"github.com/brightwell-digital/cms-backend/api/responses"
	"github.com/brightwell-digital/cms-backend/api/validators"
	"github.com/brightwell-digital/cms-backend/internal/moderation"
	"github.com/brightwell-digital/cms-backend/internal/resources"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
)

// ResourceController serves one content collection. Reads hit the live
// tables directly; every mutation goes through the moderation gate, so
// editors queue a pending change while admins publish immediately.
type ResourceController[T any, PT interface {
	*T
	resources.Entity
}] struct {
	entityType enums.EntityType
	svc        resources.Service[T, PT]
	gate       *moderation.Gate
	logg       *logger.Logger
}

func NewResourceController[T any, PT interface {
	*T
	resources.Entity
}](entityType enums.EntityType, svc resources.Service[T, PT], gate *moderation.Gate, logg *logger.Logger) (*ResourceController[T, PT], error) {
	if !entityType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "invalid entity type")
	}
	if svc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "resource service required")
	}
	if gate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "moderation gate required")
	}
	return &ResourceController[T, PT]{
		entityType: entityType,
		svc:        svc,
		gate:       gate,
		logg:       logg,
	}, nil
}

func (c *ResourceController[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	records, err := c.svc.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, records)
}

func (c *ResourceController[T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := recordIDFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	record, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, record)
}

func (c *ResourceController[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	actor, role, err := actorFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	record := PT(new(T))
	if err := validators.DecodeJSONBody(r, record); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	record.SetID(uuid.Nil)

	payload, err := json.Marshal(record)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode change payload"))
		return
	}

	outcome, err := c.gate.Propose(r.Context(), moderation.Proposal{
		EntityType: c.entityType,
		Action:     enums.ChangeActionCreate,
		Actor:      actor,
		Role:       role,
		Payload:    payload,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	writeOutcome(w, outcome, http.StatusCreated)
}

func (c *ResourceController[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	actor, role, err := actorFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	id, err := recordIDFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	original, err := c.snapshot(r, id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	record := PT(new(T))
	if err := validators.DecodeJSONBody(r, record); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	// The URL names the target record; any id in the body is ignored.
	record.SetID(id)

	payload, err := json.Marshal(record)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode change payload"))
		return
	}

	outcome, err := c.gate.Propose(r.Context(), moderation.Proposal{
		EntityType: c.entityType,
		EntityID:   &id,
		Action:     enums.ChangeActionUpdate,
		Actor:      actor,
		Role:       role,
		Payload:    payload,
		Original:   original,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	writeOutcome(w, outcome, http.StatusOK)
}

func (c *ResourceController[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	actor, role, err := actorFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	id, err := recordIDFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	original, err := c.snapshot(r, id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	// The publish handler only needs the target id; the original
	// snapshot preserves the rest of the record for review.
	payload, err := json.Marshal(map[string]uuid.UUID{"id": id})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode change payload"))
		return
	}

	outcome, err := c.gate.Propose(r.Context(), moderation.Proposal{
		EntityType: c.entityType,
		EntityID:   &id,
		Action:     enums.ChangeActionDelete,
		Actor:      actor,
		Role:       role,
		Payload:    payload,
		Original:   original,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	writeOutcome(w, outcome, http.StatusOK)
}

// snapshot serializes the current record so reviewers can diff the
// proposal against what is live today.
func (c *ResourceController[T, PT]) snapshot(r *http.Request, id uuid.UUID) (*string, error) {
	record, err := c.svc.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode original record")
	}
	snapshot := string(raw)
	return &snapshot, nil
}

func writeOutcome(w http.ResponseWriter, outcome *moderation.Outcome, publishedStatus int) {
	status := http.StatusAccepted
	if outcome.Published {
		status = publishedStatus
	}
	responses.WriteSuccessStatus(w, status, outcome)
}

func actorFromRequest(r *http.Request) (string, enums.UserRole, error) {
	actor := middleware.EmailFromContext(r.Context())
	if actor == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeUnauthorized, "actor context missing")
	}
	role := enums.UserRole(middleware.RoleFromContext(r.Context()))
	if !role.IsValid() {
		return "", "", pkgerrors.New(pkgerrors.CodeForbidden, "actor role missing")
	}
	return actor, role, nil
}

func recordIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid record id")
	}
	return id, nil
}
