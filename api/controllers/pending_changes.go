package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/api/middleware"
	"github.com/brightwell-digital/cms-backend/api/responses"
	"github.com/brightwell-digital/cms-backend/api/validators"
	"github.com/brightwell-digital/cms-backend/internal/moderation"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
)

type reviewRequest struct {
	Comments string `json:"comments,omitempty"`
}

// maxReviewCommentsLen bounds the free-text comments stored on an envelope.
const maxReviewCommentsLen = 2000

// PendingChangesList returns the review queue. The queue shows open
// envelopes; a status query parameter switches to reviewed history.
func PendingChangesList(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "moderation service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes, err := svc.List(r.Context(), moderation.ListParams{
			Status:      queueStatusFilter(r),
			EntityType:  enums.EntityType(strings.TrimSpace(r.URL.Query().Get("entity_type"))),
			SubmittedBy: strings.TrimSpace(r.URL.Query().Get("submitted_by")),
			Limit:       limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, changes)
	}
}

// PendingChangesMine returns the caller's own submissions so editors
// can track their queue without review privileges.
func PendingChangesMine(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "moderation service unavailable"))
			return
		}

		actor := middleware.EmailFromContext(r.Context())
		if actor == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes, err := svc.List(r.Context(), moderation.ListParams{
			Status:      enums.ChangeStatus(strings.TrimSpace(r.URL.Query().Get("status"))),
			SubmittedBy: actor,
			Limit:       limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, changes)
	}
}

// PendingChangesListByType returns the queue for one entity type.
func PendingChangesListByType(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "moderation service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes, err := svc.List(r.Context(), moderation.ListParams{
			Status:     queueStatusFilter(r),
			EntityType: enums.EntityType(chi.URLParam(r, "entityType")),
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, changes)
	}
}

// PendingChangeGet returns a single change envelope by id.
func PendingChangeGet(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "moderation service unavailable"))
			return
		}

		id, err := changeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		change, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, change)
	}
}

// PendingChangeApprove publishes the change and settles its envelope.
// Review comments are optional and so is the request body.
func PendingChangeApprove(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "moderation service unavailable"))
			return
		}

		reviewer := middleware.EmailFromContext(r.Context())
		if reviewer == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "reviewer context missing"))
			return
		}

		id, err := changeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var comments *string
		if r.ContentLength != 0 {
			var payload reviewRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if clean := validators.SanitizeString(payload.Comments, maxReviewCommentsLen); clean != "" {
				comments = &clean
			}
		}

		change, err := svc.Approve(r.Context(), id, reviewer, comments)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, change)
	}
}

// PendingChangeReject settles the envelope without publishing. Comments
// are required so the submitter learns why.
func PendingChangeReject(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "moderation service unavailable"))
			return
		}

		reviewer := middleware.EmailFromContext(r.Context())
		if reviewer == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "reviewer context missing"))
			return
		}

		id, err := changeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		change, err := svc.Reject(r.Context(), id, reviewer, validators.SanitizeString(payload.Comments, maxReviewCommentsLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, change)
	}
}

// PendingChangeDelete removes a settled envelope from the queue history.
func PendingChangeDelete(svc moderation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "moderation service unavailable"))
			return
		}

		actor := middleware.EmailFromContext(r.Context())
		if actor == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor context missing"))
			return
		}

		id, err := changeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// queueStatusFilter resolves the status filter for queue listings.
// Without an explicit status the queue only shows open envelopes.
func queueStatusFilter(r *http.Request) enums.ChangeStatus {
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		return enums.ChangeStatus(raw)
	}
	return enums.ChangeStatusPending
}

func changeIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid change id")
	}
	return id, nil
}
