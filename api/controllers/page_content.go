package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/api/responses"
	"github.com/brightwell-digital/cms-backend/api/validators"
	"github.com/brightwell-digital/cms-backend/internal/moderation"
	"github.com/brightwell-digital/cms-backend/internal/pagecontent"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
)

type pageContentUpsertRequest struct {
	Page    string `json:"page" validate:"required"`
	Section string `json:"section" validate:"required"`
	Content string `json:"content"`
}

// PageContentList returns all blocks for one page, ordered by section.
func PageContentList(svc pagecontent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page content service unavailable"))
			return
		}

		page := strings.TrimSpace(chi.URLParam(r, "page"))
		if page == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "page is required"))
			return
		}

		blocks, err := svc.ListByPage(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blocks)
	}
}

// PageContentGet returns a single block addressed by page and section.
func PageContentGet(svc pagecontent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page content service unavailable"))
			return
		}

		block, err := svc.Get(r.Context(), chi.URLParam(r, "page"), chi.URLParam(r, "section"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, block)
	}
}

// PageContentUpsert proposes creating or replacing one block. Whether a
// block already exists at (page, section) decides whether the proposal
// is a create or an update; either way publishing upserts on that key.
func PageContentUpsert(svc pagecontent.Service, gate *moderation.Gate, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || gate == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page content service unavailable"))
			return
		}

		actor, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload pageContentUpsertRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		proposal := moderation.Proposal{
			EntityType: enums.EntityPageContent,
			Action:     enums.ChangeActionCreate,
			Actor:      actor,
			Role:       role,
		}

		block := models.PageContent{
			Page:    payload.Page,
			Section: payload.Section,
			Content: payload.Content,
		}

		existing, err := svc.Get(r.Context(), payload.Page, payload.Section)
		appErr := pkgerrors.As(err)
		switch {
		case err == nil:
			raw, marshalErr := json.Marshal(existing)
			if marshalErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, marshalErr, "encode original block"))
				return
			}
			snapshot := string(raw)
			block.ID = existing.ID
			proposal.Action = enums.ChangeActionUpdate
			proposal.EntityID = &existing.ID
			proposal.Original = &snapshot
		case appErr != nil && appErr.Code() == pkgerrors.CodeNotFound:
			// First write to this (page, section) key.
		default:
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw, err := json.Marshal(block)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode change payload"))
			return
		}
		proposal.Payload = raw

		outcome, err := gate.Propose(r.Context(), proposal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeOutcome(w, outcome, http.StatusOK)
	}
}

// PageContentDelete proposes removing one block by id.
func PageContentDelete(gate *moderation.Gate, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gate == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page content service unavailable"))
			return
		}

		actor, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := recordIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := json.Marshal(map[string]uuid.UUID{"id": id})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode change payload"))
			return
		}

		outcome, err := gate.Propose(r.Context(), moderation.Proposal{
			EntityType: enums.EntityPageContent,
			EntityID:   &id,
			Action:     enums.ChangeActionDelete,
			Actor:      actor,
			Role:       role,
			Payload:    payload,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeOutcome(w, outcome, http.StatusOK)
	}
}
