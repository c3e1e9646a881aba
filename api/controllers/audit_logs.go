package controllers

import (
	"net/http"
	"strings"

	"github.com/brightwell-digital/cms-backend/api/responses"
	"github.com/brightwell-digital/cms-backend/api/validators"
	"github.com/brightwell-digital/cms-backend/internal/audit"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
)

// AuditLogsList pages through the audit trail, newest first.
func AuditLogsList(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), audit.ListParams{
			Actor:      strings.TrimSpace(r.URL.Query().Get("actor")),
			Action:     enums.AuditAction(strings.TrimSpace(r.URL.Query().Get("action"))),
			EntityType: enums.EntityType(strings.TrimSpace(r.URL.Query().Get("entity_type"))),
			Limit:      limit,
			Cursor:     strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
