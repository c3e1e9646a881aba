package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

// Handler applies one approved change payload to its live collection.
type Handler interface {
	Create(ctx context.Context, payload json.RawMessage) error
	Update(ctx context.Context, payload json.RawMessage) error
	Delete(ctx context.Context, payload json.RawMessage) error
}

// Registry routes approved changes to the handler registered for their
// entity type. A missing handler is a wiring bug, not a client error.
type Registry struct {
	handlers map[enums.EntityType]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[enums.EntityType]Handler)}
}

// Register binds a handler to an entity type, replacing any previous binding.
func (r *Registry) Register(entityType enums.EntityType, handler Handler) {
	r.handlers[entityType] = handler
}

// Publish applies the change to the live collection it targets.
func (r *Registry) Publish(ctx context.Context, change *models.PendingChange) error {
	handler, ok := r.handlers[change.EntityType]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeInternal,
			fmt.Sprintf("no publish handler for entity type %q", change.EntityType))
	}

	payload := json.RawMessage(change.ChangeData)
	switch change.Action {
	case enums.ChangeActionCreate:
		return handler.Create(ctx, payload)
	case enums.ChangeActionUpdate:
		return handler.Update(ctx, payload)
	case enums.ChangeActionDelete:
		return handler.Delete(ctx, payload)
	default:
		return pkgerrors.New(pkgerrors.CodeInternal,
			fmt.Sprintf("unknown change action %q", change.Action))
	}
}
