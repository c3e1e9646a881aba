package publish

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/internal/resources"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

type resourceHandler[T any, PT interface {
	*T
	resources.Entity
}] struct {
	svc resources.Service[T, PT]
}

// NewResourceHandler adapts a collection service to the publish surface.
// Payloads were validated structurally at submission time, so a decode
// failure here means the stored change is corrupt.
func NewResourceHandler[T any, PT interface {
	*T
	resources.Entity
}](svc resources.Service[T, PT]) Handler {
	return &resourceHandler[T, PT]{svc: svc}
}

func (h *resourceHandler[T, PT]) Create(ctx context.Context, payload json.RawMessage) error {
	record, err := decodeRecord[T, PT](payload)
	if err != nil {
		return err
	}
	// The database assigns identity. Any id in the payload is discarded so
	// submitters cannot choose primary keys.
	record.SetID(uuid.Nil)
	return h.svc.Create(ctx, record)
}

func (h *resourceHandler[T, PT]) Update(ctx context.Context, payload json.RawMessage) error {
	record, err := decodeRecord[T, PT](payload)
	if err != nil {
		return err
	}
	if record.GetID() == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "update payload missing record id")
	}
	return h.svc.Update(ctx, record)
}

func (h *resourceHandler[T, PT]) Delete(ctx context.Context, payload json.RawMessage) error {
	record, err := decodeRecord[T, PT](payload)
	if err != nil {
		return err
	}
	if record.GetID() == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "delete payload missing record id")
	}
	return h.svc.Delete(ctx, record.GetID())
}

func decodeRecord[T any, PT interface {
	*T
	resources.Entity
}](payload json.RawMessage) (PT, error) {
	record := PT(new(T))
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode change payload")
	}
	return record, nil
}
