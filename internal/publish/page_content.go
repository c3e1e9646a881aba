package publish

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/internal/pagecontent"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

type pageContentHandler struct {
	svc pagecontent.Service
}

// NewPageContentHandler adapts the page content service to the publish
// surface. Blocks are keyed by (page, section), so create and update both
// collapse into an upsert.
func NewPageContentHandler(svc pagecontent.Service) Handler {
	return &pageContentHandler{svc: svc}
}

func (h *pageContentHandler) Create(ctx context.Context, payload json.RawMessage) error {
	block, err := decodeBlock(payload)
	if err != nil {
		return err
	}
	block.ID = uuid.Nil
	return h.svc.Upsert(ctx, block)
}

func (h *pageContentHandler) Update(ctx context.Context, payload json.RawMessage) error {
	block, err := decodeBlock(payload)
	if err != nil {
		return err
	}
	return h.svc.Upsert(ctx, block)
}

func (h *pageContentHandler) Delete(ctx context.Context, payload json.RawMessage) error {
	block, err := decodeBlock(payload)
	if err != nil {
		return err
	}
	if block.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "delete payload missing block id")
	}
	return h.svc.Delete(ctx, block.ID)
}

func decodeBlock(payload json.RawMessage) (*models.PageContent, error) {
	var block models.PageContent
	if err := json.Unmarshal(payload, &block); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode change payload")
	}
	return &block, nil
}
