package publish

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

type recordingHandler struct {
	created []json.RawMessage
	updated []json.RawMessage
	deleted []json.RawMessage
}

func (h *recordingHandler) Create(_ context.Context, payload json.RawMessage) error {
	h.created = append(h.created, payload)
	return nil
}

func (h *recordingHandler) Update(_ context.Context, payload json.RawMessage) error {
	h.updated = append(h.updated, payload)
	return nil
}

func (h *recordingHandler) Delete(_ context.Context, payload json.RawMessage) error {
	h.deleted = append(h.deleted, payload)
	return nil
}

func TestRegistryRoutesByEntityTypeAndAction(t *testing.T) {
	events := &recordingHandler{}
	partners := &recordingHandler{}
	registry := NewRegistry()
	registry.Register(enums.EntityEvent, events)
	registry.Register(enums.EntityPartner, partners)
	ctx := context.Background()

	require.NoError(t, registry.Publish(ctx, &models.PendingChange{
		EntityType: enums.EntityEvent,
		Action:     enums.ChangeActionCreate,
		ChangeData: `{"title":"Summit"}`,
	}))
	require.NoError(t, registry.Publish(ctx, &models.PendingChange{
		EntityType: enums.EntityEvent,
		Action:     enums.ChangeActionUpdate,
		ChangeData: `{"title":"Summit 2026"}`,
	}))
	require.NoError(t, registry.Publish(ctx, &models.PendingChange{
		EntityType: enums.EntityPartner,
		Action:     enums.ChangeActionDelete,
		ChangeData: `{"id":"00000000-0000-0000-0000-000000000001"}`,
	}))

	assert.Len(t, events.created, 1)
	assert.Len(t, events.updated, 1)
	assert.Empty(t, events.deleted)
	assert.Len(t, partners.deleted, 1)
	assert.JSONEq(t, `{"title":"Summit"}`, string(events.created[0]))
}

func TestRegistryUnsupportedEntityType(t *testing.T) {
	registry := NewRegistry()
	registry.Register(enums.EntityEvent, &recordingHandler{})

	err := registry.Publish(context.Background(), &models.PendingChange{
		EntityType: enums.EntityPartner,
		Action:     enums.ChangeActionCreate,
		ChangeData: `{}`,
	})

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}

func TestRegistryUnknownAction(t *testing.T) {
	registry := NewRegistry()
	registry.Register(enums.EntityEvent, &recordingHandler{})

	err := registry.Publish(context.Background(), &models.PendingChange{
		EntityType: enums.EntityEvent,
		Action:     "replace",
		ChangeData: `{}`,
	})

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}
