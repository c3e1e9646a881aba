package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:audit_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS audit_logs (
  id TEXT PRIMARY KEY,
  actor TEXT NOT NULL,
  action TEXT NOT NULL,
  entity_type TEXT,
  entity_id TEXT,
  change_id TEXT,
  detail TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM audit_logs").Error)
	return db
}

func newAuditService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func TestRecordAndList(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db)
	ctx := context.Background()

	entityType := enums.EntityEvent
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		svc.Record(ctx, &models.AuditLog{
			Actor:      "editor@brightwell.example",
			Action:     enums.AuditActionSubmit,
			EntityType: &entityType,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	svc.Record(ctx, &models.AuditLog{
		Actor:     "admin@brightwell.example",
		Action:    enums.AuditActionLogin,
		CreatedAt: base.Add(10 * time.Minute),
	})

	result, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 4)
	assert.Equal(t, enums.AuditActionLogin, result.Items[0].Action, "newest first")
	assert.Empty(t, result.Cursor)

	byActor, err := svc.List(ctx, ListParams{Actor: "admin@brightwell.example"})
	require.NoError(t, err)
	assert.Len(t, byActor.Items, 1)

	byAction, err := svc.List(ctx, ListParams{Action: enums.AuditActionSubmit})
	require.NoError(t, err)
	assert.Len(t, byAction.Items, 3)
}

func TestListPaginates(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := newAuditService(t, db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		svc.Record(ctx, &models.AuditLog{
			Actor:     "editor@brightwell.example",
			Action:    enums.AuditActionSubmit,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	first, err := svc.List(ctx, ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.Cursor)

	second, err := svc.List(ctx, ListParams{Limit: 2, Cursor: first.Cursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)

	// No overlap across pages.
	seen := map[string]bool{}
	for _, entry := range append(first.Items, second.Items...) {
		require.False(t, seen[entry.ID.String()])
		seen[entry.ID.String()] = true
	}

	_, err = svc.List(ctx, ListParams{Cursor: "bogus cursor"})
	require.Error(t, err)
}
