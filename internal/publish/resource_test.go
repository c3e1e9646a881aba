package publish

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brightwell-digital/cms-backend/internal/resources"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/types"
)

func setupPublishTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:publish_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS companies (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  tagline TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  mission TEXT NOT NULL DEFAULT '',
  vision TEXT NOT NULL DEFAULT '',
  logo_url TEXT NOT NULL DEFAULT '',
  stats TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM companies").Error)
	return db
}

func newCompanyHandler(t *testing.T, db *gorm.DB) (Handler, resources.Service[models.Company, *models.Company]) {
	t.Helper()
	repo := resources.NewRepository[models.Company, *models.Company](db, "")
	svc, err := resources.NewService[models.Company, *models.Company](repo)
	require.NoError(t, err)
	return NewResourceHandler[models.Company, *models.Company](svc), svc
}

func TestCreateStripsSubmittedID(t *testing.T) {
	db := setupPublishTestDB(t)
	handler, svc := newCompanyHandler(t, db)
	ctx := context.Background()

	submitted := uuid.New()
	payload, err := json.Marshal(models.Company{
		ID:   submitted,
		Name: "Brightwell Group",
		Stats: types.StatList{
			{Label: "Employees", Value: "1200"},
			{Label: "Countries", Value: "14"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, handler.Create(ctx, payload))

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEqual(t, submitted, rows[0].ID, "database assigns identity on create")
	assert.NotEqual(t, uuid.Nil, rows[0].ID)

	// Nested stats survive the serialize/store/publish round trip.
	require.Len(t, rows[0].Stats, 2)
	assert.Equal(t, "Employees", rows[0].Stats[0].Label)
	assert.Equal(t, "1200", rows[0].Stats[0].Value)
	assert.Equal(t, "14", rows[0].Stats[1].Value)
}

func TestUpdateAndDeleteRequireID(t *testing.T) {
	db := setupPublishTestDB(t)
	handler, _ := newCompanyHandler(t, db)
	ctx := context.Background()

	var appErr *pkgerrors.Error
	err := handler.Update(ctx, json.RawMessage(`{"name":"No ID"}`))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())

	err = handler.Delete(ctx, json.RawMessage(`{"name":"No ID"}`))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}

func TestUpdatePublishesFullOverwrite(t *testing.T) {
	db := setupPublishTestDB(t)
	handler, svc := newCompanyHandler(t, db)
	ctx := context.Background()

	require.NoError(t, handler.Create(ctx, json.RawMessage(`{"name":"Before","tagline":"old"}`)))
	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	payload, err := json.Marshal(models.Company{ID: rows[0].ID, Name: "After"})
	require.NoError(t, err)
	require.NoError(t, handler.Update(ctx, payload))

	loaded, err := svc.Get(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "After", loaded.Name)
	assert.Equal(t, "", loaded.Tagline)
}

func TestDeleteRemovesRecord(t *testing.T) {
	db := setupPublishTestDB(t)
	handler, svc := newCompanyHandler(t, db)
	ctx := context.Background()

	require.NoError(t, handler.Create(ctx, json.RawMessage(`{"name":"Ephemeral"}`)))
	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	payload, err := json.Marshal(models.Company{ID: rows[0].ID})
	require.NoError(t, err)
	require.NoError(t, handler.Delete(ctx, payload))

	remaining, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCorruptPayloadIsInternal(t *testing.T) {
	db := setupPublishTestDB(t)
	handler, _ := newCompanyHandler(t, db)

	err := handler.Create(context.Background(), json.RawMessage(`{"name":`))
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeInternal, appErr.Code())
}
