package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/api/middleware"
	"github.com/brightwell-digital/cms-backend/internal/moderation"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

type stubModerationService struct {
	change *models.PendingChange
	list   []models.PendingChange
	err    error
	open   bool

	submitParams  *moderation.SubmitParams
	preParams     *moderation.SubmitParams
	listParams    *moderation.ListParams
	approvedID    uuid.UUID
	approver      string
	approveNotes  *string
	rejectedID    uuid.UUID
	rejectNotes   string
	deletedID     uuid.UUID
	deletionActor string
}

func (s *stubModerationService) Submit(ctx context.Context, params moderation.SubmitParams) (*models.PendingChange, error) {
	s.submitParams = &params
	return s.change, s.err
}

func (s *stubModerationService) SubmitPreApproved(ctx context.Context, params moderation.SubmitParams) (*models.PendingChange, error) {
	s.preParams = &params
	return s.change, s.err
}

func (s *stubModerationService) HasOpenChange(ctx context.Context, entityID uuid.UUID) (bool, error) {
	return s.open, nil
}

func (s *stubModerationService) Approve(ctx context.Context, id uuid.UUID, reviewer string, comments *string) (*models.PendingChange, error) {
	s.approvedID = id
	s.approver = reviewer
	s.approveNotes = comments
	return s.change, s.err
}

func (s *stubModerationService) Reject(ctx context.Context, id uuid.UUID, reviewer string, comments string) (*models.PendingChange, error) {
	s.rejectedID = id
	s.rejectNotes = comments
	return s.change, s.err
}

func (s *stubModerationService) Get(ctx context.Context, id uuid.UUID) (*models.PendingChange, error) {
	return s.change, s.err
}

func (s *stubModerationService) List(ctx context.Context, params moderation.ListParams) ([]models.PendingChange, error) {
	s.listParams = &params
	return s.list, s.err
}

func (s *stubModerationService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	s.deletedID = id
	s.deletionActor = actor
	return s.err
}

func pendingChangeFixture() *models.PendingChange {
	entityID := uuid.New()
	return &models.PendingChange{
		ID:          uuid.New(),
		EntityType:  enums.EntityEvent,
		EntityID:    &entityID,
		Action:      enums.ChangeActionUpdate,
		Status:      enums.ChangeStatusPending,
		SubmittedBy: "editor@brightwell.example",
		SubmittedAt: time.Now().UTC(),
		ChangeData:  `{"title":"Updated"}`,
	}
}

func reviewerContext(req *http.Request) *http.Request {
	ctx := middleware.WithActor(req.Context(), uuid.NewString(), "admin@brightwell.example", string(enums.RoleAdmin))
	return req.WithContext(ctx)
}

func serveReviewRoute(method, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(method, pattern, handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPendingChangesListAppliesFilters(t *testing.T) {
	svc := &stubModerationService{list: []models.PendingChange{*pendingChangeFixture()}}
	handler := PendingChangesList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/pending-changes?status=pending&entity_type=event&submitted_by=editor@brightwell.example&limit=5", nil)
	rec := serveReviewRoute(http.MethodGet, "/pending-changes", handler, reviewerContext(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.listParams == nil {
		t.Fatal("expected list to be called")
	}
	if svc.listParams.Status != enums.ChangeStatusPending {
		t.Fatalf("expected pending filter got %q", svc.listParams.Status)
	}
	if svc.listParams.EntityType != enums.EntityEvent {
		t.Fatalf("expected event filter got %q", svc.listParams.EntityType)
	}
	if svc.listParams.Limit != 5 {
		t.Fatalf("expected limit 5 got %d", svc.listParams.Limit)
	}
}

func TestPendingChangesListDefaultsToPending(t *testing.T) {
	svc := &stubModerationService{list: []models.PendingChange{*pendingChangeFixture()}}
	handler := PendingChangesList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/pending-changes", nil)
	rec := serveReviewRoute(http.MethodGet, "/pending-changes", handler, reviewerContext(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.listParams == nil {
		t.Fatal("expected list to be called")
	}
	if svc.listParams.Status != enums.ChangeStatusPending {
		t.Fatalf("bare queue listing must filter to pending, got %q", svc.listParams.Status)
	}
}

func TestPendingChangesListStatusOverride(t *testing.T) {
	svc := &stubModerationService{}
	handler := PendingChangesList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/pending-changes?status=rejected", nil)
	serveReviewRoute(http.MethodGet, "/pending-changes", handler, reviewerContext(req))

	if svc.listParams == nil {
		t.Fatal("expected list to be called")
	}
	if svc.listParams.Status != enums.ChangeStatusRejected {
		t.Fatalf("expected rejected filter got %q", svc.listParams.Status)
	}
}

func TestPendingChangesListByTypeDefaultsToPending(t *testing.T) {
	svc := &stubModerationService{}
	handler := PendingChangesListByType(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/pending-changes/type/event", nil)
	serveReviewRoute(http.MethodGet, "/pending-changes/type/{entityType}", handler, reviewerContext(req))

	if svc.listParams == nil {
		t.Fatal("expected list to be called")
	}
	if svc.listParams.Status != enums.ChangeStatusPending {
		t.Fatalf("bare type listing must filter to pending, got %q", svc.listParams.Status)
	}
	if svc.listParams.EntityType != enums.EntityEvent {
		t.Fatalf("expected event filter got %q", svc.listParams.EntityType)
	}
}

func TestPendingChangesListRejectsBadLimit(t *testing.T) {
	handler := PendingChangesList(&stubModerationService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pending-changes?limit=overflow", nil)
	rec := serveReviewRoute(http.MethodGet, "/pending-changes", handler, reviewerContext(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPendingChangeApproveWithoutBody(t *testing.T) {
	change := pendingChangeFixture()
	svc := &stubModerationService{change: change}
	handler := PendingChangeApprove(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/pending-changes/"+change.ID.String()+"/approve", nil)
	rec := serveReviewRoute(http.MethodPost, "/pending-changes/{id}/approve", handler, reviewerContext(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.approvedID != change.ID {
		t.Fatalf("expected approve on %s got %s", change.ID, svc.approvedID)
	}
	if svc.approver != "admin@brightwell.example" {
		t.Fatalf("unexpected reviewer %q", svc.approver)
	}
	if svc.approveNotes != nil {
		t.Fatalf("expected no comments got %q", *svc.approveNotes)
	}
}

func TestPendingChangeApproveWithComments(t *testing.T) {
	change := pendingChangeFixture()
	svc := &stubModerationService{change: change}
	handler := PendingChangeApprove(svc, nil)

	body := bytes.NewReader([]byte(`{"comments":"looks good"}`))
	req := httptest.NewRequest(http.MethodPost, "/pending-changes/"+change.ID.String()+"/approve", body)
	rec := serveReviewRoute(http.MethodPost, "/pending-changes/{id}/approve", handler, reviewerContext(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.approveNotes == nil || *svc.approveNotes != "looks good" {
		t.Fatalf("expected comments to reach the service, got %v", svc.approveNotes)
	}
}

func TestPendingChangeApproveMissingReviewer(t *testing.T) {
	handler := PendingChangeApprove(&stubModerationService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/pending-changes/"+uuid.NewString()+"/approve", nil)
	rec := serveReviewRoute(http.MethodPost, "/pending-changes/{id}/approve", handler, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestPendingChangeApproveInvalidID(t *testing.T) {
	handler := PendingChangeApprove(&stubModerationService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/pending-changes/not-a-uuid/approve", nil)
	rec := serveReviewRoute(http.MethodPost, "/pending-changes/{id}/approve", handler, reviewerContext(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPendingChangeApproveAlreadyReviewed(t *testing.T) {
	svc := &stubModerationService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "change already reviewed")}
	handler := PendingChangeApprove(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/pending-changes/"+uuid.NewString()+"/approve", nil)
	rec := serveReviewRoute(http.MethodPost, "/pending-changes/{id}/approve", handler, reviewerContext(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "change already reviewed" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestPendingChangeRejectRequiresBody(t *testing.T) {
	svc := &stubModerationService{change: pendingChangeFixture()}
	handler := PendingChangeReject(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/pending-changes/"+uuid.NewString()+"/reject", bytes.NewReader(nil))
	rec := serveReviewRoute(http.MethodPost, "/pending-changes/{id}/reject", handler, reviewerContext(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPendingChangeRejectPassesComments(t *testing.T) {
	change := pendingChangeFixture()
	svc := &stubModerationService{change: change}
	handler := PendingChangeReject(svc, nil)

	body := bytes.NewReader([]byte(`{"comments":"missing event date"}`))
	req := httptest.NewRequest(http.MethodPost, "/pending-changes/"+change.ID.String()+"/reject", body)
	rec := serveReviewRoute(http.MethodPost, "/pending-changes/{id}/reject", handler, reviewerContext(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.rejectedID != change.ID {
		t.Fatalf("expected reject on %s got %s", change.ID, svc.rejectedID)
	}
	if svc.rejectNotes != "missing event date" {
		t.Fatalf("unexpected comments %q", svc.rejectNotes)
	}
}

func TestPendingChangeDeletePassesActor(t *testing.T) {
	change := pendingChangeFixture()
	svc := &stubModerationService{change: change}
	handler := PendingChangeDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/pending-changes/"+change.ID.String(), nil)
	rec := serveReviewRoute(http.MethodDelete, "/pending-changes/{id}", handler, reviewerContext(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.deletedID != change.ID {
		t.Fatalf("expected delete on %s got %s", change.ID, svc.deletedID)
	}
	if svc.deletionActor != "admin@brightwell.example" {
		t.Fatalf("unexpected actor %q", svc.deletionActor)
	}
}
