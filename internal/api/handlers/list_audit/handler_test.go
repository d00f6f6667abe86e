package list_audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/list_audit/models"
	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/infra/storage/toggle_audit"
	"github.com/m04kA/SMC-OrgNotifications/pkg/ptr"
)

type fakeRepo struct {
	changes []*domain.AssociationChange
	err     error
	filter  toggle_audit.ListFilter
}

func (f *fakeRepo) List(_ context.Context, filter toggle_audit.ListFilter) ([]*domain.AssociationChange, error) {
	f.filter = filter
	return f.changes, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/organizations/{id}/notifications/audit", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	changedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{changes: []*domain.AssociationChange{
		{ID: 3, OrganizationID: 1, TemplateID: 44, Bucket: domain.BucketError, Action: domain.ActionAssociate, ChangedAt: changedAt},
	}}
	h := NewHandler(repo, nopLogger{})

	rec := serve(h, "/api/v1/organizations/1/notifications/audit?template_id=44&status=error&page=2&limit=10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), repo.filter.OrganizationID)
	assert.Equal(t, int64(44), ptr.PtrGet(repo.filter.TemplateID))
	assert.Equal(t, domain.BucketError, ptr.PtrGet(repo.filter.Bucket))
	assert.Equal(t, 10, repo.filter.Limit)
	assert.Equal(t, 10, repo.filter.Offset)

	var resp models.ListAuditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "error", resp.Changes[0].Status)
	assert.Equal(t, "associate", resp.Changes[0].Action)
	assert.True(t, changedAt.Equal(resp.Changes[0].ChangedAt))
}

func TestHandler_Handle_Defaults(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, nopLogger{})

	rec := serve(h, "/api/v1/organizations/1/notifications/audit")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultLimit, repo.filter.Limit)
	assert.Equal(t, 0, repo.filter.Offset)
	assert.Nil(t, repo.filter.TemplateID)
	assert.Nil(t, repo.filter.Bucket)
}

func TestHandler_Handle_MaxPage(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, nopLogger{})

	rec := serve(h, fmt.Sprintf("/api/v1/organizations/1/notifications/audit?page=%d&limit=%d", models.MaxPage, models.MaxLimit))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, (models.MaxPage-1)*models.MaxLimit, repo.filter.Offset)
	assert.Positive(t, repo.filter.Offset)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		repoErr    error
		wantStatus int
	}{
		{"bad status", "/api/v1/organizations/1/notifications/audit?status=started", nil, http.StatusBadRequest},
		{"bad template id", "/api/v1/organizations/1/notifications/audit?template_id=x", nil, http.StatusBadRequest},
		{"page too large", "/api/v1/organizations/1/notifications/audit?page=9223372036854775807&limit=500", nil, http.StatusBadRequest},
		{"page above max", "/api/v1/organizations/1/notifications/audit?page=100001", nil, http.StatusBadRequest},
		{"bad organization", "/api/v1/organizations/0/notifications/audit", nil, http.StatusBadRequest},
		{"repository error", "/api/v1/organizations/1/notifications/audit", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeRepo{err: tt.repoErr}, nopLogger{})

			rec := serve(h, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
