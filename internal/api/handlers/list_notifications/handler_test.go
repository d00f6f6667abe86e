package list_notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/list_notifications/models"
	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/integrations/controller"
	"github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list"
	serviceModels "github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list/models"
)

type fakeRegistry struct {
	snapshot *serviceModels.Snapshot
	err      error
	location string

	gotOrgID  int64
	gotParams domain.QueryParams
}

func (f *fakeRegistry) Mount(_ context.Context, orgID int64, params domain.QueryParams) (*serviceModels.Snapshot, error) {
	f.gotOrgID = orgID
	f.gotParams = params
	return f.snapshot, f.err
}

func (f *fakeRegistry) Location(int64) (string, bool) {
	return f.location, f.location != ""
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/organizations/{id}/notifications", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	params := domain.QueryParams{Page: 44, PageSize: 10, OrderBy: "name"}
	state := domain.ViewState{
		SuccessTemplateIDs: domain.NewIDSet(1),
		ErrorTemplateIDs:   domain.NewIDSet(2),
	}
	templates := []domain.NotificationTemplate{
		{ID: 1, NotificationType: "slack"},
		{ID: 2, NotificationType: "email"},
		{ID: 3, NotificationType: "github"},
	}

	registry := &fakeRegistry{
		snapshot: serviceModels.NewSnapshot(1, templates, state, params, true),
		location: params.Encode(),
	}
	h := NewHandler(registry, nopLogger{})

	rec := serve(h, "/api/v1/organizations/1/notifications?page=44&page_size=10&order_by=name")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), registry.gotOrgID)
	assert.Equal(t, params, registry.gotParams)
	assert.Equal(t, "/api/v1/organizations/1/notifications?order_by=name&page=44&page_size=10", rec.Header().Get("Content-Location"))

	var resp models.ListNotificationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].SuccessEnabled)
	assert.False(t, resp.Results[0].ErrorEnabled)
	assert.True(t, resp.Results[1].ErrorEnabled)
	assert.Equal(t, []int64{1}, resp.SuccessTemplateIDs)
	assert.Equal(t, []int64{2}, resp.ErrorTemplateIDs)
	assert.Equal(t, "order_by=name&page=44&page_size=10", resp.Query)
}

func TestHandler_Handle_ForwardsFilters(t *testing.T) {
	registry := &fakeRegistry{
		snapshot: serviceModels.NewSnapshot(5, nil, domain.NewViewState(), domain.QueryParams{}, true),
	}
	h := NewHandler(registry, nopLogger{})

	rec := serve(h, "/api/v1/organizations/5/notifications?notification_type=slack")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "slack", registry.gotParams.Filters.Get("notification_type"))
	assert.Empty(t, rec.Header().Get("Content-Location"))
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "bad organization id", target: "/api/v1/organizations/abc/notifications", wantStatus: http.StatusBadRequest},
		{name: "bad page", target: "/api/v1/organizations/1/notifications?page=x", wantStatus: http.StatusBadRequest},
		{
			name:       "organization not found",
			target:     "/api/v1/organizations/1/notifications",
			err:        fmt.Errorf("%w: %w", notifications_list.ErrFetchFailed, controller.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "upstream failure",
			target:     "/api/v1/organizations/1/notifications",
			err:        fmt.Errorf("%w: %w", notifications_list.ErrFetchFailed, controller.ErrInternal),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "stale fetch",
			target:     "/api/v1/organizations/1/notifications",
			err:        notifications_list.ErrStaleFetch,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unexpected",
			target:     "/api/v1/organizations/1/notifications",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeRegistry{err: tt.err}, nopLogger{})

			rec := serve(h, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
