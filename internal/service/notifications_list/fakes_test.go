package notifications_list

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/integrations/controller"
)

type getCall struct {
	orgID int64
	idIn  string
}

type postCall struct {
	orgID int64
	req   controller.AssociationRequest
}

// fakeClient реализация ControllerClient для тестов
type fakeClient struct {
	mu sync.Mutex

	templates  []domain.NotificationTemplate
	successIDs []domain.TemplateRef
	errorIDs   []domain.TemplateRef

	notificationsErr error
	successErr       error
	errorErr         error
	postSuccessErr   error
	postErrorErr     error

	// beforeNotificationsReturn вызывается перед ответом GetNotifications
	beforeNotificationsReturn func()

	notificationsCalls []domain.QueryParams
	successCalls       []getCall
	errorCalls         []getCall
	postSuccessCalls   []postCall
	postErrorCalls     []postCall
}

func (f *fakeClient) GetNotifications(_ context.Context, orgID int64, params domain.QueryParams) (*controller.ListResponse[domain.NotificationTemplate], error) {
	f.mu.Lock()
	f.notificationsCalls = append(f.notificationsCalls, params)
	hook := f.beforeNotificationsReturn
	templates := f.templates
	err := f.notificationsErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return &controller.ListResponse[domain.NotificationTemplate]{Count: len(templates), Results: templates}, nil
}

func (f *fakeClient) GetSuccess(_ context.Context, orgID int64, idIn string) (*controller.ListResponse[domain.TemplateRef], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.successCalls = append(f.successCalls, getCall{orgID: orgID, idIn: idIn})
	if f.successErr != nil {
		return nil, f.successErr
	}
	return &controller.ListResponse[domain.TemplateRef]{Count: len(f.successIDs), Results: f.successIDs}, nil
}

func (f *fakeClient) GetError(_ context.Context, orgID int64, idIn string) (*controller.ListResponse[domain.TemplateRef], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errorCalls = append(f.errorCalls, getCall{orgID: orgID, idIn: idIn})
	if f.errorErr != nil {
		return nil, f.errorErr
	}
	return &controller.ListResponse[domain.TemplateRef]{Count: len(f.errorIDs), Results: f.errorIDs}, nil
}

func (f *fakeClient) PostSuccess(_ context.Context, orgID int64, req controller.AssociationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.postSuccessCalls = append(f.postSuccessCalls, postCall{orgID: orgID, req: req})
	return f.postSuccessErr
}

func (f *fakeClient) PostError(_ context.Context, orgID int64, req controller.AssociationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.postErrorCalls = append(f.postErrorCalls, postCall{orgID: orgID, req: req})
	return f.postErrorErr
}

type fakeURLSyncer struct {
	calls []domain.QueryParams
}

func (s *fakeURLSyncer) SyncQuery(_ int64, params domain.QueryParams) {
	s.calls = append(s.calls, params)
}

type fakeAudit struct {
	changes []*domain.AssociationChange
	err     error
}

func (a *fakeAudit) Record(_ context.Context, change *domain.AssociationChange) error {
	if a.err != nil {
		return a.err
	}
	a.changes = append(a.changes, change)
	return nil
}

type fakeMetrics struct {
	toggles []string
}

func (m *fakeMetrics) ObserveToggle(bucket, action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.toggles = append(m.toggles, bucket+"/"+action+"/"+outcome)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
