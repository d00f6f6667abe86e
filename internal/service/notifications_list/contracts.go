package notifications_list

import (
	"context"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/integrations/controller"
)

// ControllerClient интерфейс клиента API контроллера
type ControllerClient interface {
	GetNotifications(ctx context.Context, orgID int64, params domain.QueryParams) (*controller.ListResponse[domain.NotificationTemplate], error)
	GetSuccess(ctx context.Context, orgID int64, idIn string) (*controller.ListResponse[domain.TemplateRef], error)
	GetError(ctx context.Context, orgID int64, idIn string) (*controller.ListResponse[domain.TemplateRef], error)
	PostSuccess(ctx context.Context, orgID int64, req controller.AssociationRequest) error
	PostError(ctx context.Context, orgID int64, req controller.AssociationRequest) error
}

// URLSyncer синхронизирует видимую query string с фактическими параметрами
type URLSyncer interface {
	SyncQuery(orgID int64, params domain.QueryParams)
}

// AuditRecorder интерфейс журнала изменений привязок
type AuditRecorder interface {
	Record(ctx context.Context, change *domain.AssociationChange) error
}

// MetricsCollector интерфейс для сбора метрик переключений
type MetricsCollector interface {
	ObserveToggle(bucket, action string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
