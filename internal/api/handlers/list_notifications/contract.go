package list_notifications

import (
	"context"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	serviceModels "github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list/models"
)

// ViewRegistry интерфейс реестра представлений уведомлений
type ViewRegistry interface {
	Mount(ctx context.Context, orgID int64, params domain.QueryParams) (*serviceModels.Snapshot, error)
	Location(orgID int64) (string, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
