package toggle_notification

import (
	"context"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	serviceModels "github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list/models"
)

// ViewRegistry интерфейс реестра представлений уведомлений
type ViewRegistry interface {
	Toggle(ctx context.Context, orgID, templateID int64, isCurrentlyOn bool, bucket domain.Bucket) (*serviceModels.Membership, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
