package list_audit

import (
	"context"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/infra/storage/toggle_audit"
)

// AuditRepository интерфейс журнала изменений привязок
type AuditRepository interface {
	List(ctx context.Context, filter toggle_audit.ListFilter) ([]*domain.AssociationChange, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
