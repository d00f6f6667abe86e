package views

import (
	"github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list"
)

// ControllerClient клиент API контроллера, передаваемый в каждое представление
type ControllerClient = notifications_list.ControllerClient

// AuditRecorder журнал изменений привязок
type AuditRecorder = notifications_list.AuditRecorder

// MetricsCollector метрики представлений
type MetricsCollector interface {
	notifications_list.MetricsCollector
	SetActiveViews(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
