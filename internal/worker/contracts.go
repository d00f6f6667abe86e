package worker

import (
	"context"
	"time"
)

// ViewRegistry интерфейс реестра открытых представлений
type ViewRegistry interface {
	// RefreshAll повторно загружает все загруженные представления из API контроллера
	RefreshAll(ctx context.Context) error

	// EvictIdle закрывает представления, к которым не обращались дольше maxIdle
	EvictIdle(maxIdle time.Duration) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
