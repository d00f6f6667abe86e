package controller

// MetricsCollector интерфейс для сбора метрик запросов
type MetricsCollector interface {
	ObserveUpstream(operation string, seconds float64, err error)
}
