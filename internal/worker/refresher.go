package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher периодически синхронизирует открытые представления с API контроллера
// и закрывает неиспользуемые
type Refresher struct {
	registry        ViewRegistry
	logger          Logger
	scheduler       *gocron.Scheduler
	refreshInterval time.Duration
	evictInterval   time.Duration
	viewTTL         time.Duration
	ctx             context.Context
	cancel          context.CancelFunc
}

// NewRefresher создает новый экземпляр
func NewRefresher(registry ViewRegistry, logger Logger, refreshInterval, evictInterval, viewTTL time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())

	scheduler := gocron.NewScheduler(time.UTC)
	// Следующий запуск задачи не начинается, пока не завершился предыдущий
	scheduler.SingletonModeAll()

	return &Refresher{
		registry:        registry,
		logger:          logger,
		scheduler:       scheduler,
		refreshInterval: refreshInterval,
		evictInterval:   evictInterval,
		viewTTL:         viewTTL,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Start регистрирует задачи и запускает планировщик
func (r *Refresher) Start() error {
	r.logger.Info("Starting views refresher (refresh: %s, evict: %s, ttl: %s)", r.refreshInterval, r.evictInterval, r.viewTTL)

	if _, err := r.scheduler.Every(r.refreshInterval).WaitForSchedule().Do(r.refresh); err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}

	if _, err := r.scheduler.Every(r.evictInterval).WaitForSchedule().Do(r.evict); err != nil {
		return fmt.Errorf("failed to schedule evict job: %w", err)
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop останавливает планировщик
func (r *Refresher) Stop() {
	r.logger.Info("Stopping views refresher")
	r.cancel()
	r.scheduler.Stop()
	r.logger.Info("Views refresher stopped")
}

// refresh загружает актуальные привязки для всех открытых представлений
func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(r.ctx, r.refreshInterval)
	defer cancel()

	if err := r.registry.RefreshAll(ctx); err != nil {
		r.logger.Error("Failed to refresh notifications views: %v", err)
	}
}

// evict закрывает представления, не используемые дольше viewTTL
func (r *Refresher) evict() {
	if n := r.registry.EvictIdle(r.viewTTL); n > 0 {
		r.logger.Info("Refresher evicted %d idle views", n)
	}
}
