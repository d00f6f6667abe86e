package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list"
	"github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list/models"
)

type entry struct {
	list       *notifications_list.List
	lastAccess time.Time
}

// Registry хранит открытые представления уведомлений по id организации.
// Первое обращение к организации открывает представление и загружает его,
// последующие загружают страницу повторно только при смене параметров.
type Registry struct {
	client  ControllerClient
	audit   AuditRecorder
	metrics MetricsCollector
	logger  Logger

	mu        sync.Mutex
	views     map[int64]*entry
	locations map[int64]string

	now func() time.Time
}

// NewRegistry создает реестр представлений. audit и metrics могут быть nil.
func NewRegistry(client ControllerClient, audit AuditRecorder, metrics MetricsCollector, logger Logger) *Registry {
	return &Registry{
		client:    client,
		audit:     audit,
		metrics:   metrics,
		logger:    logger,
		views:     make(map[int64]*entry),
		locations: make(map[int64]string),
		now:       time.Now,
	}
}

// Mount открывает представление организации (если нужно) и загружает страницу.
// Для уже загруженного представления с теми же параметрами запросов не выполняется.
func (r *Registry) Mount(ctx context.Context, orgID int64, params domain.QueryParams) (*models.Snapshot, error) {
	list, created := r.getOrCreate(orgID)
	if created {
		r.logger.Info("Mounted notifications view for organization %d", orgID)
	}

	if !list.Loaded() || !list.Params().Equal(params) {
		if err := list.Fetch(ctx, params); err != nil {
			return nil, fmt.Errorf("Mount - organization %d: %w", orgID, err)
		}
	}

	return list.Snapshot(), nil
}

// Get возвращает открытое представление организации
func (r *Registry) Get(orgID int64) (*notifications_list.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[orgID]
	if !ok {
		return nil, fmt.Errorf("%w: organization %d", ErrViewNotMounted, orgID)
	}
	e.lastAccess = r.now()

	return e.list, nil
}

// Toggle переключает привязку шаблона в открытом представлении организации
func (r *Registry) Toggle(ctx context.Context, orgID, templateID int64, isCurrentlyOn bool, bucket domain.Bucket) (*models.Membership, error) {
	list, err := r.Get(orgID)
	if err != nil {
		return nil, err
	}

	if err := list.ToggleNotification(ctx, templateID, isCurrentlyOn, bucket); err != nil {
		return nil, err
	}

	membership := list.Membership(templateID)
	return &membership, nil
}

// Unmount закрывает представление организации
func (r *Registry) Unmount(orgID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.views[orgID]; !ok {
		return false
	}

	delete(r.views, orgID)
	delete(r.locations, orgID)
	r.reportActive()
	r.logger.Info("Unmounted notifications view for organization %d", orgID)

	return true
}

// EvictIdle закрывает представления, к которым не обращались дольше maxIdle
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	threshold := r.now().Add(-maxIdle)
	evicted := 0

	for orgID, e := range r.views {
		if e.lastAccess.Before(threshold) {
			delete(r.views, orgID)
			delete(r.locations, orgID)
			evicted++
		}
	}

	if evicted > 0 {
		r.reportActive()
		r.logger.Info("Evicted %d idle notifications views", evicted)
	}

	return evicted
}

// RefreshAll повторно загружает все загруженные представления.
// Устаревшие загрузки (вытесненные более новыми изменениями) ошибкой не считаются.
func (r *Registry) RefreshAll(ctx context.Context) error {
	r.mu.Lock()
	lists := make([]*notifications_list.List, 0, len(r.views))
	for _, e := range r.views {
		lists = append(lists, e.list)
	}
	r.mu.Unlock()

	var errs []error
	for _, list := range lists {
		if !list.Loaded() {
			continue
		}

		if err := list.Refresh(ctx); err != nil && !errors.Is(err, notifications_list.ErrStaleFetch) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Active возвращает количество открытых представлений
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// SyncQuery запоминает каноничную query string последней загрузки организации
func (r *Registry) SyncQuery(orgID int64, params domain.QueryParams) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.views[orgID]; !ok {
		return
	}
	r.locations[orgID] = params.Encode()
}

// Location возвращает синхронизированную query string представления организации
func (r *Registry) Location(orgID int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query, ok := r.locations[orgID]
	return query, ok
}

func (r *Registry) getOrCreate(orgID int64) (*notifications_list.List, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.views[orgID]; ok {
		e.lastAccess = r.now()
		return e.list, false
	}

	list := notifications_list.New(orgID, r.client, r, r.audit, r.metrics, r.logger)
	r.views[orgID] = &entry{list: list, lastAccess: r.now()}
	r.reportActive()

	return list, true
}

// reportActive вызывается под r.mu
func (r *Registry) reportActive() {
	if r.metrics != nil {
		r.metrics.SetActiveViews(len(r.views))
	}
}
