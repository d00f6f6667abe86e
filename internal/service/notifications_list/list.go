package notifications_list

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/integrations/controller"
	"github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list/models"
)

// List представление шаблонов уведомлений одной организации.
// Хранит текущую страницу шаблонов и множества шаблонов,
// привязанных к оповещениям об успехе и об ошибке.
type List struct {
	orgID     int64
	client    ControllerClient
	urlSyncer URLSyncer
	audit     AuditRecorder
	metrics   MetricsCollector
	logger    Logger

	mu        sync.Mutex
	state     domain.ViewState
	templates []domain.NotificationTemplate
	params    domain.QueryParams
	loaded    bool
	// generation увеличивается при каждой загрузке и каждом успешном переключении.
	// Загрузка фиксирует результат, только если generation не изменился с её начала.
	generation uint64
	// inFlight число выполняющихся загрузок
	inFlight int
}

// New создает пустое представление для организации.
// urlSyncer, audit и metrics могут быть nil.
func New(orgID int64, client ControllerClient, urlSyncer URLSyncer, audit AuditRecorder, metrics MetricsCollector, logger Logger) *List {
	return &List{
		orgID:     orgID,
		client:    client,
		urlSyncer: urlSyncer,
		audit:     audit,
		metrics:   metrics,
		logger:    logger,
		state:     domain.NewViewState(),
	}
}

// OrganizationID возвращает id организации представления
func (l *List) OrganizationID() int64 {
	return l.orgID
}

// Fetch загружает страницу шаблонов с переданными параметрами и их привязки.
// При любой ошибке предыдущее состояние сохраняется без изменений.
func (l *List) Fetch(ctx context.Context, params domain.QueryParams) error {
	l.mu.Lock()
	gen := l.beginFetch()
	l.mu.Unlock()
	defer l.endFetch()

	return l.fetch(ctx, gen, params)
}

// Refresh повторяет загрузку с последними параметрами.
// Если уже выполняется другая загрузка, Refresh ничего не делает.
func (l *List) Refresh(ctx context.Context) error {
	l.mu.Lock()
	if l.inFlight > 0 {
		l.mu.Unlock()
		return nil
	}
	gen := l.beginFetch()
	params := l.params.Clone()
	l.mu.Unlock()
	defer l.endFetch()

	return l.fetch(ctx, gen, params)
}

// beginFetch вызывается под l.mu
func (l *List) beginFetch() uint64 {
	l.generation++
	l.inFlight++
	return l.generation
}

func (l *List) endFetch() {
	l.mu.Lock()
	l.inFlight--
	l.mu.Unlock()
}

func (l *List) fetch(ctx context.Context, gen uint64, params domain.QueryParams) error {
	page, err := l.client.GetNotifications(ctx, l.orgID, params)
	if err != nil {
		return fmt.Errorf("%w: Fetch - get notifications for organization %d: %w", ErrFetchFailed, l.orgID, err)
	}

	templates := append([]domain.NotificationTemplate(nil), page.Results...)
	state := domain.NewViewState()

	// Для пустой страницы фильтровать нечего
	if len(templates) > 0 {
		idIn := domain.JoinIDs(templates)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			resp, err := l.client.GetSuccess(gctx, l.orgID, idIn)
			if err != nil {
				return fmt.Errorf("get success templates: %w", err)
			}
			state.SuccessTemplateIDs = domain.IDSetFromRefs(resp.Results)
			return nil
		})
		g.Go(func() error {
			resp, err := l.client.GetError(gctx, l.orgID, idIn)
			if err != nil {
				return fmt.Errorf("get error templates: %w", err)
			}
			state.ErrorTemplateIDs = domain.IDSetFromRefs(resp.Results)
			return nil
		})

		if err := g.Wait(); err != nil {
			return fmt.Errorf("%w: Fetch - organization %d: %w", ErrFetchFailed, l.orgID, err)
		}
	}

	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		l.logger.Warn("Discarding stale notifications fetch for organization %d", l.orgID)
		return ErrStaleFetch
	}
	l.state = state
	l.templates = templates
	l.params = params.Clone()
	l.loaded = true
	l.mu.Unlock()

	if l.urlSyncer != nil {
		l.urlSyncer.SyncQuery(l.orgID, params)
	}

	l.logger.Info("Fetched %d notification templates for organization %d (success: %d, error: %d)",
		len(templates), l.orgID, len(state.SuccessTemplateIDs), len(state.ErrorTemplateIDs))

	return nil
}

// ToggleNotification переключает привязку шаблона к оповещениям указанного типа.
// isCurrentlyOn - текущее состояние: включенная привязка отвязывается, выключенная привязывается.
func (l *List) ToggleNotification(ctx context.Context, id int64, isCurrentlyOn bool, bucket domain.Bucket) error {
	switch bucket {
	case domain.BucketSuccess:
		return l.PostToSuccess(ctx, id, isCurrentlyOn)
	case domain.BucketError:
		return l.PostToError(ctx, id, isCurrentlyOn)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
}

// PostToSuccess привязывает шаблон к оповещениям об успехе (или отвязывает при disassociate)
func (l *List) PostToSuccess(ctx context.Context, id int64, disassociate bool) error {
	return l.post(ctx, domain.BucketSuccess, id, disassociate, l.client.PostSuccess)
}

// PostToError привязывает шаблон к оповещениям об ошибке (или отвязывает при disassociate)
func (l *List) PostToError(ctx context.Context, id int64, disassociate bool) error {
	return l.post(ctx, domain.BucketError, id, disassociate, l.client.PostError)
}

// post отправляет запрос и только после успешного ответа обновляет локальное множество.
// Тело ответа не анализируется: успешный ответ означает, что запрошенное состояние применено.
func (l *List) post(
	ctx context.Context,
	bucket domain.Bucket,
	id int64,
	disassociate bool,
	send func(ctx context.Context, orgID int64, req controller.AssociationRequest) error,
) error {
	action := domain.ActionFor(disassociate)

	err := send(ctx, l.orgID, controller.AssociationRequest{ID: id, Disassociate: disassociate})
	if l.metrics != nil {
		l.metrics.ObserveToggle(string(bucket), string(action), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s template %d (%s) for organization %d: %w", ErrToggleFailed, action, id, bucket, l.orgID, err)
	}

	l.mu.Lock()
	ids := l.state.IDs(bucket)
	if disassociate {
		ids.Remove(id)
	} else {
		ids.Add(id)
	}
	l.generation++
	l.mu.Unlock()

	l.logger.Info("Template %d: %s (%s) for organization %d", id, action, bucket, l.orgID)

	l.recordAudit(ctx, &domain.AssociationChange{
		OrganizationID: l.orgID,
		TemplateID:     id,
		Bucket:         bucket,
		Action:         action,
		ChangedAt:      time.Now().UTC(),
	})

	return nil
}

// recordAudit пишет изменение в журнал; ошибка журнала не влияет на результат переключения
func (l *List) recordAudit(ctx context.Context, change *domain.AssociationChange) {
	if l.audit == nil {
		return
	}

	if err := l.audit.Record(ctx, change); err != nil {
		l.logger.Error("Failed to record association change for template %d (organization %d): %v",
			change.TemplateID, change.OrganizationID, err)
	}
}

// State возвращает копию текущего состояния привязок
func (l *List) State() domain.ViewState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// Templates возвращает шаблоны текущей страницы
func (l *List) Templates() []domain.NotificationTemplate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.NotificationTemplate(nil), l.templates...)
}

// Params возвращает параметры последней успешной загрузки
func (l *List) Params() domain.QueryParams {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params.Clone()
}

// Loaded сообщает, была ли хотя бы одна успешная загрузка
func (l *List) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Snapshot возвращает согласованный снимок представления
func (l *List) Snapshot() *models.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return models.NewSnapshot(l.orgID, l.templates, l.state, l.params.Clone(), l.loaded)
}

// Membership возвращает привязки шаблона в текущем состоянии
func (l *List) Membership(id int64) models.Membership {
	l.mu.Lock()
	defer l.mu.Unlock()
	return models.Membership{
		TemplateID:     id,
		SuccessEnabled: l.state.SuccessTemplateIDs.Contains(id),
		ErrorEnabled:   l.state.ErrorTemplateIDs.Contains(id),
	}
}
