package toggle_audit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/pkg/psqlbuilder"
)

const tableName = "notification_association_changes"

var columns = []string{
	"id",
	"organization_id",
	"template_id",
	"bucket",
	"action",
	"changed_at",
}

// Repository журнал изменений привязок шаблонов к оповещениям
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record сохраняет изменение привязки и заполняет его ID
func (r *Repository) Record(ctx context.Context, change *domain.AssociationChange) error {
	query, args, err := buildInsert(change)
	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	change.ID = id
	return nil
}

// List возвращает изменения организации, новые первыми
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*domain.AssociationChange, error) {
	filter.Normalize()

	query, args, err := buildList(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	changes := make([]*domain.AssociationChange, 0, filter.Limit)
	for rows.Next() {
		var c domain.AssociationChange
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.TemplateID, &c.Bucket, &c.Action, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		changes = append(changes, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrExecQuery, err)
	}

	return changes, nil
}

func buildInsert(change *domain.AssociationChange) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns(columns[1:]...).
		Values(
			change.OrganizationID,
			change.TemplateID,
			string(change.Bucket),
			string(change.Action),
			change.ChangedAt,
		).
		Suffix("RETURNING id").
		ToSql()
}

func buildList(filter ListFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"organization_id": filter.OrganizationID})

	if filter.TemplateID != nil {
		builder = builder.Where(squirrel.Eq{"template_id": *filter.TemplateID})
	}
	if filter.Bucket != nil {
		builder = builder.Where(squirrel.Eq{"bucket": string(*filter.Bucket)})
	}

	return builder.
		OrderBy("changed_at DESC", "id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
}
