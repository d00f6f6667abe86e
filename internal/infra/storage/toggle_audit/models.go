package toggle_audit

import "github.com/m04kA/SMC-OrgNotifications/internal/domain"

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ListFilter параметры для фильтрации журнала изменений
type ListFilter struct {
	OrganizationID int64
	TemplateID     *int64
	Bucket         *domain.Bucket
	Limit          int
	Offset         int
}

// Normalize устанавливает значения пагинации по умолчанию
func (f *ListFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
