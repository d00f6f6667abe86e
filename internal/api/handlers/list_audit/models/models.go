package models

import (
	"time"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 500
	MaxPage      = 100000 // MaxPage * MaxLimit помещается в int32
)

// ListAuditQuery параметры запроса журнала
type ListAuditQuery struct {
	TemplateID *int64
	Bucket     *domain.Bucket
	Page       int
	Limit      int
}

// Normalize устанавливает значения по умолчанию
func (q *ListAuditQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// ChangeResponse запись журнала
type ChangeResponse struct {
	ID         int64     `json:"id"`
	TemplateID int64     `json:"template_id"`
	Status     string    `json:"status"`
	Action     string    `json:"action"`
	ChangedAt  time.Time `json:"changed_at"`
}

// ListAuditResponse HTTP ответ со страницей журнала
type ListAuditResponse struct {
	OrganizationID int64            `json:"organization_id"`
	Changes        []ChangeResponse `json:"changes"`
	Page           int              `json:"page"`
	Limit          int              `json:"limit"`
}

// FromDomainChanges преобразует записи журнала в HTTP ответ
func FromDomainChanges(orgID int64, changes []*domain.AssociationChange, page, limit int) *ListAuditResponse {
	items := make([]ChangeResponse, len(changes))
	for i, c := range changes {
		items[i] = ChangeResponse{
			ID:         c.ID,
			TemplateID: c.TemplateID,
			Status:     string(c.Bucket),
			Action:     string(c.Action),
			ChangedAt:  c.ChangedAt,
		}
	}

	return &ListAuditResponse{
		OrganizationID: orgID,
		Changes:        items,
		Page:           page,
		Limit:          limit,
	}
}
