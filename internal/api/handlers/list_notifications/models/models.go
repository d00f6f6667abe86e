package models

import (
	serviceModels "github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list/models"
)

// TemplateResponse шаблон уведомления с признаками привязки
type TemplateResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name,omitempty"`
	Description      string `json:"description,omitempty"`
	NotificationType string `json:"notification_type"`
	SuccessEnabled   bool   `json:"success_enabled"`
	ErrorEnabled     bool   `json:"error_enabled"`
}

// ListNotificationsResponse HTTP ответ со страницей шаблонов организации
type ListNotificationsResponse struct {
	OrganizationID     int64              `json:"organization_id"`
	Results            []TemplateResponse `json:"results"`
	SuccessTemplateIDs []int64            `json:"success_template_ids"`
	ErrorTemplateIDs   []int64            `json:"error_template_ids"`
	Page               int                `json:"page,omitempty"`
	PageSize           int                `json:"page_size,omitempty"`
	OrderBy            string             `json:"order_by,omitempty"`
	Query              string             `json:"query"`
}

// FromSnapshot преобразует снимок представления в HTTP ответ
func FromSnapshot(s *serviceModels.Snapshot) *ListNotificationsResponse {
	results := make([]TemplateResponse, len(s.Templates))
	for i, t := range s.Templates {
		results[i] = TemplateResponse{
			ID:               t.ID,
			Name:             t.Name,
			Description:      t.Description,
			NotificationType: t.NotificationType,
			SuccessEnabled:   t.SuccessEnabled,
			ErrorEnabled:     t.ErrorEnabled,
		}
	}

	return &ListNotificationsResponse{
		OrganizationID:     s.OrganizationID,
		Results:            results,
		SuccessTemplateIDs: s.SuccessTemplateIDs,
		ErrorTemplateIDs:   s.ErrorTemplateIDs,
		Page:               s.Params.Page,
		PageSize:           s.Params.PageSize,
		OrderBy:            s.Params.OrderBy,
		Query:              s.Query(),
	}
}
